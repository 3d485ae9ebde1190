package services

import (
	"context"

	"postboard/backend/app/dto"
	"postboard/backend/app/models"
	"postboard/backend/app/repo"
)

const (
	DefaultPostLimit = 100
	defaultPublished = true
)

type PostService struct{ store *repo.Store }

func NewPostService(store *repo.Store) *PostService { return &PostService{store: store} }

func (s *PostService) List(ctx context.Context, q dto.PostListQuery) ([]dto.PostResponse, error) {
	posts, err := s.store.Posts.List(ctx, q.Search, q.Limit, q.Skip)
	if err != nil {
		return nil, err
	}
	if len(posts) == 0 {
		return nil, NotFound(MsgNoPosts)
	}
	return postsToDTO(posts), nil
}

func (s *PostService) Get(ctx context.Context, id uint) (*dto.PostResponse, error) {
	p, err := s.store.Posts.GetDetailed(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, NotFound(MsgPostNotFound)
	}
	res := postToDTO(p)
	return &res, nil
}

// Create always assigns the post to actor.
func (s *PostService) Create(ctx context.Context, actor *models.User, req dto.PostRequest) (*dto.PostResponse, error) {
	p := &models.Post{
		Title:     req.Title,
		Content:   req.Content,
		Published: boolOr(req.Published, defaultPublished),
		Rating:    intOr(req.Rating, 0),
		UserID:    actor.ID,
	}
	var res dto.PostResponse
	err := s.store.Transaction(ctx, func(tx *repo.Store) error {
		if err := tx.Posts.Create(ctx, p); err != nil {
			return err
		}
		return reloadPost(ctx, tx, p.ID, &res)
	})
	if err != nil {
		return nil, mutationErr(err)
	}
	return &res, nil
}

func (s *PostService) Replace(ctx context.Context, actor *models.User, id uint, req dto.PostRequest) (*dto.PostResponse, error) {
	return s.update(ctx, actor, id, map[string]any{
		"title":     req.Title,
		"content":   req.Content,
		"published": boolOr(req.Published, defaultPublished),
		"rating":    intOr(req.Rating, 0),
	})
}

func (s *PostService) Patch(ctx context.Context, actor *models.User, id uint, req dto.PostUpdateRequest) (*dto.PostResponse, error) {
	updates := map[string]any{}
	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.Content != nil {
		updates["content"] = *req.Content
	}
	if req.Published != nil {
		updates["published"] = *req.Published
	}
	if req.Rating != nil {
		updates["rating"] = *req.Rating
	}
	return s.update(ctx, actor, id, updates)
}

func (s *PostService) Delete(ctx context.Context, actor *models.User, id uint) error {
	err := s.store.Transaction(ctx, func(tx *repo.Store) error {
		if _, err := ownedPost(ctx, tx, actor, id); err != nil {
			return err
		}
		return tx.Posts.Delete(ctx, id)
	})
	return mutationErr(err)
}

func (s *PostService) update(ctx context.Context, actor *models.User, id uint, updates map[string]any) (*dto.PostResponse, error) {
	var res dto.PostResponse
	err := s.store.Transaction(ctx, func(tx *repo.Store) error {
		if _, err := ownedPost(ctx, tx, actor, id); err != nil {
			return err
		}
		if len(updates) > 0 {
			if err := tx.Posts.Update(ctx, id, updates); err != nil {
				return err
			}
		}
		return reloadPost(ctx, tx, id, &res)
	})
	if err != nil {
		return nil, mutationErr(err)
	}
	return &res, nil
}

// ownedPost reports NotFound before Forbidden.
func ownedPost(ctx context.Context, tx *repo.Store, actor *models.User, id uint) (*models.Post, error) {
	p, err := tx.Posts.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, NotFound(MsgPostNotFound)
	}
	if p.UserID != actor.ID {
		return nil, Forbidden(MsgNotAllowed)
	}
	return p, nil
}

func reloadPost(ctx context.Context, tx *repo.Store, id uint, out *dto.PostResponse) error {
	p, err := tx.Posts.GetDetailed(ctx, id)
	if err != nil {
		return err
	}
	if p == nil {
		return NotFound(MsgPostNotFound)
	}
	*out = postToDTO(p)
	return nil
}

func boolOr(v *bool, def bool) bool {
	if v == nil {
		return def
	}
	return *v
}

func intOr(v *int, def int) int {
	if v == nil {
		return def
	}
	return *v
}
