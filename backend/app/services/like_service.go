package services

import (
	"context"

	"postboard/backend/app/dto"
	"postboard/backend/app/models"
	"postboard/backend/app/repo"
)

type LikeService struct{ store *repo.Store }

func NewLikeService(store *repo.Store) *LikeService { return &LikeService{store: store} }

// Toggle moves the (actor, post) like between its two states. Asking for the
// state that already holds is rejected rather than treated as a no-op.
func (s *LikeService) Toggle(ctx context.Context, actor *models.User, req dto.LikeRequest) (*dto.LikeRequest, error) {
	liked := req.Liked != nil && *req.Liked
	err := s.store.Transaction(ctx, func(tx *repo.Store) error {
		existing, err := tx.Likes.Find(ctx, actor.ID, req.PostID)
		if err != nil {
			return err
		}
		switch {
		case existing != nil && liked:
			return BadRequest("%s", MsgAlreadyLiked)
		case existing != nil:
			return tx.Likes.Delete(ctx, existing)
		case !liked:
			return BadRequest("%s", MsgAlreadyDisliked)
		}
		if err := tx.Likes.Create(ctx, &models.Like{UserID: actor.ID, PostID: req.PostID}); err != nil {
			return BadRequest("Error creating like: %v", err)
		}
		return nil
	})
	if err != nil {
		return nil, mutationErr(err)
	}
	return &req, nil
}
