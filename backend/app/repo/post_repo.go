package repo

import (
	"context"
	"errors"

	"postboard/backend/app/models"

	"gorm.io/gorm"
)

type PostRepository struct{ db *gorm.DB }

func NewPostRepository(db *gorm.DB) *PostRepository { return &PostRepository{db: db} }

func (r *PostRepository) detailed(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Preload("User").Preload("Likes")
}

// List pages over posts whose title contains search (case-sensitive).
// An empty search matches every post.
func (r *PostRepository) List(ctx context.Context, search string, limit, skip int) ([]models.Post, error) {
	q := r.detailed(ctx)
	if search != "" {
		q = q.Where(titleContains(r.db), search)
	}
	var posts []models.Post
	if err := q.Order("posts.id").Limit(limit).Offset(skip).Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

// Get returns nil, nil when the post does not exist.
func (r *PostRepository) Get(ctx context.Context, id uint) (*models.Post, error) {
	return firstPost(r.db.WithContext(ctx), id)
}

// GetDetailed is Get with the owner and likes loaded.
func (r *PostRepository) GetDetailed(ctx context.Context, id uint) (*models.Post, error) {
	return firstPost(r.detailed(ctx), id)
}

func (r *PostRepository) Create(ctx context.Context, p *models.Post) error {
	return r.db.WithContext(ctx).Omit("User", "Likes").Create(p).Error
}

func (r *PostRepository) Update(ctx context.Context, id uint, updates map[string]any) error {
	return r.db.WithContext(ctx).Model(&models.Post{ID: id}).Updates(updates).Error
}

// Delete removes the post; its likes go with it through the foreign key.
func (r *PostRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Post{}, id).Error
}

func firstPost(q *gorm.DB, id uint) (*models.Post, error) {
	var p models.Post
	err := q.First(&p, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// titleContains is a case-sensitive substring predicate for the active dialect.
func titleContains(db *gorm.DB) string {
	switch db.Dialector.Name() {
	case "postgres":
		return "strpos(posts.title, ?) > 0"
	case "mysql":
		return "INSTR(CAST(posts.title AS BINARY), CAST(? AS BINARY)) > 0"
	default:
		return "instr(posts.title, ?) > 0"
	}
}
