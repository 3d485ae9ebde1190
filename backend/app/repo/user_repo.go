package repo

import (
	"context"
	"errors"

	"postboard/backend/app/models"

	"gorm.io/gorm"
)

type UserRepository struct{ db *gorm.DB }

func NewUserRepository(db *gorm.DB) *UserRepository { return &UserRepository{db: db} }

func (r *UserRepository) detailed(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Posts", func(db *gorm.DB) *gorm.DB { return db.Order("posts.id") }).
		Preload("Likes.Post")
}

// List returns every user with their posts and liked posts loaded.
func (r *UserRepository) List(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := r.detailed(ctx).Order("users.id").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// Get returns nil, nil when the user does not exist.
func (r *UserRepository) Get(ctx context.Context, id uint) (*models.User, error) {
	return firstUser(r.db.WithContext(ctx), id)
}

// GetDetailed is Get with posts and liked posts loaded.
func (r *UserRepository) GetDetailed(ctx context.Context, id uint) (*models.User, error) {
	return firstUser(r.detailed(ctx), id)
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	var u models.User
	err := r.db.WithContext(ctx).Where("username = ?", username).First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) Create(ctx context.Context, u *models.User) error {
	return r.db.WithContext(ctx).Create(u).Error
}

func (r *UserRepository) Update(ctx context.Context, id uint, updates map[string]any) error {
	return r.db.WithContext(ctx).Model(&models.User{ID: id}).Updates(updates).Error
}

// Delete removes the user; posts and likes go with it through the foreign keys.
func (r *UserRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.User{}, id).Error
}

func firstUser(q *gorm.DB, id uint) (*models.User, error) {
	var u models.User
	err := q.First(&u, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}
