package repo

import (
	"context"
	"errors"

	"postboard/backend/app/models"

	"gorm.io/gorm"
)

type LikeRepository struct{ db *gorm.DB }

func NewLikeRepository(db *gorm.DB) *LikeRepository { return &LikeRepository{db: db} }

// Find returns nil, nil when userID has not liked postID.
func (r *LikeRepository) Find(ctx context.Context, userID, postID uint) (*models.Like, error) {
	var l models.Like
	err := r.db.WithContext(ctx).Where("user_id = ? AND post_id = ?", userID, postID).First(&l).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *LikeRepository) Create(ctx context.Context, l *models.Like) error {
	return r.db.WithContext(ctx).Omit("User", "Post").Create(l).Error
}

func (r *LikeRepository) Delete(ctx context.Context, l *models.Like) error {
	return r.db.WithContext(ctx).Where("user_id = ? AND post_id = ?", l.UserID, l.PostID).Delete(&models.Like{}).Error
}
