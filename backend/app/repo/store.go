package repo

import (
	"context"

	"gorm.io/gorm"
)

// Store groups the repositories sharing one connection or transaction.
type Store struct {
	db    *gorm.DB
	Users *UserRepository
	Posts *PostRepository
	Likes *LikeRepository
}

func NewStore(db *gorm.DB) *Store {
	return &Store{
		db:    db,
		Users: NewUserRepository(db),
		Posts: NewPostRepository(db),
		Likes: NewLikeRepository(db),
	}
}

// Transaction runs fn against a Store bound to a single transaction. It
// commits when fn returns nil and rolls back otherwise.
func (s *Store) Transaction(ctx context.Context, fn func(tx *Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewStore(tx))
	})
}
