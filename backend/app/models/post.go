package models

import "time"

// Defaults (published=true, rating=0) are applied by the service layer.
type Post struct {
	ID        uint   `gorm:"primaryKey"`
	Title     string `gorm:"size:255;not null"`
	Content   string `gorm:"type:text;not null"`
	Published bool   `gorm:"not null"`
	Rating    int    `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time

	UserID uint `gorm:"index;not null"`
	User   User `gorm:"constraint:OnDelete:CASCADE"`

	Likes []Like `gorm:"constraint:OnDelete:CASCADE"`
}
