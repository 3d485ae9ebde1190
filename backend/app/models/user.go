package models

import "time"

type User struct {
	ID        uint   `gorm:"primaryKey"`
	Email     string `gorm:"uniqueIndex;size:191;not null"`
	Username  string `gorm:"uniqueIndex;size:191;not null"`
	Password  string `gorm:"size:255;not null"` // bcrypt(password + pepper)
	CreatedAt time.Time
	UpdatedAt time.Time

	Posts []Post `gorm:"constraint:OnDelete:CASCADE"`
	Likes []Like `gorm:"constraint:OnDelete:CASCADE"`
}
