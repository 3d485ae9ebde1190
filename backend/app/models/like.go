package models

// Like is keyed by (user_id, post_id): one like per user per post.
type Like struct {
	UserID uint `gorm:"primaryKey;autoIncrement:false"`
	PostID uint `gorm:"primaryKey;autoIncrement:false"`

	User User `gorm:"constraint:OnDelete:CASCADE"`
	Post Post `gorm:"constraint:OnDelete:CASCADE"`
}
