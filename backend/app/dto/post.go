package dto

import "time"

// PostRequest is the create/replace body. Published defaults to true and
// Rating to 0 when omitted.
type PostRequest struct {
	Title     string `json:"title" validate:"required"`
	Content   string `json:"content" validate:"required"`
	Published *bool  `json:"published"`
	Rating    *int   `json:"rating"`
}

type PostUpdateRequest struct {
	Title     *string `json:"title" validate:"omitempty,min=1"`
	Content   *string `json:"content" validate:"omitempty,min=1"`
	Published *bool   `json:"published"`
	Rating    *int    `json:"rating"`
}

type PostListQuery struct {
	Limit  int
	Skip   int
	Search string
}

// PostOwner is the public part of the owning user.
type PostOwner struct {
	ID        uint      `json:"id"`
	Email     string    `json:"email"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type PostResponse struct {
	ID        uint      `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Published bool      `json:"published"`
	Rating    int       `json:"rating"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Likes     int       `json:"likes"`
	User      PostOwner `json:"user"`
}
