package dto

// LikeRequest toggles the caller's like on a post and is echoed on success.
type LikeRequest struct {
	PostID uint  `json:"post_id" validate:"required"`
	Liked  *bool `json:"liked" validate:"required"`
}
