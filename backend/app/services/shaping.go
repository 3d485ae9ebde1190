package services

import (
	"postboard/backend/app/dto"
	"postboard/backend/app/models"
)

// postToDTO expects User and Likes to be loaded.
func postToDTO(p *models.Post) dto.PostResponse {
	return dto.PostResponse{
		ID:        p.ID,
		Title:     p.Title,
		Content:   p.Content,
		Published: p.Published,
		Rating:    p.Rating,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
		Likes:     len(p.Likes),
		User: dto.PostOwner{
			ID:        p.User.ID,
			Email:     p.User.Email,
			Username:  p.User.Username,
			CreatedAt: p.User.CreatedAt,
			UpdatedAt: p.User.UpdatedAt,
		},
	}
}

func postsToDTO(posts []models.Post) []dto.PostResponse {
	out := make([]dto.PostResponse, 0, len(posts))
	for i := range posts {
		out = append(out, postToDTO(&posts[i]))
	}
	return out
}

func userPost(p *models.Post) dto.UserPost {
	return dto.UserPost{ID: p.ID, Title: p.Title, Content: p.Content, Published: p.Published, Rating: p.Rating}
}

// userToDTO expects Posts and Likes.Post to be loaded.
func userToDTO(u *models.User) dto.UserResponse {
	posts := make([]dto.UserPost, 0, len(u.Posts))
	for i := range u.Posts {
		posts = append(posts, userPost(&u.Posts[i]))
	}
	liked := make([]dto.UserPost, 0, len(u.Likes))
	for i := range u.Likes {
		liked = append(liked, userPost(&u.Likes[i].Post))
	}
	return dto.UserResponse{
		ID:         u.ID,
		Email:      u.Email,
		Username:   u.Username,
		CreatedAt:  u.CreatedAt,
		UpdatedAt:  u.UpdatedAt,
		Posts:      posts,
		LikedPosts: liked,
	}
}
