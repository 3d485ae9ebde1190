package controllers

import (
	"net/http"

	"postboard/backend/app/dto"
	"postboard/backend/app/middleware"
	"postboard/backend/app/services"
)

type LikeController struct{ Likes *services.LikeService }

func NewLikeController(likes *services.LikeService) *LikeController {
	return &LikeController{Likes: likes}
}

// Toggle POST /likes/ with {post_id, liked}
func (c *LikeController) Toggle(w http.ResponseWriter, r *http.Request) {
	var req dto.LikeRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	res, err := c.Likes.Toggle(r.Context(), middleware.CurrentUser(r.Context()), req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, res)
}
