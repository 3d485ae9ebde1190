package controllers

import (
	"net/http"

	"postboard/backend/app/dto"
	"postboard/backend/app/middleware"
	"postboard/backend/app/services"
)

type PostController struct{ Posts *services.PostService }

func NewPostController(posts *services.PostService) *PostController {
	return &PostController{Posts: posts}
}

// List GET /posts/?limit=&skip=&search=
func (c *PostController) List(w http.ResponseWriter, r *http.Request) {
	q, err := listQuery(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	posts, err := c.Posts.List(r.Context(), q)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, posts)
}

func listQuery(r *http.Request) (dto.PostListQuery, error) {
	q := dto.PostListQuery{Search: r.URL.Query().Get("search")}
	var err error
	if q.Limit, err = queryInt(r, "limit", services.DefaultPostLimit); err != nil {
		return q, err
	}
	if q.Skip, err = queryInt(r, "skip", 0); err != nil {
		return q, err
	}
	if q.Limit < 0 || q.Skip < 0 {
		return q, services.Unprocessable("limit and skip must not be negative")
	}
	return q, nil
}

// Get GET /posts/{id}
func (c *PostController) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	p, err := c.Posts.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// Create POST /posts/
func (c *PostController) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.PostRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	p, err := c.Posts.Create(r.Context(), middleware.CurrentUser(r.Context()), req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

// Replace PUT /posts/{id}
func (c *PostController) Replace(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req dto.PostRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	p, err := c.Posts.Replace(r.Context(), middleware.CurrentUser(r.Context()), id, req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// Patch PATCH /posts/{id}
func (c *PostController) Patch(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req dto.PostUpdateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	p, err := c.Posts.Patch(r.Context(), middleware.CurrentUser(r.Context()), id, req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// Delete DELETE /posts/{id}
func (c *PostController) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := c.Posts.Delete(r.Context(), middleware.CurrentUser(r.Context()), id); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
