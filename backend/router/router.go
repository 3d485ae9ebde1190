package router

import (
	"net/http"
	"postboard/backend/app/controllers"
	"postboard/backend/app/middleware"
)

type Controllers struct {
	HTTP  *controllers.HTTPController
	Auth  *controllers.AuthController
	Users *controllers.UserController
	Posts *controllers.PostController
	Likes *controllers.LikeController
}

func NewRouter(c Controllers, mw *middleware.Auth) http.Handler {
	mux := http.NewServeMux()
	auth := func(h http.HandlerFunc) http.Handler { return mw.RequireUser(h) }

	// public
	mux.HandleFunc("GET /ping", c.HTTP.Ping)
	collection(mux, "POST", "/login", http.HandlerFunc(c.Auth.Login))
	collection(mux, "GET", "/posts", http.HandlerFunc(c.Posts.List))
	mux.HandleFunc("GET /posts/{id}", c.Posts.Get)
	collection(mux, "POST", "/users", http.HandlerFunc(c.Users.Create))

	// posts (owner only for mutations of an existing post)
	collection(mux, "POST", "/posts", auth(c.Posts.Create))
	mux.Handle("PUT /posts/{id}", auth(c.Posts.Replace))
	mux.Handle("PATCH /posts/{id}", auth(c.Posts.Patch))
	mux.Handle("DELETE /posts/{id}", auth(c.Posts.Delete))

	// users (any authenticated caller)
	collection(mux, "GET", "/users", auth(c.Users.List))
	mux.Handle("GET /users/{id}", auth(c.Users.Get))
	mux.Handle("PUT /users/{id}", auth(c.Users.Replace))
	mux.Handle("PATCH /users/{id}", auth(c.Users.Patch))
	mux.Handle("DELETE /users/{id}", auth(c.Users.Delete))

	// likes
	collection(mux, "POST", "/likes", auth(c.Likes.Toggle))

	return mux
}

// collection registers h for both "/path" and exactly "/path/".
func collection(mux *http.ServeMux, method, path string, h http.Handler) {
	mux.Handle(method+" "+path, h)
	mux.Handle(method+" "+path+"/{$}", h)
}
