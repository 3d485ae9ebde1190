package controllers

import (
	"mime"
	"net/http"

	"postboard/backend/app/dto"
	"postboard/backend/app/services"
)

type AuthController struct {
	Auth *services.AuthService
}

func NewAuthController(auth *services.AuthService) *AuthController {
	return &AuthController{Auth: auth}
}

// Login POST /login/ with form fields username and password (a JSON body is
// accepted too).
func (c *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	req, err := loginRequest(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	token, err := c.Auth.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, token)
}

func loginRequest(r *http.Request) (dto.LoginRequest, error) {
	var req dto.LoginRequest
	if mt, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type")); mt == "application/json" {
		return req, decodeJSON(r, &req)
	}
	if err := r.ParseForm(); err != nil {
		return req, services.Unprocessable("invalid form")
	}
	req.Username = r.PostFormValue("username")
	req.Password = r.PostFormValue("password")
	if err := dto.Validate(&req); err != nil {
		return req, services.Unprocessable(err.Error())
	}
	return req, nil
}
