package services

import (
	"context"

	"postboard/backend/app/dto"
	jwtutil "postboard/backend/app/jwt"
	"postboard/backend/app/models"
	"postboard/backend/app/password"
	"postboard/backend/app/repo"
)

const TokenTypeBearer = "bearer"

type AuthService struct {
	store  *repo.Store
	hasher *password.Hasher
	signer *jwtutil.Signer
}

func NewAuthService(store *repo.Store, hasher *password.Hasher, signer *jwtutil.Signer) *AuthService {
	return &AuthService{store: store, hasher: hasher, signer: signer}
}

// Login fails with the same Forbidden error whether the username is unknown
// or the password is wrong.
func (s *AuthService) Login(ctx context.Context, username, pw string) (*dto.TokenResponse, error) {
	u, err := s.store.Users.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if u == nil || !s.hasher.Verify(pw, u.Password) {
		return nil, Forbidden(MsgInvalidCredentials)
	}
	token, err := s.signer.Sign(u.ID)
	if err != nil {
		return nil, err
	}
	return &dto.TokenResponse{AccessToken: token, TokenType: TokenTypeBearer}, nil
}

// Resolve maps a bearer token to its live user. A valid token whose user has
// since been deleted is rejected like an invalid one.
func (s *AuthService) Resolve(ctx context.Context, token string) (*models.User, error) {
	claims, err := s.signer.Parse(token)
	if err != nil {
		return nil, Unauthorized(MsgCouldNotValidate)
	}
	u, err := s.store.Users.Get(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, Unauthorized(MsgCouldNotValidate)
	}
	return u, nil
}
