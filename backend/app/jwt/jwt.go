package jwtutil

import (
	"errors"
	"fmt"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("invalid token")

// Claims is the session token payload: {user_id, exp}.
type Claims struct {
	UserID uint `json:"user_id"`
	jwt.RegisteredClaims
}

// Signer issues and verifies HMAC-signed session tokens.
type Signer struct {
	Secret    []byte
	Algorithm string
	ExpMin    int
	// Now is the clock; nil means time.Now.
	Now func() time.Time
}

func NewSigner(secret, algorithm string, expMin int) (*Signer, error) {
	method := jwt.GetSigningMethod(algorithm)
	if _, ok := method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("jwt: unsupported signing method %q", algorithm)
	}
	return &Signer{Secret: []byte(secret), Algorithm: algorithm, ExpMin: expMin}, nil
}

func (s *Signer) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *Signer) Sign(userID uint) (string, error) {
	exp := s.now().Add(time.Duration(s.ExpMin) * time.Minute)
	claims := Claims{
		UserID:           userID,
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(exp)},
	}
	token := jwt.NewWithClaims(jwt.GetSigningMethod(s.Algorithm), claims)
	return token.SignedString(s.Secret)
}

// Parse verifies algorithm, signature and expiry. Every failure is reported
// as ErrInvalidToken wrapping the parser's reason.
func (s *Signer) Parse(tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{},
		func(t *jwt.Token) (interface{}, error) { return s.Secret, nil },
		jwt.WithValidMethods([]string{s.Algorithm}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}
	return nil, ErrInvalidToken
}
