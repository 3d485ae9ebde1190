package middleware

import (
	"context"

	"postboard/backend/app/models"
)

type ctxKey int

const userKey ctxKey = 1

func WithUser(ctx context.Context, u *models.User) context.Context {
	return context.WithValue(ctx, userKey, u)
}

// CurrentUser returns the user set by RequireUser, or nil.
func CurrentUser(ctx context.Context) *models.User {
	if v := ctx.Value(userKey); v != nil {
		if u, ok := v.(*models.User); ok {
			return u
		}
	}
	return nil
}
