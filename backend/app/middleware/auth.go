package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"postboard/backend/app/services"
	"postboard/backend/global"
)

type Auth struct{ Identity *services.AuthService }

// RequireUser resolves the bearer token to a live user and stores it in the
// request context for CurrentUser.
func (a *Auth) RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := bearerToken(r)
		if !ok {
			unauthorized(w, services.MsgNotAuthenticated)
			return
		}
		u, err := a.Identity.Resolve(r.Context(), token)
		if err != nil {
			var se *services.Error
			if errors.As(err, &se) {
				unauthorized(w, se.Detail)
				return
			}
			global.Logger.Error().Err(err).Msg("resolve identity")
			writeDetail(w, http.StatusInternalServerError, "Internal Server Error")
			return
		}
		next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), u)))
	})
}

func bearerToken(r *http.Request) (string, bool) {
	authz := r.Header.Get("Authorization")
	scheme, token, found := strings.Cut(authz, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") || token == "" {
		return "", false
	}
	return strings.TrimSpace(token), true
}

func unauthorized(w http.ResponseWriter, detail string) {
	w.Header().Set("WWW-Authenticate", "Bearer")
	writeDetail(w, http.StatusUnauthorized, detail)
}

func writeDetail(w http.ResponseWriter, status int, detail string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"detail": detail})
}
