package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"postboard/backend/app/dto"
	"postboard/backend/app/services"
	"postboard/backend/global"
)

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeJSONError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"detail": msg})
}

var statusByKind = map[services.Kind]int{
	services.KindBadRequest:    http.StatusBadRequest,
	services.KindUnauthorized:  http.StatusUnauthorized,
	services.KindForbidden:     http.StatusForbidden,
	services.KindNotFound:      http.StatusNotFound,
	services.KindUnprocessable: http.StatusUnprocessableEntity,
}

// writeError renders a service error with its status; anything else is a 500.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var se *services.Error
	if errors.As(err, &se) {
		status, ok := statusByKind[se.Kind]
		if !ok {
			status = http.StatusBadRequest
		}
		if status == http.StatusUnauthorized {
			w.Header().Set("WWW-Authenticate", "Bearer")
		}
		writeJSONError(w, status, se.Detail)
		return
	}
	global.Logger.Error().Err(err).Str("method", r.Method).Str("path", r.URL.Path).Msg("request failed")
	writeJSONError(w, http.StatusInternalServerError, "Internal Server Error")
}

// decodeJSON reads the body into v and checks its validate tags.
func decodeJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return services.Unprocessable("invalid payload: " + err.Error())
	}
	if err := dto.Validate(v); err != nil {
		return services.Unprocessable(err.Error())
	}
	return nil
}

func pathID(r *http.Request) (uint, error) {
	id, err := strconv.ParseUint(r.PathValue("id"), 10, 32)
	if err != nil {
		return 0, services.Unprocessable("invalid id")
	}
	return uint(id), nil
}

func queryInt(r *http.Request, key string, def int) (int, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, services.Unprocessable("invalid " + key)
	}
	return n, nil
}
