package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/cyberrps/arena/internal/auth"
)

// extractToken pulls the session token from the Authorization header
// ("Bearer ..." or the bare token) and falls back to the auth_token cookie.
func extractToken(r *http.Request) string {
	if h := r.Header.Get("Authorization"); h != "" {
		return strings.TrimPrefix(h, "Bearer ")
	}
	if c, err := r.Cookie("auth_token"); err == nil {
		return c.Value
	}
	return ""
}

// authenticateRequest verifies the request's token and returns the user id.
func authenticateRequest(r *http.Request) (uuid.UUID, error) {
	sub, err := auth.VerifyToken(extractToken(r))
	if err != nil {
		return uuid.Nil, err
	}
	return uuid.Parse(sub)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"message": msg})
}

// decodeBody parses a JSON request body into dst, capping it at 1 MiB.
func decodeBody(r *http.Request, dst interface{}) error {
	defer r.Body.Close()
	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, 1<<20))
	return dec.Decode(dst)
}
