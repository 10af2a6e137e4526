package api

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// tokenAuth validates the static bearer token. When a bcrypt hash is
// configured the token never appears in config in the clear.
type tokenAuth struct {
	token string
	hash  []byte
}

func (a tokenAuth) check(r *http.Request) bool {
	header := r.Header.Get("Authorization")
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return false
	}
	token := parts[1]
	if len(a.hash) > 0 {
		return bcrypt.CompareHashAndPassword(a.hash, []byte(token)) == nil
	}
	return subtle.ConstantTimeCompare([]byte(token), []byte(a.token)) == 1
}

// requireAuth guards an endpoint with the bearer token.
func (s *Server) requireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !s.auth.check(r) {
			writeError(w, http.StatusUnauthorized, "unauthorized", "Missing or invalid bearer token")
			return
		}
		next(w, r)
	}
}

// requireNFCAuth is requireAuth unless the NFC endpoints are configured
// public, which is the default so header-less readers can scan.
func (s *Server) requireNFCAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !s.nfcPublic && !s.auth.check(r) {
			writeError(w, http.StatusUnauthorized, "unauthorized", "Missing or invalid bearer token")
			return
		}
		next(w, r)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError sends the {"error": kind, "message": ...} body every failing
// endpoint uses.
func writeError(w http.ResponseWriter, status int, kind, message string) {
	writeJSON(w, status, map[string]string{
		"error":   kind,
		"message": message,
	})
}
