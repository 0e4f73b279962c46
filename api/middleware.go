package api

import (
	"crypto/subtle"
	"errors"
	"net/http"
	"strings"

	"github.com/adresse-io/signalement-api/config"
)

// JSONContentType sets the response content type for every API route
func JSONContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		next.ServeHTTP(w, r)
	})
}

// BearerToken extracts the bearer token of the Authorization header, empty
// when absent or malformed
func BearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	if auth == "" {
		return ""
	}
	parts := strings.SplitN(auth, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// AdminOnly guards administration routes behind the static admin token
func AdminOnly(conf config.Config) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := BearerToken(r)
			if conf.AdminToken == "" || subtle.ConstantTimeCompare([]byte(token), []byte(conf.AdminToken)) != 1 {
				config.ErrorStatus("admin token required", http.StatusUnauthorized, w, errors.New("missing or invalid bearer token"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
