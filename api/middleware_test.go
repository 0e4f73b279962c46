package api_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/adresse-io/signalement-api/api"
	"github.com/adresse-io/signalement-api/config"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestBearerToken(t *testing.T) {
	req, _ := http.NewRequest("GET", "/", nil)
	assert.Equal(t, "", api.BearerToken(req))

	req.Header.Set("Authorization", "Bearer abc123")
	assert.Equal(t, "abc123", api.BearerToken(req))

	req.Header.Set("Authorization", "bearer abc123")
	assert.Equal(t, "abc123", api.BearerToken(req))

	req.Header.Set("Authorization", "Basic abc123")
	assert.Equal(t, "", api.BearerToken(req))
}

func TestAdminOnly(t *testing.T) {
	guard := api.AdminOnly(config.Config{AdminToken: "s3cret"})
	handler := guard(okHandler())

	req, _ := http.NewRequest("GET", "/", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	req.Header.Set("Authorization", "Bearer wrong")
	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	req.Header.Set("Authorization", "Bearer s3cret")
	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestAdminOnlyWithoutConfiguredToken(t *testing.T) {
	// an empty admin token locks admin routes entirely
	guard := api.AdminOnly(config.Config{})
	handler := guard(okHandler())

	req, _ := http.NewRequest("GET", "/", nil)
	req.Header.Set("Authorization", "Bearer ")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestJSONContentType(t *testing.T) {
	handler := api.JSONContentType(okHandler())

	req, _ := http.NewRequest("GET", "/", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
}
