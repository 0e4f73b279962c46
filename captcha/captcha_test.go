package captcha

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func testVerifier(endpoint string) Verifier {
	return &friendlyCaptcha{
		endpoint: endpoint,
		secret:   "secret-key",
		siteKey:  "site-key",
		client:   &http.Client{Timeout: time.Second},
	}
}

func TestVerifySuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req verifyRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "puzzle-solution", req.Solution)
		assert.Equal(t, "secret-key", req.Secret)
		assert.Equal(t, "site-key", req.SiteKey)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success": true}`))
	}))
	defer server.Close()

	ok, err := testVerifier(server.URL).Verify(context.Background(), "puzzle-solution")
	assert.NoError(t, err)
	assert.True(t, ok)
}

func TestVerifyFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success": false, "errors": ["solution_invalid"]}`))
	}))
	defer server.Close()

	ok, err := testVerifier(server.URL).Verify(context.Background(), "bad-solution")
	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestVerifyUnreachable(t *testing.T) {
	_, err := testVerifier("http://127.0.0.1:1").Verify(context.Background(), "solution")
	assert.Error(t, err)
}
