package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/adresse-io/signalement-api/api/handlers"
	"github.com/adresse-io/signalement-api/config"
	dbMocks "github.com/adresse-io/signalement-api/databases/mocks"
)

func testApp() *handlers.App {
	return &handlers.App{
		Config: &config.Config{AdminToken: "s3cret"},
		DB:     &dbMocks.DatabaseHelper{},
	}
}

func TestHealthCheck(t *testing.T) {
	router := testApp().New()

	req, _ := http.NewRequest("GET", "/health", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"alive": true}`, rr.Body.String())
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
}

func TestAdminRoutesAreGuarded(t *testing.T) {
	router := testApp().New()

	req, _ := http.NewRequest("POST", "/api/v1/sources", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	req, _ = http.NewRequest("PUT", "/api/v1/settings/enabled-list/harvester-sources-enabled", nil)
	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}
