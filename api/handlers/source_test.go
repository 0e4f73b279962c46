package handlers_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/adresse-io/signalement-api/api/handlers"
	dbMocks "github.com/adresse-io/signalement-api/databases/mocks"
	"github.com/adresse-io/signalement-api/models"
)

func sourceRouter(h handlers.Source) *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/api/v1/sources", h.CreateSourceHandler).Methods("POST")
	r.HandleFunc("/api/v1/sources", h.GetSourcesHandler).Methods("GET")
	r.HandleFunc("/api/v1/sources/{id}", h.GetSourceByIDHandler).Methods("GET")
	r.HandleFunc("/api/v1/sources/{id}", h.DeleteSourceHandler).Methods("DELETE")
	return r
}

func TestCreateSourcePrivateGetsToken(t *testing.T) {
	db := &dbMocks.SourceDatabase{}
	var stored models.Source
	db.On("InsertOne", mock.Anything, mock.AnythingOfType("models.Source")).
		Run(func(args mock.Arguments) { stored = args.Get(1).(models.Source) }).
		Return(nil)

	body, _ := json.Marshal(map[string]interface{}{"nom": "Partenaire", "type": "PRIVATE"})
	req, _ := http.NewRequest("POST", "/api/v1/sources", bytes.NewReader(body))
	rr := httptest.NewRecorder()
	sourceRouter(handlers.Source{DB: db}).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, models.SourceTypePrivate, stored.Type)
	assert.NotEmpty(t, stored.Token)

	var resp models.Source
	assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, stored.Token, resp.Token)
}

func TestCreateSourcePublicHasNoToken(t *testing.T) {
	db := &dbMocks.SourceDatabase{}
	var stored models.Source
	db.On("InsertOne", mock.Anything, mock.AnythingOfType("models.Source")).
		Run(func(args mock.Arguments) { stored = args.Get(1).(models.Source) }).
		Return(nil)

	body, _ := json.Marshal(map[string]interface{}{"nom": "Widget", "type": "PUBLIC"})
	req, _ := http.NewRequest("POST", "/api/v1/sources", bytes.NewReader(body))
	rr := httptest.NewRecorder()
	sourceRouter(handlers.Source{DB: db}).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Empty(t, stored.Token)
}

func TestCreateSourceRejectsUnknownType(t *testing.T) {
	body, _ := json.Marshal(map[string]interface{}{"nom": "Widget", "type": "INTERNAL"})
	req, _ := http.NewRequest("POST", "/api/v1/sources", bytes.NewReader(body))
	rr := httptest.NewRecorder()
	sourceRouter(handlers.Source{DB: &dbMocks.SourceDatabase{}}).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestGetSourcesStripsTokens(t *testing.T) {
	db := &dbMocks.SourceDatabase{}
	db.On("Find", mock.Anything, mock.Anything).Return([]models.Source{
		{ID: primitive.NewObjectID(), Nom: "Partenaire", Type: models.SourceTypePrivate, Token: "s3cret"},
	}, nil)

	req, _ := http.NewRequest("GET", "/api/v1/sources", nil)
	rr := httptest.NewRecorder()
	sourceRouter(handlers.Source{DB: db}).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.NotContains(t, rr.Body.String(), "s3cret")
}

func TestGetSourceByIDNotFound(t *testing.T) {
	db := &dbMocks.SourceDatabase{}
	db.On("FindOne", mock.Anything, mock.Anything).Return(nil, errors.New("no documents"))

	req, _ := http.NewRequest("GET", "/api/v1/sources/"+primitive.NewObjectID().Hex(), nil)
	rr := httptest.NewRecorder()
	sourceRouter(handlers.Source{DB: db}).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestDeleteSource(t *testing.T) {
	db := &dbMocks.SourceDatabase{}
	source := &models.Source{ID: primitive.NewObjectID(), Nom: "Partenaire", Type: models.SourceTypePrivate}
	db.On("FindOne", mock.Anything, mock.Anything).Return(source, nil)
	db.On("SoftDeleteOne", mock.Anything, mock.Anything).Return(nil)

	req, _ := http.NewRequest("DELETE", "/api/v1/sources/"+source.ID.Hex(), nil)
	rr := httptest.NewRecorder()
	sourceRouter(handlers.Source{DB: db}).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
}
