package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/adresse-io/signalement-api/api"
	"github.com/adresse-io/signalement-api/config"
	"github.com/adresse-io/signalement-api/databases"
	"github.com/adresse-io/signalement-api/models"
)

// Source exposes the administration of submitting sources
type Source struct {
	DB databases.SourceDatabase
}

type createSourceInput struct {
	Nom  string            `json:"nom"`
	Type models.SourceType `json:"type"`
}

// CreateSourceHandler registers a new source. Private sources get a generated
// credential, returned once in the response.
func (s Source) CreateSourceHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	var input createSourceInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}
	if input.Nom == "" {
		config.ErrorStatus("nom is required", http.StatusBadRequest, w, fmt.Errorf("missing nom"))
		return
	}
	if input.Type != models.SourceTypePublic && input.Type != models.SourceTypePrivate {
		config.ErrorStatus("type must be PUBLIC or PRIVATE", http.StatusBadRequest, w, fmt.Errorf("got %q", input.Type))
		return
	}

	now := primitive.NewDateTimeFromTime(time.Now())
	source := models.Source{
		ID:        primitive.NewObjectID(),
		CreatedAt: now,
		UpdatedAt: now,
		Nom:       input.Nom,
		Type:      input.Type,
	}
	if input.Type == models.SourceTypePrivate {
		source.Token = uuid.NewString()
	}

	if err := s.DB.InsertOne(ctx, source); err != nil {
		config.ErrorStatus("failed to insert source", http.StatusInternalServerError, w, err)
		return
	}

	b, err := json.Marshal(source)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// GetSourcesHandler lists all sources without their credentials
func (s Source) GetSourcesHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	sources, err := s.DB.Find(ctx, bson.M{})
	if err != nil {
		config.ErrorStatus("failed to get sources", http.StatusInternalServerError, w, err)
		return
	}

	summaries := make([]models.SourceSummary, 0, len(sources))
	for i := range sources {
		summaries = append(summaries, *sources[i].Summary())
	}

	b, err := json.Marshal(summaries)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// GetSourceByIDHandler returns one source without its credential
func (s Source) GetSourceByIDHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		config.ErrorStatus("invalid source id", http.StatusBadRequest, w, err)
		return
	}

	source, err := s.DB.FindOne(ctx, bson.M{"_id": oid})
	if err != nil {
		config.ErrorStatus("source not found", http.StatusNotFound, w, err)
		return
	}

	b, err := json.Marshal(source.Summary())
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// DeleteSourceHandler soft deletes a source, its token stops resolving
func (s Source) DeleteSourceHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		config.ErrorStatus("invalid source id", http.StatusBadRequest, w, err)
		return
	}
	if _, err := s.DB.FindOne(ctx, bson.M{"_id": oid}); err != nil {
		config.ErrorStatus("source not found", http.StatusNotFound, w, err)
		return
	}
	if err := s.DB.SoftDeleteOne(ctx, bson.M{"_id": oid}); err != nil {
		config.ErrorStatus("failed to delete source", http.StatusInternalServerError, w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"deleted": true}`))
}
