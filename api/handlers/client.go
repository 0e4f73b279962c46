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

// Client exposes the administration of moderating clients
type Client struct {
	DB databases.ClientDatabase
}

type createClientInput struct {
	Nom string `json:"nom"`
}

// CreateClientHandler registers a new client with a generated credential,
// returned once in the response
func (c Client) CreateClientHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	var input createClientInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}
	if input.Nom == "" {
		config.ErrorStatus("nom is required", http.StatusBadRequest, w, fmt.Errorf("missing nom"))
		return
	}

	now := primitive.NewDateTimeFromTime(time.Now())
	client := models.Client{
		ID:        primitive.NewObjectID(),
		CreatedAt: now,
		UpdatedAt: now,
		Nom:       input.Nom,
		Token:     uuid.NewString(),
	}

	if err := c.DB.InsertOne(ctx, client); err != nil {
		config.ErrorStatus("failed to insert client", http.StatusInternalServerError, w, err)
		return
	}

	b, err := json.Marshal(client)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// GetClientByIDHandler returns one client without its credential
func (c Client) GetClientByIDHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		config.ErrorStatus("invalid client id", http.StatusBadRequest, w, err)
		return
	}

	client, err := c.DB.FindOne(ctx, bson.M{"_id": oid})
	if err != nil {
		config.ErrorStatus("client not found", http.StatusNotFound, w, err)
		return
	}

	b, err := json.Marshal(client.Summary())
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// GetMeHandler resolves the calling client from its bearer token
func (c Client) GetMeHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	client, code, err := api.ResolveClient(ctx, c.DB, api.BearerToken(r))
	if err != nil {
		config.ErrorStatus("failed to resolve client", code, w, err)
		return
	}
	if client == nil {
		config.ErrorStatus("a client token is required", http.StatusUnauthorized, w, fmt.Errorf("missing bearer token"))
		return
	}

	b, err := json.Marshal(client.Summary())
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}
