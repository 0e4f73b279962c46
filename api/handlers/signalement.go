package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/adresse-io/signalement-api/api"
	"github.com/adresse-io/signalement-api/captcha"
	"github.com/adresse-io/signalement-api/cog"
	"github.com/adresse-io/signalement-api/config"
	"github.com/adresse-io/signalement-api/databases"
	"github.com/adresse-io/signalement-api/mailer"
	"github.com/adresse-io/signalement-api/models"
	html "github.com/adresse-io/signalement-api/templates/html"
	"github.com/adresse-io/signalement-api/validators"
)

const (
	defaultPageLimit = int64(100)
	maxPageLimit     = int64(1000)
)

// Signalement exposes the signalement lifecycle: creation by a source,
// closing by a client, reads for everyone
type Signalement struct {
	DB          databases.SignalementDatabase
	SourceDB    databases.SourceDatabase
	ClientDB    databases.ClientDatabase
	Eligibility Eligibility
	Captcha     captcha.Verifier
	Mailer      mailer.Service
}

// CreateSignalementHandler files a new signalement. The emitter is resolved
// first, then the commune's eligibility, then the change-request payload; the
// signalement is stored PENDING with its display point derived once.
func (s Signalement) CreateSignalementHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	var input models.CreateSignalementInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}
	if err := models.ValidSignalementType(input.Type); err != nil {
		config.ErrorStatus("invalid signalement type", http.StatusBadRequest, w, err)
		return
	}
	if !cog.HasCommune(input.CodeCommune) {
		config.ErrorStatus("unknown commune", http.StatusBadRequest, w, fmt.Errorf("codeCommune %q not found", input.CodeCommune))
		return
	}

	source, code, err := api.ResolveSource(ctx, s.SourceDB, s.Captcha, api.BearerToken(r), r.URL.Query().Get("sourceId"), input.Author)
	if err != nil {
		config.ErrorStatus("failed to resolve source", code, w, err)
		return
	}

	status, code, err := s.Eligibility.CommuneStatus(ctx, input.CodeCommune, source.ID.Hex())
	if err != nil {
		config.ErrorStatus("failed to resolve commune status", code, w, err)
		return
	}
	if status.Disabled {
		config.ErrorStatus(status.Message, http.StatusLocked, w, errors.New("submissions are closed for this commune"))
		return
	}

	changes, err := validators.ChangesRequested(input.Type, input.ExistingLocation, input.ChangesRequested)
	if err != nil {
		config.ErrorStatus("invalid changes requested", http.StatusBadRequest, w, err)
		return
	}

	author := input.Author
	if author.IsEmpty() {
		author = nil
	}

	now := primitive.NewDateTimeFromTime(time.Now())
	signalement := models.Signalement{
		ID:               primitive.NewObjectID(),
		CreatedAt:        now,
		UpdatedAt:        now,
		CodeCommune:      input.CodeCommune,
		Type:             input.Type,
		Author:           author,
		ExistingLocation: input.ExistingLocation,
		ChangesRequested: changes,
		Status:           models.SignalementStatusPending,
		Source:           source.Summary(),
	}
	signalement.Point = signalement.DerivePoint()

	if err := s.DB.InsertOne(ctx, signalement); err != nil {
		config.ErrorStatus("failed to insert signalement", http.StatusInternalServerError, w, err)
		return
	}

	signalement.Author = nil
	signalement.NomCommune = cog.CommuneNom(signalement.CodeCommune)

	b, err := json.Marshal(signalement)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// UpdateSignalementHandler closes a signalement. Only an authenticated client
// may close, only PENDING signalements can be closed, and the reporter is
// notified by mail on a best-effort basis.
func (s Signalement) UpdateSignalementHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	client, code, err := api.ResolveClient(ctx, s.ClientDB, api.BearerToken(r))
	if err != nil {
		config.ErrorStatus("failed to resolve client", code, w, err)
		return
	}
	if client == nil {
		config.ErrorStatus("a client token is required", http.StatusUnauthorized, w, errors.New("missing bearer token"))
		return
	}

	oid, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		config.ErrorStatus("invalid signalement id", http.StatusBadRequest, w, err)
		return
	}

	var input models.UpdateSignalementInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}
	if input.Status != models.SignalementStatusProcessed && input.Status != models.SignalementStatusIgnored {
		config.ErrorStatus("status must be PROCESSED or IGNORED", http.StatusBadRequest, w, fmt.Errorf("got %q", input.Status))
		return
	}

	signalement, err := s.DB.FindOneWithAuthor(ctx, bson.M{"_id": oid})
	if err != nil {
		config.ErrorStatus("signalement not found", http.StatusNotFound, w, err)
		return
	}
	if signalement.Status != models.SignalementStatusPending {
		config.ErrorStatus("signalement is already closed", http.StatusBadRequest, w, fmt.Errorf("status is %q", signalement.Status))
		return
	}

	rejectionReason := ""
	if input.Status == models.SignalementStatusIgnored {
		rejectionReason = input.RejectionReason
	}

	update := bson.M{"$set": bson.M{
		"status":          input.Status,
		"rejectionReason": rejectionReason,
		"processedBy":     client.Summary(),
		"updatedAt":       primitive.NewDateTimeFromTime(time.Now()),
	}}
	// the status condition makes the close a compare-and-set, the first of two
	// concurrent clients wins
	matched, err := s.DB.UpdateOne(ctx, bson.M{"_id": oid, "status": models.SignalementStatusPending}, update)
	if err != nil {
		config.ErrorStatus("failed to update signalement", http.StatusInternalServerError, w, err)
		return
	}
	if matched == 0 {
		config.ErrorStatus("signalement is already closed", http.StatusBadRequest, w, errors.New("status changed concurrently"))
		return
	}

	signalement.Status = input.Status
	signalement.RejectionReason = rejectionReason
	signalement.ProcessedBy = client.Summary()

	s.notifyAuthor(ctx, signalement)

	signalement.Author = nil
	signalement.NomCommune = cog.CommuneNom(signalement.CodeCommune)

	b, err := json.Marshal(signalement)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// notifyAuthor mails the reporter about the closing decision. Failures are
// logged and swallowed, a notification must never fail the transition.
func (s Signalement) notifyAuthor(ctx context.Context, signalement *models.Signalement) {
	if signalement.Author == nil || signalement.Author.Email == "" {
		return
	}

	template := html.TemplateProcessed
	subject := "Votre signalement a été pris en compte"
	if signalement.Status == models.SignalementStatusIgnored {
		template = html.TemplateIgnored
		subject = "Votre signalement n'a pas été retenu"
	}

	msg := mailer.Message{
		To:       signalement.Author.Email,
		Subject:  subject,
		Template: template,
		Context: map[string]interface{}{
			"date":            signalement.CreatedAt.Time().Format("02/01/2006"),
			"commune":         cog.CommuneNom(signalement.CodeCommune),
			"location":        signalement.LocationLabel(),
			"locationType":    signalement.LocationTypeLabel(),
			"rejectionReason": signalement.RejectionReason,
		},
	}
	if err := s.Mailer.Send(ctx, msg); err != nil {
		zap.S().Warnw("failed to send signalement notification",
			"signalementId", signalement.ID.Hex(),
			"status", signalement.Status,
			"error", err,
		)
	}
}

// GetSignalementsHandler lists signalements with optional filters on commune,
// source, type and status. Results are newest first and paginated.
func (s Signalement) GetSignalementsHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	filter := bson.M{}
	query := r.URL.Query()

	if communes := query["codeCommune"]; len(communes) > 0 {
		filter["codeCommune"] = bson.M{"$in": communes}
	}
	if types := query["type"]; len(types) > 0 {
		filter["type"] = bson.M{"$in": types}
	}
	if statuses := query["status"]; len(statuses) > 0 {
		filter["status"] = bson.M{"$in": statuses}
	}
	if sourceIDs := query["sourceId"]; len(sourceIDs) > 0 {
		oids := make([]primitive.ObjectID, 0, len(sourceIDs))
		for _, id := range sourceIDs {
			oid, err := primitive.ObjectIDFromHex(id)
			if err != nil {
				config.ErrorStatus("invalid sourceId filter", http.StatusBadRequest, w, err)
				return
			}
			oids = append(oids, oid)
		}
		filter["source.id"] = bson.M{"$in": oids}
	}

	page := parseInt64(query.Get("page"), 1)
	if page < 1 {
		page = 1
	}
	limit := parseInt64(query.Get("limit"), defaultPageLimit)
	if limit < 1 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}

	total, err := s.DB.Count(ctx, filter)
	if err != nil {
		config.ErrorStatus("failed to count signalements", http.StatusInternalServerError, w, err)
		return
	}

	opts := databases.PaginatedOpts(limit, page).SetSort(bson.M{"createdAt": -1})
	signalements, err := s.DB.Find(ctx, filter, opts)
	if err != nil {
		config.ErrorStatus("failed to get signalements", http.StatusInternalServerError, w, err)
		return
	}
	for i := range signalements {
		signalements[i].NomCommune = cog.CommuneNom(signalements[i].CodeCommune)
	}
	if signalements == nil {
		signalements = []models.Signalement{}
	}

	b, err := json.Marshal(models.PaginatedSignalements{
		Data:  signalements,
		Total: total,
		Page:  page,
		Limit: limit,
	})
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// GetSignalementByIDHandler returns one signalement. The author block is only
// included for an authenticated client.
func (s Signalement) GetSignalementByIDHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	client, code, err := api.ResolveClient(ctx, s.ClientDB, api.BearerToken(r))
	if err != nil {
		config.ErrorStatus("failed to resolve client", code, w, err)
		return
	}

	oid, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		config.ErrorStatus("invalid signalement id", http.StatusBadRequest, w, err)
		return
	}

	var signalement *models.Signalement
	if client != nil {
		signalement, err = s.DB.FindOneWithAuthor(ctx, bson.M{"_id": oid})
	} else {
		signalement, err = s.DB.FindOne(ctx, bson.M{"_id": oid})
	}
	if err != nil {
		config.ErrorStatus("signalement not found", http.StatusNotFound, w, err)
		return
	}
	signalement.NomCommune = cog.CommuneNom(signalement.CodeCommune)

	b, err := json.Marshal(signalement)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// DeleteSignalementHandler soft deletes a signalement, it disappears from all
// reads but stays in storage
func (s Signalement) DeleteSignalementHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		config.ErrorStatus("invalid signalement id", http.StatusBadRequest, w, err)
		return
	}
	if _, err := s.DB.FindOne(ctx, bson.M{"_id": oid}); err != nil {
		config.ErrorStatus("signalement not found", http.StatusNotFound, w, err)
		return
	}
	if err := s.DB.SoftDeleteOne(ctx, bson.M{"_id": oid}); err != nil {
		config.ErrorStatus("failed to delete signalement", http.StatusInternalServerError, w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"deleted": true}`))
}

func parseInt64(value string, fallback int64) int64 {
	if value == "" {
		return fallback
	}
	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return fallback
	}
	return n
}
