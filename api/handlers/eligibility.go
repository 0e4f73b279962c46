package handlers

import (
	"context"
	"errors"
	"net/http"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/adresse-io/signalement-api/apidepot"
	"github.com/adresse-io/signalement-api/databases"
	"github.com/adresse-io/signalement-api/models"
)

// Default refusal messages shown by the submission widget
const (
	msgCommuneDisabled = "Les signalements sont actuellement désactivés pour cette commune"
	msgSourceFiltered  = "Cette source n'est pas autorisée à émettre des signalements pour cette commune"
	msgNotPublished    = "La Base Adresse Locale de cette commune n'est pas encore publiée"
)

// Eligibility decides whether a source may submit signalements for a commune
// and in which mode. The resolution order is fixed: administrative settings
// first, then the commune's current publication record.
type Eligibility struct {
	SettingDB databases.SettingDatabase
	SourceDB  databases.SourceDatabase
	Revisions apidepot.Client
}

// CommuneStatus runs the resolution cascade. The returned int is the HTTP
// status the handler must answer with when err is non-nil: 404 for an unknown
// source, 502 when the revision provider is unreachable.
//
// An explicit non-disabling commune configuration overrides the publication
// allow-lists: a commune that opted in stays open even when its harvester or
// publication client is not globally enabled.
func (e Eligibility) CommuneStatus(ctx context.Context, codeCommune, sourceID string) (*models.CommuneStatus, int, error) {
	oid, err := primitive.ObjectIDFromHex(sourceID)
	if err != nil {
		return nil, http.StatusBadRequest, errors.New("sourceId must be a valid id")
	}
	if _, err := e.SourceDB.FindOne(ctx, bson.M{"_id": oid}); err != nil {
		return nil, http.StatusNotFound, errors.New("source not found")
	}

	settings, err := e.SettingDB.GetCommuneSettings(ctx, codeCommune)
	if err != nil {
		return nil, http.StatusInternalServerError, err
	}
	if settings != nil && settings.Disabled {
		return &models.CommuneStatus{
			Disabled: true,
			Message:  messageOr(settings.Message, msgCommuneDisabled),
		}, http.StatusOK, nil
	}
	if settings.HasFilteredSource(sourceID) {
		return &models.CommuneStatus{Disabled: true, Message: msgSourceFiltered}, http.StatusOK, nil
	}

	revision, err := e.Revisions.GetCurrentRevision(ctx, codeCommune)
	if err != nil {
		return nil, http.StatusBadGateway, err
	}
	if revision == nil {
		return &models.CommuneStatus{Disabled: true, Message: msgNotPublished}, http.StatusOK, nil
	}

	if revision.BalID() != "" {
		return &models.CommuneStatus{Disabled: false, Mode: modeOr(settings, models.SubmissionModeFull)}, http.StatusOK, nil
	}

	if id := revision.HarvesterSourceID(); id != "" {
		return e.gated(ctx, settings, models.HarvesterSourcesEnabled, id)
	}
	if id := revision.PublicationClientID(); id != "" {
		return e.gated(ctx, settings, models.PublicationClientsEnabled, id)
	}

	return &models.CommuneStatus{Disabled: true}, http.StatusOK, nil
}

// gated applies an allow-list check, short-circuited by an explicit commune
// configuration when one exists
func (e Eligibility) gated(ctx context.Context, settings *models.CommuneSettings, key models.EnabledListKey, id string) (*models.CommuneStatus, int, error) {
	if settings != nil {
		return &models.CommuneStatus{
			Disabled: false,
			Message:  settings.Message,
			Mode:     modeOr(settings, models.SubmissionModeLight),
		}, http.StatusOK, nil
	}

	enabled, err := e.SettingDB.IsInEnabledList(ctx, key, id)
	if err != nil {
		return nil, http.StatusInternalServerError, err
	}
	if !enabled {
		return &models.CommuneStatus{Disabled: true, Message: msgCommuneDisabled}, http.StatusOK, nil
	}
	return &models.CommuneStatus{Disabled: false, Mode: models.SubmissionModeLight}, http.StatusOK, nil
}

func messageOr(message, fallback string) string {
	if message != "" {
		return message
	}
	return fallback
}

func modeOr(settings *models.CommuneSettings, fallback models.SubmissionMode) models.SubmissionMode {
	if settings != nil && settings.Mode != "" {
		return settings.Mode
	}
	return fallback
}
