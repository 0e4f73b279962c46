package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/adresse-io/signalement-api/api"
	"github.com/adresse-io/signalement-api/config"
	"github.com/adresse-io/signalement-api/databases"
	"github.com/adresse-io/signalement-api/models"
)

// Setting exposes the per-commune configuration, the global allow-lists and
// the public commune-status endpoint
type Setting struct {
	DB          databases.SettingDatabase
	Eligibility Eligibility
}

// CommuneStatusHandler answers whether the given source may submit for the
// given commune, and in which mode. This is the endpoint submission widgets
// poll before showing a form.
func (s Setting) CommuneStatusHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	codeCommune := mux.Vars(r)["codeCommune"]
	sourceID := r.URL.Query().Get("sourceId")
	if sourceID == "" {
		config.ErrorStatus("sourceId is required", http.StatusBadRequest, w, errors.New("missing sourceId query parameter"))
		return
	}

	status, code, err := s.Eligibility.CommuneStatus(ctx, codeCommune, sourceID)
	if err != nil {
		config.ErrorStatus("failed to resolve commune status", code, w, err)
		return
	}

	b, err := json.Marshal(status)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// GetCommuneSettingsHandler returns the raw configuration of a commune
func (s Setting) GetCommuneSettingsHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	codeCommune := mux.Vars(r)["codeCommune"]
	settings, err := s.DB.GetCommuneSettings(ctx, codeCommune)
	if err != nil {
		config.ErrorStatus("failed to get commune settings", http.StatusInternalServerError, w, err)
		return
	}
	if settings == nil {
		config.ErrorStatus("commune has no settings", http.StatusNotFound, w, fmt.Errorf("no settings for commune %q", codeCommune))
		return
	}

	b, err := json.Marshal(settings)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// SetCommuneSettingsHandler creates or replaces the configuration of a commune
func (s Setting) SetCommuneSettingsHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	codeCommune := mux.Vars(r)["codeCommune"]

	var settings models.CommuneSettings
	if err := json.NewDecoder(r.Body).Decode(&settings); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}
	if settings.Mode != "" && settings.Mode != models.SubmissionModeFull && settings.Mode != models.SubmissionModeLight {
		config.ErrorStatus("mode must be FULL or LIGHT", http.StatusBadRequest, w, fmt.Errorf("got %q", settings.Mode))
		return
	}

	if err := s.DB.SetCommuneSettings(ctx, codeCommune, settings); err != nil {
		config.ErrorStatus("failed to set commune settings", http.StatusInternalServerError, w, err)
		return
	}

	b, err := json.Marshal(settings)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// DeleteCommuneSettingsHandler removes the configuration of a commune, it
// falls back to the publication-based cascade
func (s Setting) DeleteCommuneSettingsHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	codeCommune := mux.Vars(r)["codeCommune"]
	if err := s.DB.DeleteCommuneSettings(ctx, codeCommune); err != nil {
		config.ErrorStatus("failed to delete commune settings", http.StatusInternalServerError, w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"deleted": true}`))
}

// GetEnabledListHandler returns the ids of an allow-list
func (s Setting) GetEnabledListHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	key := models.EnabledListKey(mux.Vars(r)["listKey"])
	if err := models.ValidEnabledListKey(key); err != nil {
		config.ErrorStatus("unknown enabled list", http.StatusBadRequest, w, err)
		return
	}

	list, err := s.DB.GetEnabledList(ctx, key)
	if err != nil {
		config.ErrorStatus("failed to get enabled list", http.StatusInternalServerError, w, err)
		return
	}

	b, err := json.Marshal(list)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// IsInEnabledListHandler reports whether an id belongs to an allow-list
func (s Setting) IsInEnabledListHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	vars := mux.Vars(r)
	key := models.EnabledListKey(vars["listKey"])
	if err := models.ValidEnabledListKey(key); err != nil {
		config.ErrorStatus("unknown enabled list", http.StatusBadRequest, w, err)
		return
	}

	enabled, err := s.DB.IsInEnabledList(ctx, key, vars["id"])
	if err != nil {
		config.ErrorStatus("failed to check enabled list", http.StatusInternalServerError, w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
	w.Write([]byte(fmt.Sprintf(`{"enabled": %t}`, enabled)))
}

type toggleEnabledListInput struct {
	ID string `json:"id"`
}

// ToggleEnabledListHandler flips the presence of an id in an allow-list and
// returns the resulting list
func (s Setting) ToggleEnabledListHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	key := models.EnabledListKey(mux.Vars(r)["listKey"])
	if err := models.ValidEnabledListKey(key); err != nil {
		config.ErrorStatus("unknown enabled list", http.StatusBadRequest, w, err)
		return
	}

	var input toggleEnabledListInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}
	if input.ID == "" {
		config.ErrorStatus("id is required", http.StatusBadRequest, w, errors.New("missing id"))
		return
	}

	if _, err := s.DB.ToggleEnabledList(ctx, key, input.ID); err != nil {
		config.ErrorStatus("failed to toggle enabled list", http.StatusInternalServerError, w, err)
		return
	}

	list, err := s.DB.GetEnabledList(ctx, key)
	if err != nil {
		config.ErrorStatus("failed to get enabled list", http.StatusInternalServerError, w, err)
		return
	}

	b, err := json.Marshal(list)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}
