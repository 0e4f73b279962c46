package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/adresse-io/signalement-api/api"
	"github.com/adresse-io/signalement-api/apidepot"
	"github.com/adresse-io/signalement-api/captcha"
	"github.com/adresse-io/signalement-api/config"
	"github.com/adresse-io/signalement-api/databases"
	"github.com/adresse-io/signalement-api/mailer"
	"github.com/adresse-io/signalement-api/models"
)

// App stores the router and db connection
type App struct {
	Router *mux.Router
	Config *config.Config
	DB     databases.DatabaseHelper
}

// Initialize connects to the database and builds the routes
func (a *App) Initialize(conf *config.Config) error {
	client, err := databases.NewClient(conf)
	if err != nil {
		return err
	}
	if err := client.Connect(); err != nil {
		return err
	}

	a.Config = conf
	a.DB = databases.NewDatabase(conf, client)
	a.Router = a.New()
	return nil
}

// New creates a new mux router with all the routes of the API
func (a *App) New() *mux.Router {
	r := mux.NewRouter()
	r.Use(api.JSONContentType)
	admin := api.AdminOnly(*a.Config)

	signalementDB := databases.NewSignalementDatabase(a.DB)
	sourceDB := databases.NewSourceDatabase(a.DB)
	clientDB := databases.NewClientDatabase(a.DB)
	settingDB := databases.NewSettingDatabase(a.DB)

	eligibility := Eligibility{
		SettingDB: settingDB,
		SourceDB:  sourceDB,
		Revisions: apidepot.New(a.Config.APIDepotURL),
	}

	s := Signalement{
		DB:          signalementDB,
		SourceDB:    sourceDB,
		ClientDB:    clientDB,
		Eligibility: eligibility,
		Captcha:     captcha.New(a.Config.CaptchaSecret, a.Config.CaptchaKey),
		Mailer:      mailer.NewSendgrid(a.Config.MailFromName, a.Config.MailFrom),
	}
	st := Setting{DB: settingDB, Eligibility: eligibility}
	so := Source{DB: sourceDB}
	cl := Client{DB: clientDB}
	stats := Stats{DB: signalementDB}
	tiles := Tiles{DB: signalementDB}

	r.HandleFunc("/health", healthCheckHandler).Methods("GET")

	// signalements
	r.HandleFunc("/api/v1/signalements", s.CreateSignalementHandler).Methods("POST")
	r.HandleFunc("/api/v1/signalements", s.GetSignalementsHandler).Methods("GET")
	r.HandleFunc("/api/v1/signalements/stats", stats.GetStatsHandler).Methods("GET")
	r.HandleFunc("/api/v1/signalements/tiles/{z}/{x}/{y}.pbf", tiles.GetTileHandler).Methods("GET")
	r.HandleFunc("/api/v1/signalements/{id}", s.GetSignalementByIDHandler).Methods("GET")
	r.HandleFunc("/api/v1/signalements/{id}", s.UpdateSignalementHandler).Methods("PUT")
	r.Handle("/api/v1/signalements/{id}", admin(http.HandlerFunc(s.DeleteSignalementHandler))).Methods("DELETE")

	// settings
	r.HandleFunc("/api/v1/settings/commune-status/{codeCommune}", st.CommuneStatusHandler).Methods("GET")
	r.HandleFunc("/api/v1/settings/commune-settings/{codeCommune}", st.GetCommuneSettingsHandler).Methods("GET")
	r.Handle("/api/v1/settings/commune-settings/{codeCommune}", admin(http.HandlerFunc(st.SetCommuneSettingsHandler))).Methods("POST")
	r.Handle("/api/v1/settings/commune-settings/{codeCommune}", admin(http.HandlerFunc(st.DeleteCommuneSettingsHandler))).Methods("DELETE")
	r.HandleFunc("/api/v1/settings/enabled-list/{listKey}", st.GetEnabledListHandler).Methods("GET")
	r.HandleFunc("/api/v1/settings/enabled-list/{listKey}/{id}", st.IsInEnabledListHandler).Methods("GET")
	r.Handle("/api/v1/settings/enabled-list/{listKey}", admin(http.HandlerFunc(st.ToggleEnabledListHandler))).Methods("PUT")

	// sources
	r.Handle("/api/v1/sources", admin(http.HandlerFunc(so.CreateSourceHandler))).Methods("POST")
	r.HandleFunc("/api/v1/sources", so.GetSourcesHandler).Methods("GET")
	r.HandleFunc("/api/v1/sources/{id}", so.GetSourceByIDHandler).Methods("GET")
	r.Handle("/api/v1/sources/{id}", admin(http.HandlerFunc(so.DeleteSourceHandler))).Methods("DELETE")

	// clients
	r.Handle("/api/v1/clients", admin(http.HandlerFunc(cl.CreateClientHandler))).Methods("POST")
	r.HandleFunc("/api/v1/clients/me", cl.GetMeHandler).Methods("GET")
	r.HandleFunc("/api/v1/clients/{id}", cl.GetClientByIDHandler).Methods("GET")

	return r
}

// healthCheckHandler checks that the API is up and running
func healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(models.HealthCheckResponse{Alive: true})
}
