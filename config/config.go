package config

import (
	"fmt"
	"net/http"
	"os"

	"go.uber.org/zap"
)

// Config holds the project config values
type Config struct {
	URL           string
	DatabaseName  string
	BaseURL       string
	Port          string
	AdminToken    string
	APIDepotURL   string
	CaptchaSecret string
	CaptchaKey    string
	MailFrom      string
	MailFromName  string
}

// New sets up all config related services
func New() *Config {

	//setup zap logger and replace default logger
	logger, _ := setLogger(os.Getenv("APP_ENV"))
	defer logger.Sync()
	_ = zap.ReplaceGlobals(logger)

	return &Config{
		URL:           os.Getenv("DB_URI"),
		DatabaseName:  os.Getenv("DB_NAME"),
		BaseURL:       os.Getenv("BASE_URL"),
		Port:          os.Getenv("PORT"),
		AdminToken:    os.Getenv("ADMIN_TOKEN"),
		APIDepotURL:   os.Getenv("API_DEPOT_URL"),
		CaptchaSecret: os.Getenv("FRIENDLY_CAPTCHA_SECRET"),
		CaptchaKey:    os.Getenv("FRIENDLY_CAPTCHA_SITE_KEY"),
		MailFrom:      os.Getenv("MAIL_FROM"),
		MailFromName:  os.Getenv("MAIL_FROM_NAME"),
	}

}

// setLogger builds the zap logger for the given environment
func setLogger(env string) (*zap.Logger, error) {
	switch env {
	case "production":
		return zap.NewProduction()
	case "development":
		return zap.NewDevelopment()
	default:
		return zap.NewExample(), nil
	}
}

// ErrorStatus is a useful function that will log, write http headers and body for a
// give message, status code and err
func ErrorStatus(message string, httpStatusCode int, w http.ResponseWriter, err error) {
	zap.S().With(err).Error(message)
	w.WriteHeader(httpStatusCode)
	w.Write([]byte(fmt.Sprintf(`{"response": "%s, %v"}`, message, err)))
}
