package config

import (
	"errors"
	"os"
	"strconv"

	"github.com/Vickycabo/CAPE/internal/service"
)

// Config agrupa toda la configuración del servidor, tomada del entorno.
type Config struct {
	Port          string
	StoreURL      string
	JWTSecret     string
	SessionFile   string
	ResyncMinutes int
	Notify        service.NotifyConfig
}

// Load lee la configuración del entorno con defaults razonables.
// JWT_SECRET es el único valor obligatorio.
func Load() (*Config, error) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return nil, errors.New("JWT_SECRET not set")
	}

	cfg := &Config{
		Port:          getenv("PORT", "8080"),
		StoreURL:      getenv("STORE_URL", "http://localhost:3000"),
		JWTSecret:     secret,
		SessionFile:   getenv("SESSION_FILE", "data/sessions.json"),
		ResyncMinutes: getenvInt("RESYNC_MINUTES", 0),
		Notify: service.NotifyConfig{
			SendGridAPIKey:   os.Getenv("SENDGRID_API_KEY"),
			FromEmail:        os.Getenv("SENDGRID_FROM_EMAIL"),
			FromName:         os.Getenv("SENDGRID_FROM_NAME"),
			TwilioAccountSID: os.Getenv("TWILIO_ACCOUNT_SID"),
			TwilioAuthToken:  os.Getenv("TWILIO_AUTH_TOKEN"),
			TwilioFromNumber: os.Getenv("TWILIO_FROM_NUMBER"),
		},
	}
	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getenvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
