package dto

import (
	"encoding/base64"
	"fmt"
	"os"
	"strings"
	"time"
)

type SessionMode string

const (
	// SessionModeLegacy sets the static "token=loggedin" cookie.
	SessionModeLegacy SessionMode = "legacy"
	// SessionModeToken sets a signed, short-lived session token.
	SessionModeToken SessionMode = "token"
)

type RememberMode string

const (
	// RememberModeInsecure persists the password base64-encoded (not encrypted) on the client.
	RememberModeInsecure RememberMode = "insecure"
	// RememberModeEmailOnly persists only the email address.
	RememberModeEmailOnly RememberMode = "email"
)

type Config struct {
	Port             string
	DatabaseURL      string
	FirebaseKey      string
	FirebaseAPIKey   string
	StorageBucket    string
	PublicStorageURL string
	NominatimURL     string
	NominatimAgent   string
	Timezone         string
	SessionMode      SessionMode
	SessionSecret    string
	RememberMode     RememberMode
	AllowedOrigins   []string
}

func LoadConfig() Config {
	return Config{
		Port:             getEnv("PORT", "8080"),
		DatabaseURL:      os.Getenv("DATABASE_URL"),
		FirebaseKey:      os.Getenv("FIREBASE_KEY"),
		FirebaseAPIKey:   os.Getenv("FIREBASE_API_KEY"),
		StorageBucket:    getEnv("STORAGE_BUCKET", "presensi-foto"),
		PublicStorageURL: strings.TrimRight(getEnv("PUBLIC_STORAGE_URL", "https://storage.googleapis.com"), "/"),
		NominatimURL:     strings.TrimRight(getEnv("NOMINATIM_URL", "https://nominatim.openstreetmap.org"), "/"),
		NominatimAgent:   getEnv("NOMINATIM_USER_AGENT", "presensi-sales/1.0"),
		Timezone:         getEnv("TIMEZONE", "Asia/Jakarta"),
		SessionMode:      SessionMode(getEnv("SESSION_MODE", string(SessionModeLegacy))),
		SessionSecret:    os.Getenv("SESSION_SECRET"),
		RememberMode:     RememberMode(getEnv("REMEMBER_MODE", string(RememberModeInsecure))),
		AllowedOrigins:   splitList(os.Getenv("ALLOWED_ORIGINS")),
	}
}

func (c Config) Validate() error {
	if c.DatabaseURL == "" {
		return fmt.Errorf("%w: DATABASE_URL is required", ErrValidation)
	}
	if c.FirebaseKey == "" {
		return fmt.Errorf("%w: FIREBASE_KEY is required", ErrValidation)
	}
	switch c.SessionMode {
	case SessionModeLegacy:
	case SessionModeToken:
		if c.SessionSecret == "" {
			return fmt.Errorf("%w: SESSION_SECRET is required in token session mode", ErrValidation)
		}
	default:
		return fmt.Errorf("%w: unknown SESSION_MODE %q", ErrValidation, c.SessionMode)
	}
	switch c.RememberMode {
	case RememberModeInsecure, RememberModeEmailOnly:
	default:
		return fmt.Errorf("%w: unknown REMEMBER_MODE %q", ErrValidation, c.RememberMode)
	}
	for _, origin := range c.AllowedOrigins {
		if origin == "*" {
			return fmt.Errorf("%w: ALLOWED_ORIGINS cannot be * because admin requests carry cookies", ErrValidation)
		}
	}
	if _, err := c.Location(); err != nil {
		return fmt.Errorf("%w: TIMEZONE: %v", ErrValidation, err)
	}
	return nil
}

func (c Config) DecodeFirebaseKey() ([]byte, error) {
	decoded, err := base64.StdEncoding.DecodeString(c.FirebaseKey)
	if err != nil {
		return nil, fmt.Errorf("decode firebase key: %w", err)
	}
	return decoded, nil
}

// Location is the zone used for calendar-day filters and export timestamps.
func (c Config) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.UTC, nil
	}
	return time.LoadLocation(c.Timezone)
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func splitList(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
