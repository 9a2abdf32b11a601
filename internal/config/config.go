package config

import (
	"errors"
	"io/fs"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cast"
)

const (
	defaultDBPath            = "./dev.db"
	defaultPort              = "8080"
	defaultAppEnv            = "dev"
	defaultWebhookMaxRetries = 3
	defaultSMTPPort          = "587"
)

// Config holds application configuration sourced from environment variables.
type Config struct {
	AdminEmail    string
	AdminPassword string
	SessionSecret string
	DBPath        string
	Port          string
	AppEnv        string

	WebhookURL        string
	WebhookMaxRetries int

	R2 R2Config

	SMTP SMTPConfig
}

// R2Config points at an S3-compatible bucket for generated quotation PDFs.
type R2Config struct {
	Endpoint      string
	AccessKey     string
	SecretKey     string
	Bucket        string
	PublicBaseURL string
}

// SMTPConfig is the outgoing mail server used to e-mail quotations.
type SMTPConfig struct {
	Host     string
	Port     string
	Username string
	Password string
	From     string
}

// Load reads environment variables and returns a populated Config.
func Load() Config {
	return LoadFile(".env")
}

// LoadFile is Load with an explicit dotenv path. Variables already present in the
// environment win over the file, and a missing file is ignored.
func LoadFile(path string) Config {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Printf("warning: read %s: %v", path, err)
	}

	cfg := Config{
		AdminEmail:    os.Getenv("ADMIN_EMAIL"),
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),
		SessionSecret: os.Getenv("SESSION_SECRET"),
		DBPath:        getenv("DB_PATH", defaultDBPath),
		Port:          getenv("PORT", defaultPort),
		AppEnv:        strings.ToLower(getenv("APP_ENV", defaultAppEnv)),

		WebhookURL:        strings.TrimSpace(os.Getenv("WEBHOOK_URL")),
		WebhookMaxRetries: defaultWebhookMaxRetries,

		R2: R2Config{
			Endpoint:      os.Getenv("R2_ENDPOINT"),
			AccessKey:     os.Getenv("R2_ACCESS_KEY"),
			SecretKey:     os.Getenv("R2_SECRET_KEY"),
			Bucket:        os.Getenv("R2_BUCKET_NAME"),
			PublicBaseURL: strings.TrimRight(os.Getenv("R2_PUBLIC_BASE_URL"), "/"),
		},

		SMTP: SMTPConfig{
			Host:     os.Getenv("SMTP_HOST"),
			Port:     getenv("SMTP_PORT", defaultSMTPPort),
			Username: os.Getenv("SMTP_USERNAME"),
			Password: os.Getenv("SMTP_PASSWORD"),
			From:     os.Getenv("SMTP_FROM"),
		},
	}

	if raw := os.Getenv("WEBHOOK_MAX_RETRIES"); raw != "" {
		n, err := cast.ToIntE(raw)
		if err != nil || n < 0 {
			log.Printf("warning: WEBHOOK_MAX_RETRIES=%q is not a non-negative integer, using %d", raw, defaultWebhookMaxRetries)
		} else {
			cfg.WebhookMaxRetries = n
		}
	}

	if cfg.AdminEmail == "" {
		log.Print("warning: ADMIN_EMAIL is not set")
	}
	if cfg.AdminPassword == "" {
		log.Print("warning: ADMIN_PASSWORD is not set")
	}
	if cfg.SessionSecret == "" {
		log.Print("warning: SESSION_SECRET is not set")
	}

	return cfg
}

// IsDev reports whether the server runs in development mode, where migrations run at boot.
func (c Config) IsDev() bool {
	return c.AppEnv == "dev" || c.AppEnv == "development"
}

// WebhookEnabled reports whether sent quotations are posted to a webhook.
func (c Config) WebhookEnabled() bool {
	return c.WebhookURL != ""
}

// StorageEnabled reports whether generated PDFs are uploaded to object storage.
func (c Config) StorageEnabled() bool {
	return c.R2.Endpoint != "" && c.R2.AccessKey != "" && c.R2.SecretKey != "" && c.R2.Bucket != ""
}

// MailEnabled reports whether quotations are e-mailed to customers.
func (c Config) MailEnabled() bool {
	return c.SMTP.Host != "" && c.SMTP.From != ""
}

func getenv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}
