package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all runtime configuration loaded from environment variables.
// Every field has a sensible default; only DATABASE_URL, MAIL_USERNAME and
// MAIL_PASSWORD are required. The struct is built once at startup and
// treated as immutable for the process lifetime — in particular the sender
// identity, which every outgoing message carries.
type Config struct {
	// Server
	HTTPPort        string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration

	// Database (roster store)
	DatabaseURL  string
	DBMaxConns   int32
	DBMinConns   int32
	StoreTimeout time.Duration

	// SMTP transport
	MailHost     string
	MailPort     int
	MailUsername string
	MailPassword string
	SenderName   string
	SendTimeout  time.Duration

	// Dispatch pacing: minimum delay between consecutive sends in a batch
	PacingInterval time.Duration

	// Attachment admission ceiling in bytes
	MaxAttachmentBytes int64
}

// SenderAddress is the process-wide sender identity. Mirrors the original
// deployment, where the SMTP username doubles as the From address.
func (c *Config) SenderAddress() string {
	return c.MailUsername
}

func Load() (*Config, error) {
	// A local .env file overrides nothing already in the environment.
	// Absence is not an error; deployments set real env vars.
	_ = godotenv.Load()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	mailUser := os.Getenv("MAIL_USERNAME")
	if mailUser == "" {
		return nil, fmt.Errorf("MAIL_USERNAME is required")
	}
	mailPass := os.Getenv("MAIL_PASSWORD")
	if mailPass == "" {
		return nil, fmt.Errorf("MAIL_PASSWORD is required")
	}

	return &Config{
		HTTPPort:    getEnv("HTTP_PORT", "8080"),
		ReadTimeout: getDuration("READ_TIMEOUT", 5*time.Second),
		// A class broadcast paces sends on the request goroutine, so the
		// write timeout must cover a full batch, not a single handler call.
		WriteTimeout:    getDuration("WRITE_TIMEOUT", 10*time.Minute),
		ShutdownTimeout: getDuration("SHUTDOWN_TIMEOUT", 30*time.Second),

		DatabaseURL:  dbURL,
		DBMaxConns:   int32(getInt("DB_MAX_CONNS", 10)),
		DBMinConns:   int32(getInt("DB_MIN_CONNS", 2)),
		StoreTimeout: getDuration("STORE_TIMEOUT", 30*time.Second),

		MailHost:     getEnv("MAIL_SERVER", "smtp.gmail.com"),
		MailPort:     getInt("MAIL_PORT", 587),
		MailUsername: mailUser,
		MailPassword: mailPass,
		SenderName:   getEnv("MAIL_SENDER_NAME", "QuizHub"),
		SendTimeout:  getDuration("SEND_TIMEOUT", 30*time.Second),

		PacingInterval: getDuration("PACING_INTERVAL", 5*time.Second),

		MaxAttachmentBytes: getInt64("MAX_ATTACHMENT_BYTES", 20<<20),
	}, nil
}

func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return defaultVal
}

func getInt64(key string, defaultVal int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return defaultVal
}

func getDuration(key string, defaultVal time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return defaultVal
}
