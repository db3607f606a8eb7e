// Package config holds the runtime settings for the random connect backend.
// Values come from the environment with development defaults; godotenv is
// loaded by the entrypoints before Load is called.
package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

// Delivery modes for non-command text.
const (
	ModeStrict     = "strict"
	ModePermissive = "permissive"
)

// Config holds every tunable of the matchmaking and relay engine plus the
// transport settings.
type Config struct {
	// HTTPAddr is the bind address for the gin HTTP server.
	HTTPAddr string
	// JWTSecret signs the anonymous-ID bearer tokens (HS256).
	JWTSecret string
	// TelegramToken enables the Telegram transport when non-empty.
	TelegramToken string

	// DeliveryMode is ModeStrict or ModePermissive. In strict mode only #r
	// sends and #m reads; in permissive mode any non-command text is relayed
	// and queued partner messages piggyback on the reply.
	DeliveryMode string

	// NotifyDrainLimit is the number of notifications returned per inbox pull.
	NotifyDrainLimit int
	// MessageDrainLimit is the number of partner messages returned per inbox pull.
	MessageDrainLimit int
	// MessageQueueCap bounds the per-user pending message queue; the oldest
	// entry is dropped on overflow.
	MessageQueueCap int
	// PiggybackLimit caps the queued messages appended to a permissive-mode reply.
	PiggybackLimit int

	// InactivityTimeout is how long a user may stay silent before the reaper
	// ends their session and removes their profile.
	InactivityTimeout time.Duration
	// ReapInterval is how often the reaper sweeps.
	ReapInterval time.Duration
}

// Defaults returns the development configuration.
func Defaults() *Config {
	return &Config{
		HTTPAddr:          ":8080",
		JWTSecret:         "dev-only-secret",
		DeliveryMode:      ModeStrict,
		NotifyDrainLimit:  3,
		MessageDrainLimit: 5,
		MessageQueueCap:   100,
		PiggybackLimit:    10,
		InactivityTimeout: 30 * time.Minute,
		ReapInterval:      30 * time.Minute,
	}
}

// Load builds a Config from defaults overlaid with environment variables.
// Malformed values are logged and ignored so a bad deploy falls back to the
// defaults instead of refusing to start.
func Load() *Config {
	cfg := Defaults()

	if v := os.Getenv("HTTP_ADDR"); v != "" {
		cfg.HTTPAddr = v
	}
	if v := os.Getenv("JWT_SECRET"); v != "" {
		cfg.JWTSecret = v
	}
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		cfg.TelegramToken = v
	}
	if v := os.Getenv("DELIVERY_MODE"); v != "" {
		switch strings.ToLower(v) {
		case ModeStrict, ModePermissive:
			cfg.DeliveryMode = strings.ToLower(v)
		default:
			log.Printf("WARN: unknown DELIVERY_MODE %q, keeping %q", v, cfg.DeliveryMode)
		}
	}

	overlayInt(&cfg.NotifyDrainLimit, "NOTIFY_DRAIN_LIMIT")
	overlayInt(&cfg.MessageDrainLimit, "MESSAGE_DRAIN_LIMIT")
	overlayInt(&cfg.MessageQueueCap, "MESSAGE_QUEUE_CAP")
	overlayInt(&cfg.PiggybackLimit, "PIGGYBACK_LIMIT")
	overlayMinutes(&cfg.InactivityTimeout, "INACTIVITY_TIMEOUT_MINUTES")
	overlayMinutes(&cfg.ReapInterval, "REAP_INTERVAL_MINUTES")

	return cfg
}

func overlayInt(dst *int, key string) {
	v := os.Getenv(key)
	if v == "" {
		return
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		log.Printf("WARN: invalid %s=%q, keeping %d", key, v, *dst)
		return
	}
	*dst = n
}

func overlayMinutes(dst *time.Duration, key string) {
	v := os.Getenv(key)
	if v == "" {
		return
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		log.Printf("WARN: invalid %s=%q, keeping %s", key, v, *dst)
		return
	}
	*dst = time.Duration(n) * time.Minute
}
