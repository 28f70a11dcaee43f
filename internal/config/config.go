package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"
)

type Config struct {
	// APIBaseURL points at the storefront backend.
	APIBaseURL  string
	HTTPTimeout time.Duration

	// StateDir holds the guest cart slot and the persisted session.
	StateDir string

	// WhatsApp checkout
	WhatsAppNumber  string
	WhatsAppName    string
	WhatsAppEnabled bool
}

func Load() Config {
	return Config{
		APIBaseURL:  getenv("STOREFRONT_API_URL", "http://localhost:8090"),
		HTTPTimeout: parseDuration(getenv("STOREFRONT_HTTP_TIMEOUT", "10s"), 10*time.Second),
		StateDir:    getenv("STOREFRONT_STATE_DIR", defaultStateDir()),

		WhatsAppNumber:  getenv("STOREFRONT_WHATSAPP_NUMBER", "918952864555"),
		WhatsAppName:    getenv("STOREFRONT_WHATSAPP_NAME", "DIGITHELA"),
		WhatsAppEnabled: getenv("STOREFRONT_WHATSAPP_ENABLED", "true") == "true",
	}
}

func (c Config) CartPath() string    { return filepath.Join(c.StateDir, "cart.json") }
func (c Config) SessionPath() string { return filepath.Join(c.StateDir, "session.json") }

func defaultStateDir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "storefront")
	}
	return ".storefront"
}

func getenv(k, def string) string {
	if v := os.Getenv(k); strings.TrimSpace(v) != "" {
		return v
	}
	return def
}

func parseDuration(v string, def time.Duration) time.Duration {
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}
