package sharecraft

import (
	"log"
	"net/http"
	"os"
	"strings"
	"time"
)

// Config holds all configuration for a sharecraft deployment.
type Config struct {
	OriginURL string // Required: base URL of the content origin
	Addr      string // Listen address (default ":8787")

	DatabasePath string   // SQLite path (default "data/previews.db")
	UploadsDir   string   // Filesystem blob store root (default "data/uploads")
	S3           S3Config // When Bucket is set, images go to S3 instead of disk

	AdminUsername string // Fallback login username when the KV has no admin_username
	AdminPassword string // Required: admin login password
	CookieSecure  bool   // Set true for HTTPS deployments

	SessionTTL time.Duration // Session lifetime (default 24h)
}

func (c *Config) setDefaults() {
	c.OriginURL = strings.TrimSuffix(c.OriginURL, "/")
	if c.Addr == "" {
		c.Addr = ":8787"
	}
	if c.DatabasePath == "" {
		c.DatabasePath = "data/previews.db"
	}
	if c.UploadsDir == "" {
		c.UploadsDir = "data/uploads"
	}
	if c.AdminUsername == "" {
		c.AdminUsername = "admin"
	}
	if c.SessionTTL == 0 {
		c.SessionTTL = 24 * time.Hour
	}
}

// Option configures additional App behavior.
type Option func(*App)

// WithBlobStore replaces the config-selected blob store, e.g. with a fake
// in tests.
func WithBlobStore(b BlobStore) Option {
	return func(a *App) {
		a.Blobs = b
	}
}

// WithKV replaces the default in-memory key-value store.
func WithKV(kv KV) Option {
	return func(a *App) {
		a.KV = kv
	}
}

// WithOriginClient sets the HTTP client used for origin fetches.
func WithOriginClient(client *http.Client) Option {
	return func(a *App) {
		a.originClient = client
	}
}

// WithCustomRoutes registers additional routes on the Echo instance before
// the server starts.
func WithCustomRoutes(fn func(*App)) Option {
	return func(a *App) {
		a.customRoutes = append(a.customRoutes, fn)
	}
}

// EnvOr returns the value of the environment variable key, or fallback if
// empty.
func EnvOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// MustEnv returns the value of the environment variable key, or fatally
// exits if empty.
func MustEnv(key string) string {
	v := os.Getenv(key)
	if v == "" {
		log.Fatalf("sharecraft: required environment variable %s is not set", key)
	}
	return v
}
