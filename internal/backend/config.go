package backend

import (
	"fmt"
	"net/url"
	"time"

	"nhatro/internal/config"
)

// Config holds what the factory needs to construct a backend.
type Config struct {
	Type Type

	// Remote API
	APIBaseURL string
	APITimeout time.Duration

	// SQLite
	SQLiteDBPath string
}

// FromAppConfig converts the application config to a backend config.
func FromAppConfig(appConfig *config.Config) (Config, error) {
	if appConfig == nil {
		return Config{}, fmt.Errorf("app config is nil")
	}

	t := Type(appConfig.DataBackend)
	if !t.IsValid() {
		return Config{}, fmt.Errorf("invalid backend type in config: %s", appConfig.DataBackend)
	}

	return Config{
		Type:         t,
		APIBaseURL:   appConfig.APIBaseURL,
		APITimeout:   appConfig.APITimeout,
		SQLiteDBPath: appConfig.SQLiteDBPath,
	}, nil
}

// Validate checks the per-type requirements.
func (c Config) Validate() error {
	if !c.Type.IsValid() {
		return fmt.Errorf("invalid backend type: %s", c.Type)
	}

	switch c.Type {
	case RemoteBackend:
		if c.APIBaseURL == "" {
			return fmt.Errorf("API base URL is required for remote backend")
		}
		u, err := url.Parse(c.APIBaseURL)
		if err != nil {
			return fmt.Errorf("invalid API base URL %q: %w", c.APIBaseURL, err)
		}
		if u.Scheme != "http" && u.Scheme != "https" {
			return fmt.Errorf("invalid API base URL scheme %q: must be http or https", u.Scheme)
		}

	case SQLiteBackend:
		if c.SQLiteDBPath == "" {
			return fmt.Errorf("SQLite database path is required for sqlite backend")
		}

	case MemoryBackend:
		// Nothing to check.
	}

	return nil
}
