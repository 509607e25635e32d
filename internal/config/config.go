// Package config defines service configuration and its loader.
//
// Conventions:
//   - New(ctx) returns a Config holding the defaults.
//   - Load(ctx) layers a YAML file and environment variables on top.
//   - The loaded *Config is passed explicitly to the app and adapters.
package config

import (
	"context"
	"strings"
	"time"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the log encoding: text or json.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":9080".
	Addr string `koanf:"addr"`

	// SiteURL is the public URL of the site. When empty, VercelURL and then
	// a placeholder host are used.
	SiteURL string `koanf:"site_url"`

	// VercelURL is the deployment host without scheme, e.g. "oshichecker2.vercel.app".
	VercelURL string `koanf:"vercel_url"`

	// ShareBaseURL is the URL the share text links back to.
	ShareBaseURL string `koanf:"share_base_url"`

	// ResultCount is the podium size on the result page.
	ResultCount int `koanf:"result_count"`

	// ShareDebounceMS is the re-arm delay of the per-client share guard.
	ShareDebounceMS int `koanf:"share_debounce_ms"`

	// ShareGuardSize bounds the number of clients tracked by the share guard.
	ShareGuardSize int `koanf:"share_guard_size"`

	// ScoreCacheSize bounds the score memo. Zero or less disables it.
	ScoreCacheSize int `koanf:"score_cache_size"`

	// CatalogPath points at a member catalog YAML file. Empty uses the
	// embedded catalog.
	CatalogPath string `koanf:"catalog_path"`

	// CORSAllowedOrigins is a comma separated origin list.
	CORSAllowedOrigins string `koanf:"cors_allowed_origins"`

	// OGPImages overrides the card image per locale.
	OGPImages map[string]string `koanf:"ogp_images"`

	// ShutdownTimeoutMS bounds graceful HTTP shutdown.
	ShutdownTimeoutMS int `koanf:"shutdown_timeout_ms"`
}

// New creates a Config holding the defaults. The context is reserved for
// loaders that need it.
func New(_ context.Context) *Config {
	return &Config{
		LogLevel:           "info",
		LogFormat:          "text",
		Addr:               ":9080",
		ShareBaseURL:       "https://oshichecker2.vercel.app",
		ResultCount:        3,
		ShareDebounceMS:    800,
		ShareGuardSize:     50_000,
		ScoreCacheSize:     1024,
		CORSAllowedOrigins: "*",
		OGPImages:          map[string]string{},
		ShutdownTimeoutMS:  10_000,
	}
}

// AllowedOrigins splits CORSAllowedOrigins into a trimmed list.
func (c *Config) AllowedOrigins() []string {
	parts := strings.Split(c.CORSAllowedOrigins, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// ShareDebounce returns ShareDebounceMS as a duration.
func (c *Config) ShareDebounce() time.Duration {
	return time.Duration(c.ShareDebounceMS) * time.Millisecond
}

// ShutdownTimeout returns ShutdownTimeoutMS as a duration.
func (c *Config) ShutdownTimeout() time.Duration {
	return time.Duration(c.ShutdownTimeoutMS) * time.Millisecond
}
