// Package config loads bookplay settings from viper into an explicit struct.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

const (
	DefaultBaseURL     = "https://www.googleapis.com/books/v1/volumes"
	DefaultSearchLimit = 10
	DefaultDBFile      = "./bookplay.db"
	DefaultOwner       = "me"
	DefaultServerAddr  = ":8080"
)

var (
	// ErrMissingBaseURL is returned when provider.base_url is blank.
	ErrMissingBaseURL = errors.New("provider.base_url is required")
	// ErrMissingAPIKey is returned when provider.api_key is blank.
	ErrMissingAPIKey = errors.New("provider.api_key is required (set GOOGLE_BOOKS_API_KEY)")
)

// Provider holds the metadata provider settings handed to the client.
type Provider struct {
	BaseURL            string
	APIKey             string
	InsecureSkipVerify bool
	RequestsPerSecond  float64
}

// Config is the fully resolved application configuration.
type Config struct {
	Provider       Provider
	SearchLimit    int
	DBFile         string
	Owner          string
	ServerAddr     string
	AllowedOrigins []string
}

// SetDefaults registers default values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("provider.base_url", DefaultBaseURL)
	v.SetDefault("provider.api_key", "")
	v.SetDefault("provider.insecure_skip_verify", false)
	v.SetDefault("provider.requests_per_second", 0)
	v.SetDefault("search.limit", DefaultSearchLimit)
	v.SetDefault("store.dbfile", DefaultDBFile)
	v.SetDefault("library.owner", DefaultOwner)
	v.SetDefault("server.addr", DefaultServerAddr)
	v.SetDefault("server.allowed_origins", []string{"http://localhost:8000"})
}

// BindEnv binds the environment variables bookplay understands.
func BindEnv(v *viper.Viper) error {
	bindings := map[string]string{
		"provider.base_url": "GOOGLE_BOOKS_BASE_URL",
		"provider.api_key":  "GOOGLE_BOOKS_API_KEY",
		"library.owner":     "BOOKPLAY_USER",
	}
	for key, env := range bindings {
		if err := v.BindEnv(key, env); err != nil {
			return fmt.Errorf("binding %s to %s: %w", key, env, err)
		}
	}
	return nil
}

// Load reads the configuration from v and validates the required provider
// settings so that a missing key fails at startup, not on the first request.
func Load(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		Provider: Provider{
			BaseURL:            strings.TrimSpace(v.GetString("provider.base_url")),
			APIKey:             strings.TrimSpace(v.GetString("provider.api_key")),
			InsecureSkipVerify: v.GetBool("provider.insecure_skip_verify"),
			RequestsPerSecond:  v.GetFloat64("provider.requests_per_second"),
		},
		SearchLimit:    v.GetInt("search.limit"),
		DBFile:         v.GetString("store.dbfile"),
		Owner:          strings.TrimSpace(v.GetString("library.owner")),
		ServerAddr:     v.GetString("server.addr"),
		AllowedOrigins: v.GetStringSlice("server.allowed_origins"),
	}

	if err := cfg.Provider.Validate(); err != nil {
		return nil, err
	}

	if cfg.SearchLimit <= 0 {
		cfg.SearchLimit = DefaultSearchLimit
	}
	if cfg.DBFile == "" {
		cfg.DBFile = DefaultDBFile
	}
	if cfg.Owner == "" {
		cfg.Owner = DefaultOwner
	}
	if cfg.ServerAddr == "" {
		cfg.ServerAddr = DefaultServerAddr
	}

	return cfg, nil
}

// Validate checks the required provider settings.
func (p Provider) Validate() error {
	var errs []error
	if strings.TrimSpace(p.BaseURL) == "" {
		errs = append(errs, ErrMissingBaseURL)
	}
	if strings.TrimSpace(p.APIKey) == "" {
		errs = append(errs, ErrMissingAPIKey)
	}
	return errors.Join(errs...)
}
