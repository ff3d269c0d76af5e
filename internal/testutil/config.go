package testutil

import (
	"testing"

	"github.com/spf13/viper"

	"github.com/samuelcardenasg23/book-play/internal/config"
)

// TestAPIKey is the provider key installed by SetTestConfig.
const TestAPIKey = "test-google-books-key"

// SetTestConfigOption is a functional option for configuring test config.
type SetTestConfigOption func(*testConfigOptions)

type testConfigOptions struct {
	baseURL string
	apiKey  string
	owner   string
	dbFile  string
}

// WithBaseURL points the provider at a test server.
func WithBaseURL(url string) SetTestConfigOption {
	return func(o *testConfigOptions) {
		o.baseURL = url
	}
}

// WithAPIKey sets the provider API key; an empty key exercises the
// missing-key path.
func WithAPIKey(key string) SetTestConfigOption {
	return func(o *testConfigOptions) {
		o.apiKey = key
	}
}

// WithOwner sets library.owner.
func WithOwner(owner string) SetTestConfigOption {
	return func(o *testConfigOptions) {
		o.owner = owner
	}
}

// WithDBFile sets store.dbfile.
func WithDBFile(path string) SetTestConfigOption {
	return func(o *testConfigOptions) {
		o.dbFile = path
	}
}

// ResetViper resets the global viper now and again when the test completes.
func ResetViper(t *testing.T) {
	t.Helper()

	viper.Reset()
	t.Cleanup(viper.Reset)
}

// SetTestConfig resets the global viper, registers the bookplay defaults
// and applies the options. Viper is reset again on cleanup.
func SetTestConfig(t *testing.T, opts ...SetTestConfigOption) {
	t.Helper()

	ResetViper(t)

	options := testConfigOptions{
		baseURL: config.DefaultBaseURL,
		apiKey:  TestAPIKey,
		owner:   config.DefaultOwner,
	}
	for _, opt := range opts {
		opt(&options)
	}

	config.SetDefaults(viper.GetViper())
	viper.Set("provider.base_url", options.baseURL)
	viper.Set("provider.api_key", options.apiKey)
	viper.Set("library.owner", options.owner)
	if options.dbFile != "" {
		viper.Set("store.dbfile", options.dbFile)
	}
}
