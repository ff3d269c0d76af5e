package cmd

import (
	"context"
	"log/slog"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samuelcardenasg23/book-play/internal/config"
	bperrors "github.com/samuelcardenasg23/book-play/internal/errors"
	"github.com/samuelcardenasg23/book-play/internal/testutil"
	"github.com/samuelcardenasg23/book-play/internal/tui"
)

// resetCmdState isolates a test that goes through run or initConfig: a
// fresh global viper, a sandboxed working directory and the default logger
// restored afterwards.
func resetCmdState(t *testing.T) *testutil.TestEnv {
	t.Helper()

	testutil.ResetViper(t)

	origLogger := slog.Default()
	t.Cleanup(func() { slog.SetDefault(origLogger) })

	env := testutil.NewTestEnv(t)
	env.Chdir()
	env.UnsetEnv("GOOGLE_BOOKS_BASE_URL")
	env.UnsetEnv("BOOKPLAY_USER")
	return env
}

func TestRun(t *testing.T) {
	resetCmdState(t)
	t.Setenv("GOOGLE_BOOKS_API_KEY", "test-key")

	assert.Equal(t, 0, run([]string{"fields", "OWNED"}))
}

func TestRunFailsWithoutAPIKey(t *testing.T) {
	resetCmdState(t)
	t.Setenv("GOOGLE_BOOKS_API_KEY", "")

	assert.Equal(t, 1, run([]string{"fields", "OWNED"}))
}

func TestRunCommandError(t *testing.T) {
	env := resetCmdState(t)
	t.Setenv("GOOGLE_BOOKS_API_KEY", "test-key")

	assert.Equal(t, 1, run([]string{"--db-file", env.DBPath(), "show", "missing"}))
}

func TestRunStopIsNotAFailure(t *testing.T) {
	resetCmdState(t)
	t.Setenv("GOOGLE_BOOKS_API_KEY", "test-key")

	origClient, origSelect := newMetadataClient, searchAndSelect
	t.Cleanup(func() {
		newMetadataClient, searchAndSelect = origClient, origSelect
	})
	newMetadataClient = func(config.Provider) (metadataClient, error) {
		return newFakeMetadataClient(duneVolume()), nil
	}
	searchAndSelect = func(context.Context, tui.CandidateSearcher, string) (tui.SelectionResult, error) {
		return tui.SelectionResult{Action: tui.ActionStopped}, bperrors.NewStopProcessingError("user quit")
	}

	assert.Equal(t, 0, run([]string{"add", "dune"}))
}

func TestInitConfigWritesDefaultsWithoutSecrets(t *testing.T) {
	env := resetCmdState(t)
	t.Setenv("GOOGLE_BOOKS_API_KEY", "super-secret-key")

	require.NoError(t, initConfig())

	require.True(t, env.FileExists(configFileName))
	written := env.ReadFileString(configFileName)
	assert.Contains(t, written, config.DefaultBaseURL)
	assert.NotContains(t, written, "super-secret-key")

	assert.Equal(t, "super-secret-key", viper.GetString("provider.api_key"))
}

func TestInitConfigReadsExistingFile(t *testing.T) {
	env := resetCmdState(t)
	t.Setenv("GOOGLE_BOOKS_API_KEY", "test-key")
	env.WriteFileString(configFileName, "search:\n  limit: 3\nlibrary:\n  owner: alice\n")

	require.NoError(t, initConfig())

	cfg, err := config.Load(viper.GetViper())
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.SearchLimit)
	assert.Equal(t, "alice", cfg.Owner)
}

func TestInitConfigEnvironmentWinsOverFile(t *testing.T) {
	env := resetCmdState(t)
	t.Setenv("GOOGLE_BOOKS_API_KEY", "test-key")
	t.Setenv("BOOKPLAY_USER", "bob")
	env.WriteFileString(configFileName, "library:\n  owner: alice\n")

	require.NoError(t, initConfig())

	assert.Equal(t, "bob", viper.GetString("library.owner"))
}

func TestInitConfigLoadsDotEnv(t *testing.T) {
	env := resetCmdState(t)
	env.UnsetEnv("GOOGLE_BOOKS_API_KEY")
	env.WriteFileString(".env", "GOOGLE_BOOKS_API_KEY=from-dotenv\n")

	require.NoError(t, initConfig())

	cfg, err := config.Load(viper.GetViper())
	require.NoError(t, err)
	assert.Equal(t, "from-dotenv", cfg.Provider.APIKey)
}

func TestInitConfigRejectsBrokenFile(t *testing.T) {
	env := resetCmdState(t)
	t.Setenv("GOOGLE_BOOKS_API_KEY", "test-key")
	env.WriteFileString(configFileName, "search: [unterminated\n")

	require.Error(t, initConfig())
}

func TestNewApp(t *testing.T) {
	t.Run("requires an API key", func(t *testing.T) {
		testutil.SetTestConfig(t, testutil.WithAPIKey(""))

		_, err := newApp(context.Background(), &CLI{}, nil)
		require.ErrorIs(t, err, config.ErrMissingAPIKey)
	})

	t.Run("flags override config", func(t *testing.T) {
		testutil.SetTestConfig(t, testutil.WithOwner("alice"), testutil.WithDBFile("/tmp/from-config.db"))

		app, err := newApp(context.Background(), &CLI{User: "bob", DBFile: "/tmp/from-flag.db"}, nil)
		require.NoError(t, err)
		assert.Equal(t, "bob", app.Config.Owner)
		assert.Equal(t, "/tmp/from-flag.db", app.Config.DBFile)
	})

	t.Run("config used without flags", func(t *testing.T) {
		testutil.SetTestConfig(t, testutil.WithOwner("alice"))

		app, err := newApp(context.Background(), &CLI{}, nil)
		require.NoError(t, err)
		assert.Equal(t, "alice", app.Config.Owner)
		assert.Equal(t, testutil.TestAPIKey, app.Config.Provider.APIKey)
		assert.NotNil(t, app.Context())
	})
}

func TestAppBuildsClientOnce(t *testing.T) {
	client := newFakeMetadataClient(duneVolume())
	app, _ := setupApp(t, client)

	calls := 0
	newMetadataClient = func(config.Provider) (metadataClient, error) {
		calls++
		return client, nil
	}

	_, err := app.SearchService()
	require.NoError(t, err)
	_, err = app.Mapper()
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}
