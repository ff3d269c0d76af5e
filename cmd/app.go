package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/spf13/viper"

	"github.com/samuelcardenasg23/book-play/internal/config"
	"github.com/samuelcardenasg23/book-play/internal/datastore"
	"github.com/samuelcardenasg23/book-play/internal/enrichment"
	"github.com/samuelcardenasg23/book-play/internal/fileutil"
	"github.com/samuelcardenasg23/book-play/internal/googlebooks"
	"github.com/samuelcardenasg23/book-play/internal/search"
	"github.com/samuelcardenasg23/book-play/internal/tui"
)

type metadataClient interface {
	search.Searcher
	enrichment.Fetcher
}

// Package-level hooks, overridden in tests.
var (
	newMetadataClient = func(p config.Provider) (metadataClient, error) {
		return googlebooks.NewClient(p)
	}
	openStore = func(path string) (datastore.Store, error) {
		return datastore.Open(path)
	}
	searchAndSelect = tui.SearchAndSelect
	selectStatus    = tui.SelectStatus
	downloadCover   = fileutil.DownloadCover
	now             = time.Now
)

// App carries the resolved configuration and lazily built collaborators
// into command Run methods.
type App struct {
	ctx    context.Context
	Config *config.Config
	Out    io.Writer

	client metadataClient
	store  datastore.Store
}

func newApp(ctx context.Context, cli *CLI, out io.Writer) (*App, error) {
	cfg, err := config.Load(viper.GetViper())
	if err != nil {
		return nil, err
	}
	if cli.User != "" {
		cfg.Owner = cli.User
	}
	if cli.DBFile != "" {
		cfg.DBFile = cli.DBFile
	}

	slog.Debug("Configuration loaded",
		"base_url", cfg.Provider.BaseURL,
		"owner", cfg.Owner,
		"db", cfg.DBFile,
		"search_limit", cfg.SearchLimit,
	)

	return &App{ctx: ctx, Config: cfg, Out: out}, nil
}

// Context returns the command context, cancelled on interrupt.
func (a *App) Context() context.Context {
	if a.ctx == nil {
		return context.Background()
	}
	return a.ctx
}

func (a *App) metadataClient() (metadataClient, error) {
	if a.client != nil {
		return a.client, nil
	}
	client, err := newMetadataClient(a.Config.Provider)
	if err != nil {
		return nil, fmt.Errorf("creating Google Books client: %w", err)
	}
	a.client = client
	return client, nil
}

// SearchService returns a search service over the metadata client.
func (a *App) SearchService() (*search.Service, error) {
	client, err := a.metadataClient()
	if err != nil {
		return nil, err
	}
	return search.NewService(client, a.Config.SearchLimit), nil
}

// Mapper returns an enrichment mapper over the metadata client.
func (a *App) Mapper() (*enrichment.Mapper, error) {
	client, err := a.metadataClient()
	if err != nil {
		return nil, err
	}
	return enrichment.NewMapper(client), nil
}

// Store opens the library database on first use.
func (a *App) Store() (datastore.Store, error) {
	if a.store != nil {
		return a.store, nil
	}
	store, err := openStore(a.Config.DBFile)
	if err != nil {
		return nil, fmt.Errorf("opening library %s: %w", a.Config.DBFile, err)
	}
	a.store = store
	return store, nil
}

// Close releases the database, if it was opened.
func (a *App) Close() {
	if a.store == nil {
		return
	}
	if err := a.store.Close(); err != nil {
		slog.Warn("Failed to close library database", "error", err)
	}
	a.store = nil
}
