package cmd

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"
	"github.com/lepinkainen/humanlog"
	"github.com/spf13/viper"

	"github.com/samuelcardenasg23/book-play/internal/config"
	bperrors "github.com/samuelcardenasg23/book-play/internal/errors"
)

const configFileName = "config.yaml"

// CLI represents the complete command structure for the bookplay application
type CLI struct {
	// Global flags
	Debug  bool   `help:"Enable debug logging"`
	User   string `help:"Library owner (overrides library.owner)"`
	DBFile string `name:"db-file" help:"Path to the SQLite library database (overrides store.dbfile)"`

	Search SearchCmd `cmd:"" help:"Search Google Books and list candidates"`
	Lookup LookupCmd `cmd:"" help:"Show the record fields a Google Books volume maps to"`
	Add    AddCmd    `cmd:"" help:"Search, pick and save a book to the library"`
	List   ListCmd   `cmd:"" help:"List books in the library"`
	Show   ShowCmd   `cmd:"" help:"Show one book from the library"`
	Fields FieldsCmd `cmd:"" help:"Show the form fields visible for a status"`
	Serve  ServeCmd  `cmd:"" help:"Run the JSON API used by the web UI"`
}

// Execute runs the Kong-based CLI
func Execute() {
	if code := run(os.Args[1:]); code != 0 {
		os.Exit(code)
	}
}

func run(args []string) int {
	var cli CLI

	parser, err := kong.New(&cli,
		kong.Name("bookplay"),
		kong.Description("Look up book metadata on Google Books and keep a personal reading library."),
		kong.UsageOnError(),
	)
	if err != nil {
		slog.Error("Failed to build CLI", "error", err)
		return 1
	}

	kctx, err := parser.Parse(args)
	parser.FatalIfErrorf(err)

	initLogging(cli.Debug)

	if err := initConfig(); err != nil {
		slog.Error("Fatal error config file", "error", err)
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := newApp(ctx, &cli, os.Stdout)
	if err != nil {
		slog.Error("Invalid configuration", "error", err)
		return 1
	}
	defer app.Close()

	if err := kctx.Run(app); err != nil {
		if bperrors.IsStopProcessingError(err) {
			slog.Info("Stopped", "reason", err.Error())
			return 0
		}
		slog.Error("Command failed", "error", err)
		return 1
	}
	return 0
}

func initConfig() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Warn("Could not load .env file", "error", err)
	}

	v := viper.GetViper()
	config.SetDefaults(v)

	// Enable environment variable support
	v.AutomaticEnv()
	if err := config.BindEnv(v); err != nil {
		return err
	}

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("reading config file: %w", err)
		}
		slog.Info("Config file not found, writing default config file...", "path", configFileName)
		if err := writeDefaultConfig(configFileName); err != nil {
			slog.Warn("Error writing config file", "error", err)
		}
	}
	return nil
}

// writeDefaultConfig writes only the defaults so that secrets picked up
// from the environment never end up on disk.
func writeDefaultConfig(path string) error {
	defaults := viper.New()
	config.SetDefaults(defaults)
	return defaults.SafeWriteConfigAs(path)
}

func initLogging(debug bool) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}

	// Logs go to stderr so command output stays pipeable.
	handler := humanlog.NewHandler(os.Stderr, &humanlog.Options{
		Level: level,
	})

	slog.SetDefault(slog.New(handler))
}
