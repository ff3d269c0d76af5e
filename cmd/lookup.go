package cmd

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/samuelcardenasg23/book-play/internal/book"
	"github.com/samuelcardenasg23/book-play/internal/fileutil"
)

// LookupCmd resolves a volume ID into the record fields it would fill.
type LookupCmd struct {
	ID        string `arg:"" help:"Google Books volume ID"`
	Format    string `help:"Output format" enum:"json,yaml" default:"yaml"`
	Cover     string `help:"Download the cover to this file or directory"`
	CoverSize int    `help:"Maximum cover width in pixels" default:"600"`
	Overwrite bool   `help:"Replace an existing cover file"`
}

func (l *LookupCmd) Run(app *App) error {
	mapper, err := app.Mapper()
	if err != nil {
		return err
	}

	patch := mapper.MapToRecord(app.Context(), l.ID)
	if patch.IsClear() {
		slog.Warn("No metadata found, fields would be cleared", "id", l.ID)
	}

	if err := writeStructured(app.Out, l.Format, patch); err != nil {
		return err
	}

	if l.Cover == "" {
		return nil
	}
	return l.saveCover(app, patch)
}

func (l *LookupCmd) saveCover(app *App, patch book.Patch) error {
	coverURL, _ := patch.Text(book.FieldCoverImageURL)
	if coverURL == "" {
		slog.Warn("Volume has no cover image", "id", l.ID)
		return nil
	}

	path := l.Cover
	if fileutil.DirExists(path) {
		title, _ := patch.Text(book.FieldTitle)
		path = filepath.Join(path, fileutil.BuildCoverFilename(title))
	}

	result, err := downloadCover(app.Context(), fileutil.CoverDownloadOptions{
		URL:       coverURL,
		Path:      path,
		MaxWidth:  l.CoverSize,
		Overwrite: l.Overwrite,
	})
	if err != nil {
		return fmt.Errorf("saving cover: %w", err)
	}
	if result != nil && !result.Downloaded {
		slog.Info("Cover already exists, use --overwrite to replace it", "path", result.Path)
	}
	return nil
}
