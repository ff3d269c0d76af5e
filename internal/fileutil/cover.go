package fileutil

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/disintegration/imaging"
)

const DefaultCoverWidth = 600

// HTTPDoer is an interface for making HTTP requests.
type HTTPDoer interface {
	Do(*http.Request) (*http.Response, error)
}

// CoverDownloadOptions holds options for downloading cover images.
type CoverDownloadOptions struct {
	// URL is the source URL of the cover image
	URL string
	// Path is where the JPEG is written
	Path string
	// MaxWidth downsizes wider images; 0 uses DefaultCoverWidth
	MaxWidth int
	// Overwrite forces re-downloading even if the file exists
	Overwrite bool
	// Client defaults to http.DefaultClient
	Client HTTPDoer
}

// CoverDownloadResult holds the result of a cover download operation.
type CoverDownloadResult struct {
	// Downloaded indicates if a new file was written
	Downloaded bool
	// Path is the full path to the cover
	Path string
	// Width and Height of the saved image, zero when skipped
	Width  int
	Height int
}

// DownloadCover fetches a cover image, normalises its orientation, shrinks
// it to MaxWidth and stores it as JPEG. An empty URL is not an error and
// returns a nil result.
func DownloadCover(ctx context.Context, opts CoverDownloadOptions) (*CoverDownloadResult, error) {
	if opts.URL == "" {
		return nil, nil
	}
	if opts.Path == "" {
		return nil, fmt.Errorf("cover path is required")
	}

	maxWidth := opts.MaxWidth
	if maxWidth <= 0 {
		maxWidth = DefaultCoverWidth
	}
	client := opts.Client
	if client == nil {
		client = http.DefaultClient
	}

	result := &CoverDownloadResult{Path: opts.Path}

	if FileExists(opts.Path) && !opts.Overwrite {
		slog.Debug("Cover already exists, skipping download", "path", opts.Path)
		return result, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, opts.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build cover request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to download cover: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("unexpected status %d downloading cover from %s", resp.StatusCode, opts.URL)
	}

	img, err := imaging.Decode(resp.Body, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("failed to decode cover: %w", err)
	}

	if img.Bounds().Dx() > maxWidth {
		img = imaging.Resize(img, maxWidth, 0, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(85)); err != nil {
		return nil, fmt.Errorf("failed to encode cover: %w", err)
	}
	if _, err := WriteFileAtomic(opts.Path, buf.Bytes(), true); err != nil {
		return nil, fmt.Errorf("failed to write cover file: %w", err)
	}

	result.Downloaded = true
	result.Width = img.Bounds().Dx()
	result.Height = img.Bounds().Dy()
	slog.Info("Downloaded cover", "path", opts.Path, "width", result.Width)

	return result, nil
}

// BuildCoverFilename returns "<title> - cover.jpg" with the title sanitized.
func BuildCoverFilename(title string) string {
	return SanitizeFilename(title) + " - cover.jpg"
}
