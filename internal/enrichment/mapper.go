// Package enrichment maps provider volume metadata onto book record fields.
package enrichment

import (
	"context"
	"log/slog"
	"strings"

	"github.com/samuelcardenasg23/book-play/internal/book"
	bperrors "github.com/samuelcardenasg23/book-play/internal/errors"
	"github.com/samuelcardenasg23/book-play/internal/googlebooks"
)

// Fetcher is the subset of the metadata client used for lookups by ID.
type Fetcher interface {
	FetchByID(ctx context.Context, id string) (*googlebooks.Volume, error)
}

// Mapper turns a selected volume ID into a record patch.
type Mapper struct {
	fetcher Fetcher
}

// NewMapper creates a mapper backed by fetcher.
func NewMapper(fetcher Fetcher) *Mapper {
	return &Mapper{fetcher: fetcher}
}

// MapToRecord fetches the volume and returns the enrichable fields to apply.
// Any failure yields book.ClearPatch so the caller resets stale values.
func (m *Mapper) MapToRecord(ctx context.Context, id string) book.Patch {
	id = strings.TrimSpace(id)

	volume, err := m.fetcher.FetchByID(ctx, id)
	if err != nil {
		slog.Warn("Could not load book metadata, clearing fields", "id", id, "reason", fetchReason(err), "error", err)
		return book.ClearPatch()
	}
	if volume == nil || volume.VolumeInfo == nil {
		slog.Warn("Book metadata response was empty, clearing fields", "id", id, "reason", "empty_response")
		return book.ClearPatch()
	}

	patch := PatchFromVolumeInfo(volume.VolumeInfo)
	patch[book.FieldExternalID] = id

	slog.Debug("Mapped book metadata", "id", id, "title", patch[book.FieldTitle])
	return patch
}

// PatchFromVolumeInfo converts provider metadata into a patch covering
// every enrichable field except external_id.
func PatchFromVolumeInfo(info *googlebooks.VolumeInfo) book.Patch {
	authors := make([]string, 0, len(info.Authors))
	for _, a := range info.Authors {
		if a = strings.TrimSpace(a); a != "" {
			authors = append(authors, a)
		}
	}

	var pageCount *int
	if info.PageCount > 0 {
		n := info.PageCount
		pageCount = &n
	}

	var rating *float64
	if info.AverageRating != nil {
		r := book.ClampRating(*info.AverageRating)
		rating = &r
	}

	category := ""
	if len(info.Categories) > 0 {
		category = strings.TrimSpace(info.Categories[0])
	}

	return book.Patch{
		book.FieldTitle:         strings.TrimSpace(info.Title),
		book.FieldAuthors:       authors,
		book.FieldCoverImageURL: info.ImageLinks.CoverURL(),
		book.FieldDescription:   StripHTML(info.Description),
		book.FieldPageCount:     pageCount,
		book.FieldPublishedDate: strings.TrimSpace(info.PublishedDate),
		book.FieldMainCategory:  category,
		book.FieldAverageRating: rating,
	}
}

func fetchReason(err error) string {
	switch {
	case bperrors.IsNotFound(err):
		return "not_found"
	case bperrors.IsFetchError(err):
		fetchErr, _ := bperrors.AsFetchError(err)
		return fetchErr.Kind.String()
	default:
		return "client"
	}
}
