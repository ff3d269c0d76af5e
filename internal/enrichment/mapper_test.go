package enrichment

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/samuelcardenasg23/book-play/internal/book"
	bperrors "github.com/samuelcardenasg23/book-play/internal/errors"
	"github.com/samuelcardenasg23/book-play/internal/googlebooks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeFetcher struct {
	volume *googlebooks.Volume
	err    error
	ids    []string
}

func (f *fakeFetcher) FetchByID(_ context.Context, id string) (*googlebooks.Volume, error) {
	f.ids = append(f.ids, id)
	return f.volume, f.err
}

func floatPtr(v float64) *float64 { return &v }

func TestMapToRecordFullVolume(t *testing.T) {
	fetcher := &fakeFetcher{volume: &googlebooks.Volume{
		ID: "abc123",
		VolumeInfo: &googlebooks.VolumeInfo{
			Title:         "Dune",
			Authors:       []string{"Frank Herbert"},
			Publisher:     "Ace",
			PublishedDate: "1990-09-01",
			Description:   "<p>Set on the desert planet <b>Arrakis</b>.</p>",
			PageCount:     412,
			Categories:    []string{"Fiction", "Science Fiction"},
			AverageRating: floatPtr(4.5),
			ImageLinks:    &googlebooks.ImageLinks{SmallThumbnail: "http://img/s", Thumbnail: "http://img/t"},
		},
	}}

	patch := NewMapper(fetcher).MapToRecord(context.Background(), "abc123")

	assert.Equal(t, []string{"abc123"}, fetcher.ids)
	assert.Equal(t, "Dune", patch[book.FieldTitle])
	assert.Equal(t, []string{"Frank Herbert"}, patch[book.FieldAuthors])
	assert.Equal(t, "http://img/t", patch[book.FieldCoverImageURL])
	assert.Equal(t, "Set on the desert planet Arrakis.", patch[book.FieldDescription])
	assert.Equal(t, "1990-09-01", patch[book.FieldPublishedDate])
	assert.Equal(t, "Fiction", patch[book.FieldMainCategory])
	assert.Equal(t, "abc123", patch[book.FieldExternalID])

	pages, ok := patch.PageCount()
	require.True(t, ok)
	require.NotNil(t, pages)
	assert.Equal(t, 412, *pages)

	rating, ok := patch.AverageRating()
	require.True(t, ok)
	require.NotNil(t, rating)
	assert.InDelta(t, 4.5, *rating, 0.001)

	for _, field := range book.EnrichableFields {
		assert.True(t, patch.Has(field), "missing %s", field)
	}
}

func TestMapToRecordSparseVolume(t *testing.T) {
	fetcher := &fakeFetcher{volume: &googlebooks.Volume{
		ID: "sparse",
		VolumeInfo: &googlebooks.VolumeInfo{
			Title:         "Anonymous Pamphlet",
			AverageRating: floatPtr(7),
			ImageLinks:    &googlebooks.ImageLinks{SmallThumbnail: "http://img/s"},
		},
	}}

	patch := NewMapper(fetcher).MapToRecord(context.Background(), "sparse")

	authors, ok := patch.Authors()
	require.True(t, ok)
	assert.NotNil(t, authors)
	assert.Empty(t, authors)

	pages, ok := patch.PageCount()
	require.True(t, ok)
	assert.Nil(t, pages)

	rating, _ := patch.AverageRating()
	require.NotNil(t, rating)
	assert.InDelta(t, 5.0, *rating, 0.001)

	assert.Equal(t, "http://img/s", patch[book.FieldCoverImageURL])
	assert.Equal(t, "", patch[book.FieldMainCategory])
	assert.Equal(t, "", patch[book.FieldDescription])
	assert.Equal(t, "sparse", patch[book.FieldExternalID])
}

func TestMapToRecordTrimsExternalID(t *testing.T) {
	fetcher := &fakeFetcher{volume: &googlebooks.Volume{ID: "abc123", VolumeInfo: &googlebooks.VolumeInfo{Title: "Dune"}}}

	patch := NewMapper(fetcher).MapToRecord(context.Background(), "  abc123\t")

	assert.Equal(t, []string{"abc123"}, fetcher.ids)
	assert.Equal(t, "abc123", patch[book.FieldExternalID])
}

func TestMapToRecordNoRating(t *testing.T) {
	fetcher := &fakeFetcher{volume: &googlebooks.Volume{VolumeInfo: &googlebooks.VolumeInfo{Title: "X"}}}

	patch := NewMapper(fetcher).MapToRecord(context.Background(), "x")
	rating, ok := patch.AverageRating()
	assert.True(t, ok)
	assert.Nil(t, rating)
	assert.Equal(t, "", patch[book.FieldCoverImageURL])
}

func TestMapToRecordFailuresClear(t *testing.T) {
	tests := []struct {
		name    string
		fetcher *fakeFetcher
	}{
		{name: "not found", fetcher: &fakeFetcher{err: bperrors.NewHTTPStatusError("fetch", http.StatusNotFound)}},
		{name: "unreachable", fetcher: &fakeFetcher{err: bperrors.NewUnreachableError("fetch", errors.New("refused"))}},
		{name: "malformed", fetcher: &fakeFetcher{err: bperrors.NewMalformedError("fetch", errors.New("bad json"))}},
		{name: "nil volume", fetcher: &fakeFetcher{}},
		{name: "missing volume info", fetcher: &fakeFetcher{volume: &googlebooks.Volume{ID: "zyx123"}}},
		{name: "plain error", fetcher: &fakeFetcher{err: errors.New("boom")}},
		{name: "invalid id", fetcher: &fakeFetcher{err: googlebooks.ErrInvalidID}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			patch := NewMapper(tt.fetcher).MapToRecord(context.Background(), "zyx123")
			assert.Equal(t, book.ClearPatch(), patch)
			assert.True(t, patch.IsClear())
		})
	}
}

func TestMapToRecordClearPatchResetsRecord(t *testing.T) {
	record := book.NewRecord("me")
	record.Title = "Stale"
	record.Authors = []string{"Someone"}
	record.ExternalID = "old"

	patch := NewMapper(&fakeFetcher{err: bperrors.NewHTTPStatusError("fetch", http.StatusNotFound)}).
		MapToRecord(context.Background(), "zyx123")
	require.NoError(t, patch.Apply(record))

	assert.Empty(t, record.Title)
	assert.Empty(t, record.Authors)
	assert.Empty(t, record.ExternalID)
	assert.Nil(t, record.PageCount)
}
