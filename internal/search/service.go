// Package search turns free-text queries into a short list of selectable
// candidates.
package search

import (
	"context"
	"log/slog"
	"strings"

	"github.com/samuelcardenasg23/book-play/internal/config"
	bperrors "github.com/samuelcardenasg23/book-play/internal/errors"
	"github.com/samuelcardenasg23/book-play/internal/googlebooks"
)

// Label placeholders for volumes missing a title, authors or publisher.
const (
	UnknownAuthor    = "Unknown Author"
	UnknownPublisher = "Unknown Publisher"
	Untitled         = "Untitled"
)

// Searcher is the subset of the metadata client used for searching.
type Searcher interface {
	Search(ctx context.Context, query string) (*googlebooks.SearchResponse, error)
}

// Candidate is one selectable search result.
type Candidate struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// Service runs searches and builds candidate labels. It keeps no state
// between calls.
type Service struct {
	searcher Searcher
	limit    int
}

// NewService creates a service returning at most limit candidates.
func NewService(searcher Searcher, limit int) *Service {
	if limit <= 0 {
		limit = config.DefaultSearchLimit
	}
	return &Service{searcher: searcher, limit: limit}
}

// Search returns candidates in provider order. A failed lookup is logged
// and reported as no results.
func (s *Service) Search(ctx context.Context, query string) []Candidate {
	query = strings.TrimSpace(query)
	if query == "" {
		return []Candidate{}
	}

	resp, err := s.searcher.Search(ctx, query)
	if err != nil {
		slog.Warn("Book search failed", "query", query, "reason", failureReason(err), "error", err)
		return []Candidate{}
	}
	if resp == nil {
		return []Candidate{}
	}

	items := resp.Items
	if len(items) > s.limit {
		items = items[:s.limit]
	}

	candidates := make([]Candidate, 0, len(items))
	for _, item := range items {
		candidates = append(candidates, Candidate{
			ID:    item.ID,
			Label: Label(item.VolumeInfo),
		})
	}

	slog.Debug("Book search finished", "query", query, "candidates", len(candidates))
	return candidates
}

// Label formats "{title} - {authors} - {publisher}" with placeholders for
// missing parts.
func Label(info *googlebooks.VolumeInfo) string {
	title, authors, publisher := Untitled, UnknownAuthor, UnknownPublisher
	if info != nil {
		if t := strings.TrimSpace(info.Title); t != "" {
			title = t
		}
		if names := nonBlank(info.Authors); len(names) > 0 {
			authors = strings.Join(names, ", ")
		}
		if p := strings.TrimSpace(info.Publisher); p != "" {
			publisher = p
		}
	}
	return title + " - " + authors + " - " + publisher
}

func nonBlank(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func failureReason(err error) string {
	if fetchErr, ok := bperrors.AsFetchError(err); ok {
		return fetchErr.Kind.String()
	}
	return "client"
}
