// Package book holds the library record model: status, price, field
// visibility and the sparse patches produced by metadata enrichment.
package book

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

const (
	MaxRating   = 5.0
	MaxProgress = 100
)

// Record is a single book in a user's library.
type Record struct {
	ID    string `json:"id" yaml:"id"`
	Owner string `json:"owner" yaml:"owner"`

	Title         string   `json:"title" yaml:"title"`
	Authors       []string `json:"authors" yaml:"authors"`
	CoverImageURL string   `json:"cover_image_url,omitempty" yaml:"cover_image_url,omitempty"`
	Description   string   `json:"description,omitempty" yaml:"description,omitempty"`
	PageCount     *int     `json:"page_count,omitempty" yaml:"page_count,omitempty"`
	// PublishedDate keeps the provider's format ("1965", "1965-08", "1965-08-01").
	PublishedDate string   `json:"published_date,omitempty" yaml:"published_date,omitempty"`
	MainCategory  string   `json:"main_category,omitempty" yaml:"main_category,omitempty"`
	AverageRating *float64 `json:"average_rating,omitempty" yaml:"average_rating,omitempty"`
	ExternalID    string   `json:"external_id,omitempty" yaml:"external_id,omitempty"`

	Status            Status     `json:"status" yaml:"status"`
	Price             *Price     `json:"price,omitempty" yaml:"price,omitempty"`
	PurchaseDate      *time.Time `json:"purchase_date,omitempty" yaml:"purchase_date,omitempty"`
	StartReadingDate  *time.Time `json:"start_reading_date,omitempty" yaml:"start_reading_date,omitempty"`
	FinishReadingDate *time.Time `json:"finish_reading_date,omitempty" yaml:"finish_reading_date,omitempty"`
	ReadingProgress   int        `json:"reading_progress" yaml:"reading_progress"`
	PersonalRating    *float64   `json:"personal_rating,omitempty" yaml:"personal_rating,omitempty"`
	PersonalNotes     string     `json:"personal_notes,omitempty" yaml:"personal_notes,omitempty"`

	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
	UpdatedAt time.Time `json:"updated_at" yaml:"updated_at"`
}

// NewRecord returns an empty record owned by owner with default status.
func NewRecord(owner string) *Record {
	return &Record{
		Owner:   owner,
		Authors: []string{},
		Status:  StatusForPurchase,
	}
}

// ValidationError lists every field that failed validation.
type ValidationError struct {
	Problems map[FieldName]string
}

func (e *ValidationError) Error() string {
	fields := make([]string, 0, len(e.Problems))
	for field := range e.Problems {
		fields = append(fields, string(field))
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, fmt.Sprintf("%s %s", field, e.Problems[FieldName(field)]))
	}
	return "invalid record: " + strings.Join(parts, "; ")
}

// Validate checks the record invariants before persisting.
func (r *Record) Validate() error {
	problems := make(map[FieldName]string)

	if strings.TrimSpace(r.Title) == "" {
		problems[FieldTitle] = "is required"
	}
	if !r.Status.Valid() {
		problems[FieldStatus] = fmt.Sprintf("has unknown value %q", string(r.Status))
	}
	if r.ReadingProgress < 0 || r.ReadingProgress > MaxProgress {
		problems[FieldReadingProgress] = fmt.Sprintf("must be between 0 and %d", MaxProgress)
	}
	if r.PageCount != nil && *r.PageCount < 1 {
		problems[FieldPageCount] = "must be positive"
	}
	if r.AverageRating != nil && !validRating(*r.AverageRating) {
		problems[FieldAverageRating] = "must be between 0 and 5"
	}
	if r.PersonalRating != nil && !validRating(*r.PersonalRating) {
		problems[FieldPersonalRating] = "must be between 0 and 5"
	}
	if r.Price != nil && *r.Price < 0 {
		problems[FieldPrice] = "must not be negative"
	}

	if len(problems) > 0 {
		return &ValidationError{Problems: problems}
	}
	return nil
}

// ApplyStatusDefaults fills the dates that become visible for the current
// status with today's date when they are still unset. Set dates are kept.
func (r *Record) ApplyStatusDefaults(now time.Time) {
	visible := VisibleFields(r.Status)
	today := DateOf(now)

	if visible.Has(FieldPurchaseDate) && r.PurchaseDate == nil {
		d := today
		r.PurchaseDate = &d
	}
	if visible.Has(FieldStartReadingDate) && r.StartReadingDate == nil {
		d := today
		r.StartReadingDate = &d
	}
	if visible.Has(FieldFinishReadingDate) && r.FinishReadingDate == nil {
		d := today
		r.FinishReadingDate = &d
	}
}

// DateOf truncates t to a UTC calendar date.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ClampRating limits v to the [0,5] rating range.
func ClampRating(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > MaxRating:
		return MaxRating
	default:
		return v
	}
}

func validRating(v float64) bool {
	return v >= 0 && v <= MaxRating
}
