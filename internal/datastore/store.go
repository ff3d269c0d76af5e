package datastore

import (
	"context"
	"errors"

	"github.com/samuelcardenasg23/book-play/internal/book"
)

// ErrNotFound is returned when a record does not exist for the given owner.
var ErrNotFound = errors.New("book not found")

// ErrMissingOwner is returned when saving a record without an owner.
var ErrMissingOwner = errors.New("book owner is required")

// Store defines the interface for book record storage
type Store interface {
	// Connect establishes a connection to the data store
	Connect() error

	// CreateTable creates a new table with the given schema if it doesn't exist
	CreateTable(schema string) error

	// Save validates and upserts a record, assigning an ID on first save
	Save(ctx context.Context, record *book.Record) error

	// Get loads one record of owner
	Get(ctx context.Context, owner, id string) (*book.Record, error)

	// List returns the records of owner, newest first, optionally filtered by status
	List(ctx context.Context, owner string, status *book.Status) ([]*book.Record, error)

	// Close closes the connection to the data store
	Close() error
}
