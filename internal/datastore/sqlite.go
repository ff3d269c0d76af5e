package datastore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/samuelcardenasg23/book-play/internal/book"
	_ "modernc.org/sqlite"
)

const (
	dateLayout      = "2006-01-02"
	timestampLayout = "2006-01-02T15:04:05.000000000Z"
)

// SQLiteStore implements the Store interface for local SQLite storage
type SQLiteStore struct {
	db     *sql.DB
	dbPath string
	now    func() time.Time
}

// NewSQLiteStore creates a new SQLiteStore instance
func NewSQLiteStore(dbPath string) *SQLiteStore {
	return &SQLiteStore{
		dbPath: dbPath,
		now:    time.Now,
	}
}

// Open connects to dbPath and makes sure the books table exists.
func Open(dbPath string) (*SQLiteStore, error) {
	store := NewSQLiteStore(dbPath)
	if err := store.Connect(); err != nil {
		return nil, err
	}
	if err := store.CreateTable(Schema); err != nil {
		_ = store.Close()
		return nil, err
	}
	return store, nil
}

// Connect opens a connection to the SQLite database
func (s *SQLiteStore) Connect() error {
	db, err := sql.Open("sqlite", s.dbPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	// SQLite allows a single writer.
	db.SetMaxOpenConns(1)
	s.db = db
	return nil
}

// CreateTable creates a new table with the given schema if it doesn't exist
func (s *SQLiteStore) CreateTable(schema string) error {
	_, err := s.db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create table: %w", err)
	}
	return nil
}

// Save validates record and inserts or updates it. New records get a UUID
// and a creation timestamp; every save refreshes UpdatedAt.
func (s *SQLiteStore) Save(ctx context.Context, record *book.Record) error {
	if err := record.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(record.Owner) == "" {
		return ErrMissingOwner
	}

	// Assigned to record only once the row is written.
	now := s.now().UTC()
	id := record.ID
	if id == "" {
		id = uuid.NewString()
	}
	createdAt := record.CreatedAt
	if createdAt.IsZero() {
		createdAt = now
	}

	authors := record.Authors
	if authors == nil {
		authors = []string{}
	}
	authorsJSON, err := json.Marshal(authors)
	if err != nil {
		return fmt.Errorf("failed to encode authors: %w", err)
	}

	var price sql.NullInt64
	if record.Price != nil {
		price = sql.NullInt64{Int64: int64(*record.Price), Valid: true}
	}

	res, err := s.db.ExecContext(ctx, upsertBook,
		id,
		record.Owner,
		record.Title,
		string(authorsJSON),
		nullString(record.CoverImageURL),
		nullString(record.Description),
		nullInt(record.PageCount),
		nullString(record.PublishedDate),
		nullString(record.MainCategory),
		string(record.Status),
		nullDate(record.PurchaseDate),
		price,
		nullDate(record.StartReadingDate),
		nullDate(record.FinishReadingDate),
		record.ReadingProgress,
		nullString(record.PersonalNotes),
		nullString(record.ExternalID),
		nullFloat(record.AverageRating),
		nullFloat(record.PersonalRating),
		createdAt.UTC().Format(timestampLayout),
		now.Format(timestampLayout),
	)
	if err != nil {
		return fmt.Errorf("failed to save book: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to save book: %w", err)
	}
	if affected == 0 {
		// The ID exists but belongs to another owner.
		return ErrNotFound
	}

	record.ID = id
	record.CreatedAt = createdAt
	record.UpdatedAt = now
	return nil
}

// Get loads the record id owned by owner.
func (s *SQLiteStore) Get(ctx context.Context, owner, id string) (*book.Record, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+bookColumns+` FROM books WHERE owner = ? AND id = ?`, owner, id)

	record, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load book %s: %w", id, err)
	}
	return record, nil
}

// List returns owner's records, newest first. A nil status lists all.
func (s *SQLiteStore) List(ctx context.Context, owner string, status *book.Status) ([]*book.Record, error) {
	query := `SELECT ` + bookColumns + ` FROM books WHERE owner = ?`
	args := []any{owner}
	if status != nil {
		query += ` AND status = ?`
		args = append(args, string(*status))
	}
	query += ` ORDER BY created_at DESC, id DESC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list books: %w", err)
	}
	defer func() { _ = rows.Close() }()

	records := []*book.Record{}
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan book: %w", err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list books: %w", err)
	}
	return records, nil
}

// Close closes the database connection
func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}
