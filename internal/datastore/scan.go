package datastore

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/samuelcardenasg23/book-play/internal/book"
)

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (*book.Record, error) {
	var (
		r                                       book.Record
		authors, status, createdAt, updatedAt   string
		cover, description, published, category sql.NullString
		purchase, startReading, finishReading   sql.NullString
		notes, externalID                       sql.NullString
		pageCount, price                        sql.NullInt64
		averageRating, personalRating           sql.NullFloat64
	)

	err := row.Scan(
		&r.ID, &r.Owner, &r.Title, &authors, &cover, &description, &pageCount,
		&published, &category, &status, &purchase, &price, &startReading,
		&finishReading, &r.ReadingProgress, &notes, &externalID,
		&averageRating, &personalRating, &createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(authors), &r.Authors); err != nil {
		return nil, fmt.Errorf("decoding authors: %w", err)
	}
	if r.Authors == nil {
		r.Authors = []string{}
	}

	r.Status = book.Status(status)
	r.CoverImageURL = cover.String
	r.Description = description.String
	r.PublishedDate = published.String
	r.MainCategory = category.String
	r.PersonalNotes = notes.String
	r.ExternalID = externalID.String

	if pageCount.Valid {
		n := int(pageCount.Int64)
		r.PageCount = &n
	}
	if price.Valid {
		p := book.Price(price.Int64)
		r.Price = &p
	}
	if averageRating.Valid {
		v := averageRating.Float64
		r.AverageRating = &v
	}
	if personalRating.Valid {
		v := personalRating.Float64
		r.PersonalRating = &v
	}

	for _, d := range []struct {
		src sql.NullString
		dst **time.Time
	}{
		{purchase, &r.PurchaseDate},
		{startReading, &r.StartReadingDate},
		{finishReading, &r.FinishReadingDate},
	} {
		if !d.src.Valid || d.src.String == "" {
			continue
		}
		t, err := time.Parse(dateLayout, d.src.String)
		if err != nil {
			return nil, fmt.Errorf("parsing date %q: %w", d.src.String, err)
		}
		*d.dst = &t
	}

	if r.CreatedAt, err = time.Parse(timestampLayout, createdAt); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	if r.UpdatedAt, err = time.Parse(timestampLayout, updatedAt); err != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", err)
	}

	return &r, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullInt(v *int) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*v), Valid: true}
}

func nullFloat(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}

func nullDate(t *time.Time) sql.NullString {
	if t == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: t.Format(dateLayout), Valid: true}
}
