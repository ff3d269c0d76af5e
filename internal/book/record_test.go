package book

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int           { return &v }
func floatPtr(v float64) *float64 { return &v }

func TestNewRecordDefaults(t *testing.T) {
	r := NewRecord("alice")

	assert.Equal(t, "alice", r.Owner)
	assert.Equal(t, StatusForPurchase, r.Status)
	assert.Equal(t, 0, r.ReadingProgress)
	assert.Empty(t, r.Authors)
	assert.NotNil(t, r.Authors)
}

func TestRecordValidate(t *testing.T) {
	valid := func() *Record {
		r := NewRecord("alice")
		r.Title = "Dune"
		return r
	}

	require.NoError(t, valid().Validate())

	tests := []struct {
		name   string
		mutate func(r *Record)
		field  FieldName
	}{
		{"missing title", func(r *Record) { r.Title = "  " }, FieldTitle},
		{"progress above 100", func(r *Record) { r.ReadingProgress = 101 }, FieldReadingProgress},
		{"negative progress", func(r *Record) { r.ReadingProgress = -1 }, FieldReadingProgress},
		{"zero pages", func(r *Record) { r.PageCount = intPtr(0) }, FieldPageCount},
		{"average rating above 5", func(r *Record) { r.AverageRating = floatPtr(5.1) }, FieldAverageRating},
		{"negative personal rating", func(r *Record) { r.PersonalRating = floatPtr(-0.5) }, FieldPersonalRating},
		{"unknown status", func(r *Record) { r.Status = "LOST" }, FieldStatus},
		{"negative price", func(r *Record) { p := Price(-1); r.Price = &p }, FieldPrice},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := valid()
			tt.mutate(r)

			err := r.Validate()
			require.Error(t, err)

			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Contains(t, verr.Problems, tt.field)
			assert.Contains(t, err.Error(), string(tt.field))
		})
	}
}

func TestRecordValidateBoundaries(t *testing.T) {
	r := NewRecord("alice")
	r.Title = "Dune"
	r.ReadingProgress = 100
	r.AverageRating = floatPtr(5)
	r.PersonalRating = floatPtr(0)
	r.PageCount = intPtr(1)

	require.NoError(t, r.Validate())
}

func TestApplyStatusDefaults(t *testing.T) {
	now := time.Date(2024, 10, 12, 18, 30, 0, 0, time.UTC)
	today := time.Date(2024, 10, 12, 0, 0, 0, 0, time.UTC)

	t.Run("for purchase sets nothing", func(t *testing.T) {
		r := NewRecord("alice")
		r.ApplyStatusDefaults(now)
		assert.Nil(t, r.PurchaseDate)
		assert.Nil(t, r.StartReadingDate)
		assert.Nil(t, r.FinishReadingDate)
	})

	t.Run("read fills every date", func(t *testing.T) {
		r := NewRecord("alice")
		r.Status = StatusRead
		r.ApplyStatusDefaults(now)
		require.NotNil(t, r.PurchaseDate)
		require.NotNil(t, r.StartReadingDate)
		require.NotNil(t, r.FinishReadingDate)
		assert.Equal(t, today, *r.FinishReadingDate)
	})

	t.Run("existing dates are kept", func(t *testing.T) {
		earlier := time.Date(2023, 1, 2, 0, 0, 0, 0, time.UTC)
		r := NewRecord("alice")
		r.Status = StatusReading
		r.PurchaseDate = &earlier
		r.ApplyStatusDefaults(now)
		assert.Equal(t, earlier, *r.PurchaseDate)
		assert.Equal(t, today, *r.StartReadingDate)
		assert.Nil(t, r.FinishReadingDate)
	})
}

func TestClampRating(t *testing.T) {
	assert.Equal(t, 0.0, ClampRating(-1))
	assert.Equal(t, 3.5, ClampRating(3.5))
	assert.Equal(t, 5.0, ClampRating(7))
}
