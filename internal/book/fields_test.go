package book

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVisibleFields(t *testing.T) {
	tests := []struct {
		status  Status
		visible []FieldName
		hidden  []FieldName
	}{
		{
			status:  StatusForPurchase,
			visible: []FieldName{FieldTitle, FieldStatus, FieldPersonalRating, FieldPersonalNotes},
			hidden:  []FieldName{FieldPurchaseDate, FieldPrice, FieldStartReadingDate, FieldReadingProgress, FieldFinishReadingDate},
		},
		{
			status:  StatusOwned,
			visible: []FieldName{FieldPurchaseDate, FieldPrice},
			hidden:  []FieldName{FieldStartReadingDate, FieldReadingProgress, FieldFinishReadingDate},
		},
		{
			status:  StatusReading,
			visible: []FieldName{FieldPurchaseDate, FieldPrice, FieldStartReadingDate, FieldReadingProgress},
			hidden:  []FieldName{FieldFinishReadingDate},
		},
		{
			status:  StatusRead,
			visible: []FieldName{FieldPurchaseDate, FieldPrice, FieldStartReadingDate, FieldReadingProgress, FieldFinishReadingDate},
		},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			fields := VisibleFields(tt.status)
			for _, f := range EnrichableFields {
				assert.True(t, fields.Has(f), "enrichable field %s should always be visible", f)
			}
			for _, f := range tt.visible {
				assert.True(t, fields.Has(f), "expected %s to be visible", f)
			}
			for _, f := range tt.hidden {
				assert.False(t, fields.Has(f), "expected %s to be hidden", f)
			}
		})
	}
}

func TestFieldSetSorted(t *testing.T) {
	set := NewFieldSet(FieldTitle, FieldAuthors, FieldPrice)
	assert.Equal(t, []FieldName{FieldAuthors, FieldPrice, FieldTitle}, set.Sorted())
}
