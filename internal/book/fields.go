package book

import "sort"

// FieldName identifies a record field by its storage/form name.
type FieldName string

const (
	FieldTitle             FieldName = "title"
	FieldAuthors           FieldName = "authors"
	FieldCoverImageURL     FieldName = "cover_image_url"
	FieldDescription       FieldName = "description"
	FieldPageCount         FieldName = "page_count"
	FieldPublishedDate     FieldName = "published_date"
	FieldMainCategory      FieldName = "main_category"
	FieldAverageRating     FieldName = "average_rating"
	FieldExternalID        FieldName = "external_id"
	FieldStatus            FieldName = "status"
	FieldPrice             FieldName = "price"
	FieldPurchaseDate      FieldName = "purchase_date"
	FieldStartReadingDate  FieldName = "start_reading_date"
	FieldFinishReadingDate FieldName = "finish_reading_date"
	FieldReadingProgress   FieldName = "reading_progress"
	FieldPersonalRating    FieldName = "personal_rating"
	FieldPersonalNotes     FieldName = "personal_notes"
)

// EnrichableFields are the fields populated from the metadata provider.
var EnrichableFields = []FieldName{
	FieldTitle,
	FieldAuthors,
	FieldCoverImageURL,
	FieldDescription,
	FieldPageCount,
	FieldPublishedDate,
	FieldMainCategory,
	FieldAverageRating,
	FieldExternalID,
}

var (
	alwaysVisible = []FieldName{
		FieldStatus,
		FieldPersonalRating,
		FieldPersonalNotes,
	}
	purchaseFields = []FieldName{FieldPurchaseDate, FieldPrice}
	readingFields  = []FieldName{FieldStartReadingDate, FieldReadingProgress}
)

// FieldSet is an unordered set of field names.
type FieldSet map[FieldName]struct{}

// NewFieldSet builds a set from names.
func NewFieldSet(names ...FieldName) FieldSet {
	set := make(FieldSet, len(names))
	set.Add(names...)
	return set
}

// Add inserts names into the set.
func (s FieldSet) Add(names ...FieldName) {
	for _, name := range names {
		s[name] = struct{}{}
	}
}

// Has reports whether name is in the set.
func (s FieldSet) Has(name FieldName) bool {
	_, ok := s[name]
	return ok
}

// Sorted returns the members in lexical order.
func (s FieldSet) Sorted() []FieldName {
	names := make([]FieldName, 0, len(s))
	for name := range s {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })
	return names
}

// VisibleFields returns the form fields a UI should show for status.
// Purchase fields are hidden while the book is only wanted, reading fields
// appear once reading starts, and the finish date only for finished books.
func VisibleFields(status Status) FieldSet {
	set := NewFieldSet(EnrichableFields...)
	set.Add(alwaysVisible...)

	switch status {
	case StatusOwned:
		set.Add(purchaseFields...)
	case StatusReading:
		set.Add(purchaseFields...)
		set.Add(readingFields...)
	case StatusRead:
		set.Add(purchaseFields...)
		set.Add(readingFields...)
		set.Add(FieldFinishReadingDate)
	}

	return set
}
