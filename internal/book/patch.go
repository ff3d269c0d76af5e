package book

import "fmt"

// Patch is a sparse set of field assignments. A missing key leaves the
// record's value untouched; a present key overwrites it.
//
// Patches encode to JSON as an object keyed by field name, with null for
// cleared optional values. Value types by field:
//   - authors: []string
//   - page_count: *int (nil clears)
//   - average_rating: *float64 (nil clears)
//   - every other enrichable field: string
type Patch map[FieldName]any

// ClearPatch returns a patch that resets every enrichable field to its
// empty value. It is produced when a selection cannot be resolved.
func ClearPatch() Patch {
	return Patch{
		FieldTitle:         "",
		FieldAuthors:       []string{},
		FieldCoverImageURL: "",
		FieldDescription:   "",
		FieldPageCount:     (*int)(nil),
		FieldPublishedDate: "",
		FieldMainCategory:  "",
		FieldAverageRating: (*float64)(nil),
		FieldExternalID:    "",
	}
}

// Has reports whether the patch assigns field.
func (p Patch) Has(field FieldName) bool {
	_, ok := p[field]
	return ok
}

// Text returns the string assigned to field, if any.
func (p Patch) Text(field FieldName) (string, bool) {
	v, ok := p[field].(string)
	return v, ok
}

// Authors returns the assigned author list, if any.
func (p Patch) Authors() ([]string, bool) {
	v, ok := p[FieldAuthors].([]string)
	return v, ok
}

// PageCount returns the assigned page count. ok is false when the patch
// does not assign the field; a nil value with ok true means "clear".
func (p Patch) PageCount() (*int, bool) {
	v, ok := p[FieldPageCount].(*int)
	return v, ok
}

// AverageRating returns the assigned average rating, see PageCount.
func (p Patch) AverageRating() (*float64, bool) {
	v, ok := p[FieldAverageRating].(*float64)
	return v, ok
}

// IsClear reports whether the patch blanks every enrichable field.
func (p Patch) IsClear() bool {
	for _, field := range EnrichableFields {
		if !p.Has(field) {
			return false
		}
	}
	if title, _ := p.Text(FieldTitle); title != "" {
		return false
	}
	if id, _ := p.Text(FieldExternalID); id != "" {
		return false
	}
	authors, _ := p.Authors()
	return len(authors) == 0
}

// Apply writes the patch onto r. Unknown fields and values of the wrong
// type are rejected before anything is written.
func (p Patch) Apply(r *Record) error {
	for field, value := range p {
		if err := checkPatchValue(field, value); err != nil {
			return err
		}
	}

	for field, value := range p {
		switch field {
		case FieldTitle:
			r.Title = value.(string)
		case FieldAuthors:
			authors := value.([]string)
			r.Authors = append(make([]string, 0, len(authors)), authors...)
		case FieldCoverImageURL:
			r.CoverImageURL = value.(string)
		case FieldDescription:
			r.Description = value.(string)
		case FieldPageCount:
			r.PageCount = copyPtr(value.(*int))
		case FieldPublishedDate:
			r.PublishedDate = value.(string)
		case FieldMainCategory:
			r.MainCategory = value.(string)
		case FieldAverageRating:
			r.AverageRating = copyPtr(value.(*float64))
		case FieldExternalID:
			r.ExternalID = value.(string)
		}
	}
	return nil
}

func checkPatchValue(field FieldName, value any) error {
	var ok bool
	switch field {
	case FieldAuthors:
		_, ok = value.([]string)
	case FieldPageCount:
		_, ok = value.(*int)
	case FieldAverageRating:
		_, ok = value.(*float64)
	case FieldTitle, FieldCoverImageURL, FieldDescription, FieldPublishedDate, FieldMainCategory, FieldExternalID:
		_, ok = value.(string)
	default:
		return fmt.Errorf("field %q cannot be patched", field)
	}
	if !ok {
		return fmt.Errorf("field %q: unexpected value type %T", field, value)
	}
	return nil
}

func copyPtr[T any](v *T) *T {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
