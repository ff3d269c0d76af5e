package googlebooks

// SearchResponse is the body of GET {base}?q=...
type SearchResponse struct {
	Kind       string   `json:"kind"`
	TotalItems int      `json:"totalItems"`
	Items      []Volume `json:"items"`
}

// Volume is a single item, returned by search and by GET {base}/{id}.
type Volume struct {
	ID         string      `json:"id"`
	VolumeInfo *VolumeInfo `json:"volumeInfo"`
}

// VolumeInfo is the nested metadata object of a volume.
type VolumeInfo struct {
	Title         string      `json:"title"`
	Subtitle      string      `json:"subtitle"`
	Authors       []string    `json:"authors"`
	Publisher     string      `json:"publisher"`
	PublishedDate string      `json:"publishedDate"`
	Description   string      `json:"description"`
	PageCount     int         `json:"pageCount"`
	Categories    []string    `json:"categories"`
	AverageRating *float64    `json:"averageRating"`
	RatingsCount  int         `json:"ratingsCount"`
	ImageLinks    *ImageLinks `json:"imageLinks"`
	Language      string      `json:"language"`
}

// ImageLinks holds the cover image URLs.
type ImageLinks struct {
	SmallThumbnail string `json:"smallThumbnail"`
	Thumbnail      string `json:"thumbnail"`
}

// CoverURL returns the thumbnail, falling back to the small thumbnail.
func (l *ImageLinks) CoverURL() string {
	if l == nil {
		return ""
	}
	if l.Thumbnail != "" {
		return l.Thumbnail
	}
	return l.SmallThumbnail
}
