package server

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/samuelcardenasg23/book-play/internal/book"
	"github.com/samuelcardenasg23/book-play/internal/search"
)

// CandidateSearcher produces candidates for a query.
type CandidateSearcher interface {
	Search(ctx context.Context, query string) []search.Candidate
}

// PatchMapper resolves a selected volume into a record patch.
type PatchMapper interface {
	MapToRecord(ctx context.Context, id string) book.Patch
}

// StatusView is one row of the status presentation table.
type StatusView struct {
	Value book.Status `json:"value"`
	Label string      `json:"label"`
	Color string      `json:"color"`
}

// StatusViews is the presentation table served to the web UI.
var StatusViews = []StatusView{
	{Value: book.StatusForPurchase, Label: "For Purchase", Color: "danger"},
	{Value: book.StatusOwned, Label: "Owned", Color: "info"},
	{Value: book.StatusReading, Label: "Reading", Color: "warning"},
	{Value: book.StatusRead, Label: "Read", Color: "success"},
}

// Handler serves the API routes.
type Handler struct {
	searcher CandidateSearcher
	mapper   PatchMapper
}

// NewHandler creates a handler from the search service and mapper.
func NewHandler(searcher CandidateSearcher, mapper PatchMapper) *Handler {
	return &Handler{searcher: searcher, mapper: mapper}
}

// Register mounts every route on r.
func (h *Handler) Register(r gin.IRouter) {
	r.GET("/health", h.Health)

	api := r.Group("/api")
	{
		api.GET("/search", h.Search)
		api.GET("/volumes/:id/patch", h.VolumePatch)
		api.GET("/statuses", h.Statuses)
		api.GET("/fields", h.Fields)
		api.GET("/price", h.Price)
	}
}

// Health reports liveness.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Search returns the candidates for ?q=. Provider failures come back as an
// empty list.
func (h *Handler) Search(c *gin.Context) {
	query := strings.TrimSpace(c.Query("q"))
	candidates := h.searcher.Search(c.Request.Context(), query)
	c.JSON(http.StatusOK, gin.H{
		"query":      query,
		"candidates": candidates,
	})
}

// VolumePatch returns the field patch for a selected volume.
func (h *Handler) VolumePatch(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	patch := h.mapper.MapToRecord(c.Request.Context(), id)
	c.JSON(http.StatusOK, patch)
}

// Statuses returns the status presentation table.
func (h *Handler) Statuses(c *gin.Context) {
	c.JSON(http.StatusOK, StatusViews)
}

// Fields returns the form fields visible for ?status=.
func (h *Handler) Fields(c *gin.Context) {
	status, err := book.ParseStatus(c.Query("status"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": status,
		"fields": book.VisibleFields(status).Sorted(),
	})
}

// Price converts between minor units (?minor=1050) and a decimal amount
// (?amount=10.50).
func (h *Handler) Price(c *gin.Context) {
	minor, hasMinor := c.GetQuery("minor")
	amount, hasAmount := c.GetQuery("amount")

	var price book.Price
	switch {
	case hasMinor == hasAmount:
		c.JSON(http.StatusBadRequest, gin.H{"error": "provide exactly one of minor or amount"})
		return
	case hasMinor:
		v, err := strconv.ParseInt(strings.TrimSpace(minor), 10, 64)
		if err != nil || v < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "minor must be a non-negative integer"})
			return
		}
		price = book.Price(v)
	default:
		p, err := book.ParsePrice(amount)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		price = p
	}

	c.JSON(http.StatusOK, gin.H{
		"minor":  int64(price),
		"amount": price.Format(),
	})
}
