package googlebooks

import (
	"context"
	"log/slog"
	"net/url"
	"strings"
)

// Search runs a free-text volume search. Items are returned in provider
// order, untouched.
func (c *Client) Search(ctx context.Context, query string) (*SearchResponse, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrEmptyQuery
	}

	endpoint := c.searchURL(query)
	slog.Debug("Searching Google Books", "query", query)

	var response SearchResponse
	if err := c.getJSON(ctx, "search", endpoint, &response); err != nil {
		return nil, err
	}

	slog.Debug("Google Books search finished", "query", query, "items", len(response.Items), "total", response.TotalItems)
	return &response, nil
}

// FetchByID loads a single volume. The returned volume may lack
// VolumeInfo when the provider sends an unexpected shape.
func (c *Client) FetchByID(ctx context.Context, id string) (*Volume, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, ErrEmptyID
	}
	if id == "." || id == ".." {
		return nil, ErrInvalidID
	}

	endpoint := c.volumeURL(id)
	slog.Debug("Fetching Google Books volume", "id", id)

	var volume Volume
	if err := c.getJSON(ctx, "fetch", endpoint, &volume); err != nil {
		return nil, err
	}

	return &volume, nil
}

func (c *Client) searchURL(query string) string {
	u := *c.baseURL
	params := u.Query()
	params.Set("q", query)
	params.Set("key", c.apiKey)
	u.RawQuery = params.Encode()
	return u.String()
}

func (c *Client) volumeURL(id string) string {
	u := c.baseURL.JoinPath(url.PathEscape(id))
	params := u.Query()
	params.Set("key", c.apiKey)
	u.RawQuery = params.Encode()
	return u.String()
}
