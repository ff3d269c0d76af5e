package googlebooks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	bperrors "github.com/samuelcardenasg23/book-play/internal/errors"
)

const maxBodyBytes = 8 << 20

// getJSON issues one GET and decodes the body into target. Every failure
// comes back as a *errors.FetchError; there are no retries.
func (c *Client) getJSON(ctx context.Context, op, endpoint string, target any) error {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return bperrors.NewUnreachableError(op, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return bperrors.NewUnreachableError(op, fmt.Errorf("creating request: %w", err))
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return bperrors.NewUnreachableError(op, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		slog.Debug("Google Books returned an error status",
			"op", op,
			"status", resp.StatusCode,
			"body", strings.TrimSpace(string(body)),
		)
		return bperrors.NewHTTPStatusError(op, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return bperrors.NewUnreachableError(op, fmt.Errorf("reading body: %w", err))
	}
	if len(strings.TrimSpace(string(body))) == 0 {
		return bperrors.NewMalformedError(op, errors.New("empty response body"))
	}
	if err := json.Unmarshal(body, target); err != nil {
		return bperrors.NewMalformedError(op, err)
	}

	return nil
}
