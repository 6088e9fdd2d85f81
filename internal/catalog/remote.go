package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/mrlokans/bookstore/internal/entities"
)

// Client fetches the book catalog from a remote HTTP endpoint that
// serves a JSON array of book objects. Any transport failure, bad
// status or shape mismatch is reported as an error and never crashes
// the caller.
type Client struct {
	httpClient *http.Client
	url        string
}

// NewClient creates a catalog client for the given endpoint. A zero
// timeout falls back to 10 seconds so a hung remote cannot stall the
// storefront indefinitely.
func NewClient(url string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		url: url,
	}
}

// FetchAll retrieves the full catalog.
func (c *Client) FetchAll(ctx context.Context) ([]entities.Book, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", "Bookstore/1.0 (https://github.com/mrlokans/bookstore)")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch catalog: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	var books []entities.Book
	if err := json.NewDecoder(resp.Body).Decode(&books); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}

	return books, nil
}
