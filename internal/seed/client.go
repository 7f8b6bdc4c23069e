package seed

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"txdash/internal/core"
)

// DefaultURL is the upstream product-transaction dataset.
const DefaultURL = "https://s3.amazonaws.com/roxiler.com/product_transaction.json"

// maxResponseBytes caps the seed payload. The real dataset is a few
// hundred KB; anything near this limit is a broken upstream.
const maxResponseBytes = 16 << 20

// Client fetches the external seed dataset used to (re)initialize the
// record store.
type Client struct {
	httpClient *http.Client
	url        string
}

func NewClient(url string, timeout time.Duration) *Client {
	if url == "" {
		url = DefaultURL
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		url:        url,
	}
}

// URL returns the configured seed source.
func (c *Client) URL() string {
	return c.url
}

// Fetch downloads and decodes the full record set. The upstream is a
// static JSON array; content type is not checked because S3 serves it
// as plain text.
func (c *Client) Fetch(ctx context.Context) ([]core.Transaction, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("build seed request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch seed data: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("seed source returned status %d", resp.StatusCode)
	}

	var records []core.Transaction
	dec := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes))
	if err := dec.Decode(&records); err != nil {
		return nil, fmt.Errorf("decode seed data: %w", err)
	}

	return records, nil
}
