package bangumi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// StatusError reports a non-2xx response from the API. Callers treat it as
// "no data" for the affected subject; it is never retried.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("bangumi: unexpected status %d", e.Code)
}

func (c *Client) getJSON(ctx context.Context, endpoint string, target any) error {
	return c.doJSONRequest(ctx, http.MethodGet, endpoint, nil, target)
}

func (c *Client) postJSON(ctx context.Context, endpoint string, body, target any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("bangumi: encode request body: %w", err)
	}
	return c.doJSONRequest(ctx, http.MethodPost, endpoint, payload, target)
}

func (c *Client) doJSONRequest(ctx context.Context, method, endpoint string, body []byte, target any) error {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &StatusError{Code: resp.StatusCode}
	}

	return json.NewDecoder(resp.Body).Decode(target)
}
