// Package client is the consumer-facing side of the recommendations API:
// a thin JSON transport plus a Session that tracks one search's
// loading/error/result state the way the mobile UI consumes it.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Transport invokes a named backend function with a JSON payload and decodes
// the JSON reply into out. Implementations return *APIError for non-2xx
// replies so callers can tell an API rejection from a network failure.
type Transport interface {
	Invoke(ctx context.Context, function string, payload any, out any) error
}

// APIError is a non-2xx reply from the API, carrying the server's error
// message verbatim.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("API returned status %d", e.StatusCode)
}

// HTTPTransport posts JSON to <baseURL>/<function>.
type HTTPTransport struct {
	baseURL    string
	httpClient *http.Client
}

var _ Transport = (*HTTPTransport)(nil)

// NewHTTPTransport creates a transport rooted at baseURL, e.g.
// "https://api.example.com/api/v1".
func NewHTTPTransport(baseURL string, timeout time.Duration) *HTTPTransport {
	if timeout == 0 {
		timeout = 90 * time.Second
	}
	return &HTTPTransport{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (t *HTTPTransport) Invoke(ctx context.Context, function string, payload any, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.baseURL+"/"+function, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var apiErr struct {
			Error string `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&apiErr)
		return &APIError{StatusCode: resp.StatusCode, Message: apiErr.Error}
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
