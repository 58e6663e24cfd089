// Package completion wraps the external AI chat-completion providers behind
// a single interface so the recommendation service takes the client as an
// injected dependency instead of a shared global handle.
package completion

import (
	"context"
	"errors"
	"fmt"
)

// Client is one chat-completion provider. Complete sends a two-message
// conversation (system + user) and returns the first completion's raw text.
// Implementations do not retry.
type Client interface {
	Complete(ctx context.Context, system, user string) (string, error)
	// Source identifies the provider in the response envelope.
	Source() string
}

var (
	// ErrMissingAPIKey is returned at construction time when the provider
	// credential is absent. No network call is ever attempted without it.
	ErrMissingAPIKey = errors.New("completion API key is not configured")

	// ErrTransport wraps network-level failures reaching the provider.
	ErrTransport = errors.New("completion request failed")

	// ErrEmptyCompletion is returned when the provider answers with no
	// usable text content.
	ErrEmptyCompletion = errors.New("completion response contains no content")

	// ErrMalformedReply is returned when the provider's 2xx response body
	// cannot be decoded as the expected envelope.
	ErrMalformedReply = errors.New("completion response could not be decoded")
)

// StatusError is a non-2xx answer from the provider, carrying the upstream
// status code.
type StatusError struct {
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("completion API returned status %d", e.StatusCode)
}
