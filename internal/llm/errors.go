// Package llm talks to an OpenAI-compatible chat completion endpoint.
package llm

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingAPIKey is returned without a network call when no key is configured.
	ErrMissingAPIKey = errors.New("language model API key is not configured")

	// ErrEmptyCompletion indicates the provider answered without any content.
	ErrEmptyCompletion = errors.New("language model returned an empty completion")

	// ErrNotJSONObject indicates a reply that is not a single JSON object.
	ErrNotJSONObject = errors.New("language model reply is not a JSON object")
)

// ProviderError wraps a non-2xx answer from the provider.
type ProviderError struct {
	StatusCode int
	Model      string
	Err        error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("provider returned status %d for model %s: %v", e.StatusCode, e.Model, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}
