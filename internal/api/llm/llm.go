// Package llm wraps the chat-completion providers behind a single interface
// so the recommendation service does not care which vendor answers.
package llm

import (
	"context"
	"errors"
)

// ErrAPIKeyMissing is returned at construction time when the provider
// credential is absent. Callers should treat it as a configuration fault,
// not something to retry.
var ErrAPIKeyMissing = errors.New("llm: API key is not configured")

// Client generates one completion for a system/user message pair.
type Client interface {
	GenerateCompletion(ctx context.Context, system, user string) (string, error)
	Model() string
}
