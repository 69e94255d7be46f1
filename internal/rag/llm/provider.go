package llm

import "context"

// Provider is the inference backend: one fully-assembled prompt in, one
// response text out. May fail with network or timeout errors.
type Provider interface {
	Invoke(ctx context.Context, prompt string) (string, error)
}
