package providers

import (
	"context"
	"fmt"
)

// ReviewRequest contains the data sent to an LLM for review.
type ReviewRequest struct {
	Prompt    string
	MaxTokens int
}

// ReviewResponse contains the raw response from an LLM.
type ReviewResponse struct {
	Content      string
	InputTokens  int64
	OutputTokens int64
}

// Reviewer is the provider abstraction interface.
type Reviewer interface {
	Review(ctx context.Context, req ReviewRequest) (ReviewResponse, error)
	Name() string
}

// New creates a provider by name.
func New(provider, model string) (Reviewer, error) {
	switch provider {
	case "", "anthropic":
		a, err := NewAnthropic(model)
		if err != nil {
			return nil, err
		}
		return a, nil
	default:
		return nil, fmt.Errorf("unknown provider: %s", provider)
	}
}
