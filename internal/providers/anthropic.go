package providers

import (
	"context"
	"errors"
	"os"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

// ErrMissingAPIKey is returned when no Anthropic credential is configured.
var ErrMissingAPIKey = errors.New("ANTHROPIC_API_KEY environment variable is not set")

// Anthropic implements the Reviewer interface for Anthropic's Messages API.
type Anthropic struct {
	client anthropic.Client
	model  anthropic.Model
}

// NewAnthropic creates a new Anthropic provider. The SDK's own retries are
// disabled; every Review is exactly one request.
func NewAnthropic(model string, opts ...option.RequestOption) (*Anthropic, error) {
	key := os.Getenv("ANTHROPIC_API_KEY")
	if key == "" {
		return nil, ErrMissingAPIKey
	}
	base := []option.RequestOption{
		option.WithAPIKey(key),
		option.WithMaxRetries(0),
	}
	return &Anthropic{
		client: anthropic.NewClient(append(base, opts...)...),
		model:  anthropic.Model(model),
	}, nil
}

func (a *Anthropic) Name() string { return "anthropic" }

// Review sends the prompt as a single user message and returns the text of
// the first content block.
func (a *Anthropic) Review(ctx context.Context, req ReviewRequest) (ReviewResponse, error) {
	maxTokens := req.MaxTokens
	if maxTokens == 0 {
		maxTokens = 4096
	}

	message, err := a.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     a.model,
		MaxTokens: int64(maxTokens),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(req.Prompt)),
		},
	})
	if err != nil {
		return ReviewResponse{}, classify(err)
	}

	if len(message.Content) == 0 {
		return ReviewResponse{}, &APIError{Message: "response contained no content blocks"}
	}
	first := message.Content[0]
	if first.Type != "text" {
		return ReviewResponse{}, &APIError{Message: "unexpected first content block of type " + string(first.Type)}
	}

	return ReviewResponse{
		Content:      first.Text,
		InputTokens:  message.Usage.InputTokens,
		OutputTokens: message.Usage.OutputTokens,
	}, nil
}
