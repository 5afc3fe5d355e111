package review

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/dshills/reviewpack/internal/providers"
	"github.com/dustin/go-humanize"
	"github.com/rs/zerolog"
)

// ErrDiffTooLarge is returned before any remote call when the diff exceeds the
// configured character limit.
var ErrDiffTooLarge = errors.New("diff too large")

// Invoker sends one prompt to a provider under a size bound and a timeout.
type Invoker struct {
	provider    providers.Reviewer
	maxDiffSize int
	maxTokens   int
	timeout     time.Duration
	log         zerolog.Logger
}

// Options configures an Invoker.
type Options struct {
	MaxDiffSize int
	MaxTokens   int
	Timeout     time.Duration
	Logger      zerolog.Logger
}

// NewInvoker returns an Invoker for provider.
func NewInvoker(provider providers.Reviewer, opts Options) *Invoker {
	return &Invoker{
		provider:    provider,
		maxDiffSize: opts.MaxDiffSize,
		maxTokens:   opts.MaxTokens,
		timeout:     opts.Timeout,
		log:         opts.Logger,
	}
}

// IsEmpty reports whether diff contains no changes worth reviewing.
func IsEmpty(diff string) bool {
	return strings.TrimSpace(diff) == ""
}

// Size is the length of diff in characters, the unit of the size bound.
func Size(diff string) int {
	return utf8.RuneCountInString(diff)
}

// CheckSize fails with ErrDiffTooLarge when diff has more than max characters.
// A non-positive max disables the check.
func CheckSize(diff string, max int) error {
	if max <= 0 {
		return nil
	}
	n := Size(diff)
	if n > max {
		return fmt.Errorf("%w (%s characters). Maximum size is %s characters. Consider reviewing smaller changesets",
			ErrDiffTooLarge, humanize.Comma(int64(n)), humanize.Comma(int64(max)))
	}
	return nil
}

// CheckSize applies the invoker's configured bound to diff.
func (iv *Invoker) CheckSize(diff string) error {
	return CheckSize(diff, iv.maxDiffSize)
}

// Invoke issues exactly one provider request for p and returns the review
// text. Oversized diffs are rejected without contacting the provider.
func (iv *Invoker) Invoke(ctx context.Context, p Prompt) (string, error) {
	if err := iv.CheckSize(p.Diff); err != nil {
		return "", err
	}

	if iv.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, iv.timeout)
		defer cancel()
	}

	start := time.Now()
	resp, err := iv.provider.Review(ctx, providers.ReviewRequest{
		Prompt:    p.Text,
		MaxTokens: iv.maxTokens,
	})
	if err != nil {
		return "", err
	}

	iv.log.Debug().
		Str("provider", iv.provider.Name()).
		Int64("input_tokens", resp.InputTokens).
		Int64("output_tokens", resp.OutputTokens).
		Dur("elapsed", time.Since(start)).
		Msg("review received")

	return resp.Content, nil
}
