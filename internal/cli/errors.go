package cli

import (
	"errors"

	"github.com/dshills/reviewpack/internal/providers"
	"github.com/dshills/reviewpack/internal/review"
)

// reportReviewError prints the message for a failed review request and
// returns the error that ends the command.
func reportReviewError(a *app, err error) error {
	var (
		apiErr       *providers.APIError
		transportErr *providers.TransportError
	)
	switch {
	case errors.Is(err, review.ErrDiffTooLarge):
		a.errorf("Validation error: %v", err)
	case errors.Is(err, providers.ErrMissingAPIKey):
		a.errorf("Missing dependency: %v. Export it or add it to a .env file.", err)
	case providers.IsAuthError(err):
		a.errorf("Authentication failed. Check your ANTHROPIC_API_KEY.")
	case providers.IsRateLimitError(err):
		a.errorf("Rate limit exceeded. Please wait and try again.")
	case errors.As(err, &apiErr):
		a.errorf("%v", apiErr)
	case errors.As(err, &transportErr):
		a.errorf("Review failed (connection): %v", transportErr.Err)
	default:
		a.errorf("Review failed: %v", err)
	}
	a.log.Debug().Err(err).Msg("review request failed")
	return errFailed
}
