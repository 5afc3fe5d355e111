// Package providers implements the Reviewer interface for LLM providers.
//
// The Anthropic provider wraps the official SDK with retries disabled, so a
// review is exactly one request. Failures are classified into [AuthError],
// [RateLimitError], [APIError] and [TransportError] so callers can print
// targeted guidance.
//
// Use [New] to obtain a Reviewer by provider name and model string.
package providers
