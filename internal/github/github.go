package github

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	gh "github.com/google/go-github/v68/github"

	"github.com/dshills/reviewpack/internal/config"
)

// Client posts review results to the GitHub REST API.
type Client struct {
	api *gh.Client
}

// NewClient creates a GitHub client authenticated with token. An empty
// apiURL selects the public API. Every request is bounded by timeout.
func NewClient(token, apiURL string, timeout time.Duration) (*Client, error) {
	if apiURL == "" {
		apiURL = config.DefaultGitHubAPIURL
	}
	base, err := url.Parse(strings.TrimRight(apiURL, "/") + "/")
	if err != nil {
		return nil, fmt.Errorf("parsing GitHub API URL %q: %w", apiURL, err)
	}

	api := gh.NewClient(&http.Client{Timeout: timeout}).WithAuthToken(token)
	api.BaseURL = base
	return &Client{api: api}, nil
}

// StatusError is returned when GitHub answers with a non-2xx status.
type StatusError struct {
	Code   int
	Reason string
	Repo   string
	PR     string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%d - %s", e.Code, e.Reason)
}

// Hint returns a remediation hint for well-known failures, or "".
func (e *StatusError) Hint() string {
	switch e.Code {
	case http.StatusForbidden:
		return "Check that GITHUB_TOKEN has 'pull-requests: write' permission"
	case http.StatusNotFound:
		return fmt.Sprintf("Repository '%s' or PR #%s not found", e.Repo, e.PR)
	default:
		return ""
	}
}

// TransportError is returned when no HTTP response was received.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string { return e.Err.Error() }

func (e *TransportError) Unwrap() error { return e.Err }

// CommentBody prefixes review with the marker heading used for every comment.
func CommentBody(review string) string {
	return config.CommentMarker + "\n\n" + review
}

// PostReviewComment posts review as a single issue comment on the pull
// request and returns the response status code. repo is "owner/name".
func (c *Client) PostReviewComment(ctx context.Context, repo, prNumber, review string) (int, error) {
	owner, name, ok := strings.Cut(repo, "/")
	if !ok || owner == "" || name == "" {
		return 0, fmt.Errorf("invalid repository %q, want owner/name", repo)
	}
	number, err := strconv.Atoi(prNumber)
	if err != nil {
		return 0, fmt.Errorf("invalid PR number %q: %w", prNumber, err)
	}

	_, resp, err := c.api.Issues.CreateComment(ctx, owner, name, number, &gh.IssueComment{
		Body: gh.Ptr(CommentBody(review)),
	})
	var accepted *gh.AcceptedError
	if errors.As(err, &accepted) {
		err = nil
	}
	if err != nil {
		if resp == nil || resp.Response == nil {
			return 0, &TransportError{Err: err}
		}
		return resp.StatusCode, &StatusError{
			Code:   resp.StatusCode,
			Reason: reason(resp.StatusCode, err),
			Repo:   repo,
			PR:     prNumber,
		}
	}
	return resp.StatusCode, nil
}

// reason prefers the standard status text and falls back to GitHub's message.
func reason(code int, err error) string {
	if text := http.StatusText(code); text != "" {
		return text
	}
	var er *gh.ErrorResponse
	if errors.As(err, &er) && er.Message != "" {
		return er.Message
	}
	return err.Error()
}
