package config

import (
	"errors"
	"strings"
)

// ErrMissingCIConfig is returned when a PR comment is requested without the
// repository or token needed to post it.
var ErrMissingCIConfig = errors.New("missing GITHUB_REPOSITORY or GITHUB_TOKEN environment variables")

// CIConfig carries the environment of a pull-request CI job. It is populated
// once at process start by [LoadCI].
type CIConfig struct {
	BaseRef    string
	Repository string
	PRNumber   string
	Token      string
	APIURL     string
}

// LoadCI reads the CI job environment through getenv (usually os.Getenv).
func LoadCI(getenv func(string) string) CIConfig {
	ci := CIConfig{
		BaseRef:    strings.TrimSpace(getenv("GITHUB_BASE_REF")),
		Repository: strings.TrimSpace(getenv("GITHUB_REPOSITORY")),
		PRNumber:   strings.TrimSpace(getenv("PR_NUMBER")),
		Token:      strings.TrimSpace(getenv("GITHUB_TOKEN")),
		APIURL:     strings.TrimSpace(getenv("GITHUB_API_URL")),
	}
	if ci.BaseRef == "" {
		ci.BaseRef = DefaultBaseRef
	}
	if ci.APIURL == "" {
		ci.APIURL = DefaultGitHubAPIURL
	}
	ci.APIURL = strings.TrimRight(ci.APIURL, "/")
	return ci
}

// PostsComment reports whether the review should be posted to a pull request
// rather than printed.
func (c CIConfig) PostsComment() bool {
	return c.PRNumber != ""
}

// ValidateComment checks that everything needed to post a comment is present.
func (c CIConfig) ValidateComment() error {
	if c.Repository == "" || c.Token == "" {
		return ErrMissingCIConfig
	}
	return nil
}
