// Package redact scrubs secrets from a diff before it is placed in a review
// prompt.
//
// Detection uses regex heuristics for common secret shapes such as provider
// API keys, JWTs, private key headers, and Azure connection string keys.
// Whole file sections can also be withheld by path glob (see [DefaultPaths]).
// Redaction is opt-in; without it the diff reaches the prompt verbatim.
package redact
