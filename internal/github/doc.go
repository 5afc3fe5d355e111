// Package github posts review results as pull-request comments.
//
// A review is published as one issue comment whose body starts with
// [config.CommentMarker]. Failures are reported as [*StatusError] when GitHub
// answered, carrying a hint for permission and not-found cases, or as
// [*TransportError] when no response arrived.
package github
