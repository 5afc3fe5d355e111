// Package review renders review prompts and sends them to a provider.
//
// Two prompt variants exist: [LocalTemplate] for interactive reviews, which
// embeds pack overlay and checklist text, and [CITemplate] for pull-request
// jobs, which lists the changed files and carries domain-specific review
// dimensions. Both share one severity and output-format footer.
//
// [Invoker] enforces a character bound on the diff before any remote call and
// then issues exactly one provider request under a timeout. The result is
// returned as opaque markdown.
package review
