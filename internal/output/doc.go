// Package output writes finished reviews for local display.
//
// Two formats are supported:
//   - markdown: the review text exactly as the model produced it (default)
//   - json: the review plus pack, mode, and model metadata
//
// Use [GetWriter] to obtain a [Writer] for a format string, or [WriteReview]
// to also pick the destination.
package output
