// Package gitctx extracts diffs from a git repository.
//
// It supports the three review provenances: staged changes (index vs HEAD),
// working changes (working tree vs index), and a branch diff against the merge
// base of origin/<base> used by pull-request CI jobs. A failed git invocation
// is reported as a [GitError] carrying git's stderr; whether that is fatal is
// the caller's decision.
package gitctx
