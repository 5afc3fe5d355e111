// Package cli wires together the Cobra command tree for the reviewpack binary.
//
// It defines the root command and all subcommands (init, list-packs, review,
// ci-review, config, hook, version), binds flags, resolves configuration, and
// maps every failure to exit code 1 after printing a human-readable message.
// Process collaborators are gathered in [Deps] so tests can run the tree
// without git, network access, or a terminal.
package cli
