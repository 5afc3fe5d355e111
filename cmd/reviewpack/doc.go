// Reviewpack installs AI assistant code review packs into a project and runs
// LLM code reviews on git changes.
//
// Usage:
//
//	reviewpack list-packs                         # show available packs
//	reviewpack init --pack python-azure-ai-agent  # scaffold a pack into .
//	reviewpack review                             # review working tree changes
//	reviewpack review --staged                    # review staged changes
//	reviewpack ci-review                          # review a PR branch in CI
//
// Reviews require ANTHROPIC_API_KEY in the environment or in a .env file in
// the working directory.
package main
