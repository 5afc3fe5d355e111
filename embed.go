// Package reviewpack ships the built-in review packs so an installed binary
// works without a checkout of this repository.
package reviewpack

import "embed"

// Packs holds the packs/ tree as it was when the binary was built.
//
//go:embed packs
var Packs embed.FS
