// Package packs locates, reads, and installs review packs.
//
// A pack is a directory under the packs root holding an optional pack.yaml
// manifest, review guidance (overlay.md and checklists/*.md), and assistant
// configuration for Windsurf, Cursor, Claude Code, and GitHub Actions. Packs
// are read through [io/fs.FS] and never modified; [Installer] copies their
// components into a project.
package packs
