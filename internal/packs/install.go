package packs

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// ErrTargetNotFound is returned when the install target is not a directory.
var ErrTargetNotFound = errors.New("target directory does not exist")

// ItemKind selects how an Item is copied.
type ItemKind int

const (
	// File copies a single file.
	File ItemKind = iota
	// Tree copies a directory recursively.
	Tree
	// Flat copies the regular files directly inside a directory.
	Flat
)

// Item maps a path inside a pack to a path inside the target project. Both
// use forward slashes.
type Item struct {
	Src  string
	Dst  string
	Kind ItemKind
}

// Component is one group of files offered to the user as a unit.
type Component struct {
	Name   string
	Prompt string
	Items  []Item
	// Notes are printed after a successful install.
	Notes []string
}

// Components are offered in this order by init.
var Components = []Component{
	{
		Name:   "windsurf",
		Prompt: "Install Windsurf rules and workflows?",
		Items:  []Item{{Src: "windsurf", Dst: ".windsurf", Kind: Tree}},
	},
	{
		Name:   "cursor",
		Prompt: "Install Cursor rules?",
		Items: []Item{
			{Src: "cursor/cursorrules", Dst: ".cursorrules"},
			{Src: "cursor/AGENTS.md", Dst: "AGENTS.md"},
		},
	},
	{
		Name:   "claude",
		Prompt: "Install Claude Code config?",
		Items: []Item{
			{Src: "claude/CLAUDE.md", Dst: "CLAUDE.md"},
			{Src: "claude/settings.json", Dst: ".claude/settings.json"},
		},
	},
	{
		Name:   "github",
		Prompt: "Install GitHub Action for PR reviews?",
		Items: []Item{
			{Src: "github/workflows", Dst: ".github/workflows", Kind: Flat},
			{Src: "github/scripts", Dst: ".github/scripts", Kind: Flat},
		},
		Notes: []string{"Remember to add ANTHROPIC_API_KEY to repository secrets"},
	},
}

// ResolveTarget returns the absolute form of target, taken relative to cwd,
// and whether it lies outside cwd.
func ResolveTarget(target, cwd string) (string, bool, error) {
	if !filepath.IsAbs(target) {
		target = filepath.Join(cwd, target)
	}
	abs, err := filepath.Abs(target)
	if err != nil {
		return "", false, err
	}
	if !isDir(abs) {
		return abs, false, fmt.Errorf("%w: %s", ErrTargetNotFound, abs)
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		abs = resolved
	}
	if resolved, err := filepath.EvalSymlinks(cwd); err == nil {
		cwd = resolved
	}
	rel, err := filepath.Rel(cwd, abs)
	outside := err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator))
	return abs, outside, nil
}

// Outcome reports what happened to one component.
type Outcome struct {
	Component Component
	Skipped   bool
	// Installed lists destination paths relative to the target.
	Installed []string
	// Missing lists pack paths that were expected but absent.
	Missing []string
}

// Confirmer asks a yes/no question.
type Confirmer interface {
	Confirm(question string, def bool) (bool, error)
}

// ConfirmFunc adapts a function to Confirmer.
type ConfirmFunc func(question string, def bool) (bool, error)

func (f ConfirmFunc) Confirm(question string, def bool) (bool, error) { return f(question, def) }

// Installer copies pack components into a target directory. The pack is
// only ever read.
type Installer struct {
	pack   fs.FS
	target string
}

// NewInstaller returns an Installer copying from pack into target.
func NewInstaller(pack fs.FS, target string) *Installer {
	return &Installer{pack: pack, target: target}
}

// Run offers each of Components in turn, installs the accepted ones, and
// calls report after each decision.
func (in *Installer) Run(confirm Confirmer, report func(Outcome)) error {
	for _, c := range Components {
		ok, err := confirm.Confirm(c.Prompt, true)
		if err != nil {
			return err
		}
		if !ok {
			report(Outcome{Component: c, Skipped: true})
			continue
		}
		out, err := in.Install(c)
		if err != nil {
			return fmt.Errorf("installing %s: %w", c.Name, err)
		}
		report(out)
	}
	return nil
}

// Install copies every item of c. Absent items are recorded in Missing
// rather than failing the install.
func (in *Installer) Install(c Component) (Outcome, error) {
	out := Outcome{Component: c}
	for _, item := range c.Items {
		info, err := fs.Stat(in.pack, item.Src)
		if errors.Is(err, fs.ErrNotExist) {
			out.Missing = append(out.Missing, item.Src)
			continue
		}
		if err != nil {
			return out, err
		}

		var copied []string
		switch item.Kind {
		case File:
			if info.IsDir() {
				out.Missing = append(out.Missing, item.Src)
				continue
			}
			err = in.copyFile(item.Src, item.Dst)
			copied = []string{item.Dst}
		case Tree:
			copied, err = in.copyTree(item.Src, item.Dst)
		case Flat:
			copied, err = in.copyFlat(item.Src, item.Dst)
		}
		if err != nil {
			return out, err
		}
		out.Installed = append(out.Installed, copied...)
	}
	return out, nil
}

func (in *Installer) copyTree(src, dst string) ([]string, error) {
	var copied []string
	err := fs.WalkDir(in.pack, src, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel := strings.TrimPrefix(p, src+"/")
		target := path.Join(dst, rel)
		if err := in.copyFile(p, target); err != nil {
			return err
		}
		copied = append(copied, target)
		return nil
	})
	return copied, err
}

func (in *Installer) copyFlat(src, dst string) ([]string, error) {
	entries, err := fs.ReadDir(in.pack, src)
	if err != nil {
		return nil, err
	}
	var copied []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		target := path.Join(dst, e.Name())
		if err := in.copyFile(path.Join(src, e.Name()), target); err != nil {
			return nil, err
		}
		copied = append(copied, target)
	}
	return copied, nil
}

func (in *Installer) copyFile(src, dst string) error {
	data, err := fs.ReadFile(in.pack, src)
	if err != nil {
		return err
	}
	perm := fs.FileMode(0o644)
	if info, err := fs.Stat(in.pack, src); err == nil && info.Mode().Perm() != 0 {
		perm = info.Mode().Perm() | 0o200
	}
	// Embedded files carry no execute bits.
	if path.Ext(src) == ".sh" {
		perm |= 0o111
	}

	full := filepath.Join(in.target, filepath.FromSlash(dst))
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return err
	}
	if err := os.WriteFile(full, data, perm); err != nil {
		return fmt.Errorf("writing %s: %w", dst, err)
	}
	return nil
}
