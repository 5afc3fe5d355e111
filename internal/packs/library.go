package packs

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	reviewpack "github.com/dshills/reviewpack"
)

// DirName is the directory searched for when locating the packs root.
const DirName = "packs"

var (
	// ErrUnknownPack is returned when a named pack is not in the library.
	ErrUnknownPack = errors.New("unknown pack")
	// ErrNoPacksDir is returned when no packs root can be located.
	ErrNoPacksDir = errors.New("could not find packs directory")
)

// Discover locates the packs root. A non-empty override wins and must exist.
// Otherwise the first "packs" directory holding a pack manifest found walking
// up from the executable, then from the working directory, is used.
func Discover(override string) (string, error) {
	var starts []string
	if exe, err := os.Executable(); err == nil {
		if resolved, err := filepath.EvalSymlinks(exe); err == nil {
			exe = resolved
		}
		starts = append(starts, filepath.Dir(exe))
	}
	if wd, err := os.Getwd(); err == nil {
		starts = append(starts, wd)
	}
	return discover(override, starts...)
}

func discover(override string, starts ...string) (string, error) {
	if override != "" {
		if !isDir(override) {
			return "", fmt.Errorf("%w: %s is not a directory", ErrNoPacksDir, override)
		}
		return filepath.Abs(override)
	}
	for _, start := range starts {
		if dir, ok := findUp(start); ok {
			return dir, nil
		}
	}
	return "", fmt.Errorf("%w. Set --packs-dir or REVIEWPACK_PACKS_DIR, or run from a checkout that contains %s/",
		ErrNoPacksDir, DirName)
}

func findUp(start string) (string, bool) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", false
	}
	for {
		candidate := filepath.Join(dir, DirName)
		if isPacksRoot(candidate) {
			return candidate, true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

// isPacksRoot reports whether dir holds at least one pack with a manifest,
// which tells a packs root apart from any other directory named "packs".
func isPacksRoot(dir string) bool {
	matches, err := filepath.Glob(filepath.Join(dir, "*", ManifestFile))
	return err == nil && len(matches) > 0
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// Library is a read-only collection of packs, one per top-level directory.
type Library struct {
	root fs.FS
}

// Open returns a Library rooted at the directory dir.
func Open(dir string) *Library {
	return &Library{root: os.DirFS(dir)}
}

// Builtin returns the packs compiled into the binary.
func Builtin() *Library {
	root, err := fs.Sub(reviewpack.Packs, DirName)
	if err != nil {
		panic(err) // DirName is a valid path
	}
	return &Library{root: root}
}

// NewLibrary returns a Library over an arbitrary file system.
func NewLibrary(root fs.FS) *Library {
	return &Library{root: root}
}


// List returns the names of all packs, sorted. Hidden directories are skipped.
func (l *Library) List() ([]string, error) {
	entries, err := fs.ReadDir(l.root, ".")
	if err != nil {
		return nil, fmt.Errorf("listing packs: %w", err)
	}
	var names []string
	for _, e := range entries {
		if !e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names, nil
}

// Has reports whether name is a pack in the library.
func (l *Library) Has(name string) bool {
	names, err := l.List()
	if err != nil {
		return false
	}
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}

// Pack returns the file system of the named pack.
func (l *Library) Pack(name string) (fs.FS, error) {
	if !l.Has(name) {
		return nil, fmt.Errorf("%w: %s", ErrUnknownPack, name)
	}
	return fs.Sub(l.root, name)
}
