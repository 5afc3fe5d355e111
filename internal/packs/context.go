package packs

import (
	"errors"
	"fmt"
	"io/fs"
	"path"
	"strings"

	"github.com/dshills/reviewpack/internal/review"
)

const (
	overlayFile   = "overlay.md"
	checklistsDir = "checklists"
)

// LoadOverlay returns the pack's overlay.md, or "" when it has none.
func LoadOverlay(pack fs.FS) (string, error) {
	data, err := fs.ReadFile(pack, overlayFile)
	if errors.Is(err, fs.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", overlayFile, err)
	}
	return string(data), nil
}

// LoadChecklists concatenates every markdown file under checklists/ as
// "## <stem>\n<contents>" blocks separated by a blank line, in file name
// order. Non-markdown entries are ignored.
func LoadChecklists(pack fs.FS) (string, error) {
	entries, err := fs.ReadDir(pack, checklistsDir)
	if errors.Is(err, fs.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("listing %s: %w", checklistsDir, err)
	}

	var blocks []string
	for _, e := range entries {
		if e.IsDir() || path.Ext(e.Name()) != ".md" {
			continue
		}
		data, err := fs.ReadFile(pack, path.Join(checklistsDir, e.Name()))
		if err != nil {
			return "", fmt.Errorf("reading checklist %s: %w", e.Name(), err)
		}
		stem := strings.TrimSuffix(e.Name(), ".md")
		blocks = append(blocks, "## "+stem+"\n"+string(data))
	}
	return strings.Join(blocks, "\n\n"), nil
}

// LoadContext gathers the overlay and checklists for a local review.
func LoadContext(pack fs.FS) (review.Context, error) {
	overlay, err := LoadOverlay(pack)
	if err != nil {
		return review.Context{}, err
	}
	checklists, err := LoadChecklists(pack)
	if err != nil {
		return review.Context{}, err
	}
	return review.Context{Overlay: overlay, Checklists: checklists}, nil
}
