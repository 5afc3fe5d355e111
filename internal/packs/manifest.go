package packs

import (
	"errors"
	"fmt"
	"io/fs"

	"gopkg.in/yaml.v3"
)

// ManifestFile is the optional descriptor at the root of a pack.
const ManifestFile = "pack.yaml"

// Manifest describes a pack.
type Manifest struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Version     string `yaml:"version"`
}

type manifestFile struct {
	Pack Manifest `yaml:"pack"`
}

// LoadManifest reads pack.yaml from pack. The boolean is false when the pack
// has no manifest.
func LoadManifest(pack fs.FS) (Manifest, bool, error) {
	data, err := fs.ReadFile(pack, ManifestFile)
	if errors.Is(err, fs.ErrNotExist) {
		return Manifest{}, false, nil
	}
	if err != nil {
		return Manifest{}, false, fmt.Errorf("reading %s: %w", ManifestFile, err)
	}

	var mf manifestFile
	if err := yaml.Unmarshal(data, &mf); err != nil {
		return Manifest{}, false, fmt.Errorf("parsing %s: %w", ManifestFile, err)
	}
	return mf.Pack, true, nil
}

// Entry pairs a pack directory name with its manifest.
type Entry struct {
	Dir      string
	Manifest Manifest
	// HasManifest is false for packs without pack.yaml.
	HasManifest bool
}

// Entries loads the manifest of every pack in the library.
func (l *Library) Entries() ([]Entry, error) {
	names, err := l.List()
	if err != nil {
		return nil, err
	}
	entries := make([]Entry, 0, len(names))
	for _, name := range names {
		pack, err := fs.Sub(l.root, name)
		if err != nil {
			return nil, err
		}
		m, ok, err := LoadManifest(pack)
		if err != nil {
			return nil, fmt.Errorf("pack %s: %w", name, err)
		}
		entries = append(entries, Entry{Dir: name, Manifest: m, HasManifest: ok})
	}
	return entries, nil
}
