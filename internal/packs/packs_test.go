package packs

import (
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLibrary() *Library {
	return NewLibrary(fstest.MapFS{
		"python-azure-ai-agent/pack.yaml": {Data: []byte(
			"pack:\n  name: python-azure-ai-agent\n  description: Python agents on Azure AI Foundry\n  version: 1.0.0\n")},
		"python-azure-ai-agent/overlay.md":       {Data: []byte("Use managed identity.")},
		"python-azure-ai-agent/checklists/b.md":  {Data: []byte("B")},
		"python-azure-ai-agent/checklists/a.md":  {Data: []byte("A")},
		"python-azure-ai-agent/checklists/c.txt": {Data: []byte("C")},
		"bare/README.md":                         {Data: []byte("no manifest")},
		".hidden/pack.yaml":                      {Data: []byte("pack: {name: hidden}")},
		"stray-file.md":                          {Data: []byte("not a pack")},
	})
}

func TestLibrary_List(t *testing.T) {
	names, err := testLibrary().List()
	require.NoError(t, err)
	assert.Equal(t, []string{"bare", "python-azure-ai-agent"}, names)
}

func TestLibrary_Pack(t *testing.T) {
	lib := testLibrary()

	assert.True(t, lib.Has("bare"))
	assert.False(t, lib.Has(".hidden"))

	_, err := lib.Pack("nope")
	assert.ErrorIs(t, err, ErrUnknownPack)

	pack, err := lib.Pack("python-azure-ai-agent")
	require.NoError(t, err)
	overlay, err := LoadOverlay(pack)
	require.NoError(t, err)
	assert.Equal(t, "Use managed identity.", overlay)
}

func TestLibrary_Entries(t *testing.T) {
	entries, err := testLibrary().Entries()
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, "bare", entries[0].Dir)
	assert.False(t, entries[0].HasManifest)

	assert.True(t, entries[1].HasManifest)
	assert.Equal(t, Manifest{
		Name:        "python-azure-ai-agent",
		Description: "Python agents on Azure AI Foundry",
		Version:     "1.0.0",
	}, entries[1].Manifest)
}

func TestLoadManifest_Invalid(t *testing.T) {
	_, _, err := LoadManifest(fstest.MapFS{"pack.yaml": {Data: []byte("pack: [unterminated")}})
	assert.Error(t, err)
}

func TestLoadChecklists(t *testing.T) {
	pack := fstest.MapFS{
		"checklists/a.md":  {Data: []byte("A")},
		"checklists/b.md":  {Data: []byte("B")},
		"checklists/c.txt": {Data: []byte("C")},
	}
	got, err := LoadChecklists(pack)
	require.NoError(t, err)
	assert.Equal(t, "## a\nA\n\n## b\nB", got)
}

func TestLoadContext_MissingPieces(t *testing.T) {
	rc, err := LoadContext(fstest.MapFS{"README.md": {Data: []byte("x")}})
	require.NoError(t, err)
	assert.Empty(t, rc.Overlay)
	assert.Empty(t, rc.Checklists)
}

func TestDiscover(t *testing.T) {
	root := t.TempDir()
	packsDir := filepath.Join(root, "packs")
	require.NoError(t, os.MkdirAll(filepath.Join(packsDir, "p"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(packsDir, "p", ManifestFile), []byte("pack: {name: p}"), 0o644))
	deep := filepath.Join(root, "a", "b", "c")
	require.NoError(t, os.MkdirAll(deep, 0o755))
	// A "packs" directory without manifests is not a packs root.
	require.NoError(t, os.MkdirAll(filepath.Join(root, "a", "packs"), 0o755))
	empty := t.TempDir()

	t.Run("override", func(t *testing.T) {
		got, err := discover(packsDir, deep)
		require.NoError(t, err)
		assert.Equal(t, packsDir, got)
	})

	t.Run("override must exist", func(t *testing.T) {
		_, err := discover(filepath.Join(root, "missing"))
		assert.ErrorIs(t, err, ErrNoPacksDir)
	})

	t.Run("walks up", func(t *testing.T) {
		got, err := discover("", deep)
		require.NoError(t, err)
		assert.Equal(t, packsDir, got)
	})

	t.Run("falls back to later start", func(t *testing.T) {
		got, err := discover("", empty, deep)
		require.NoError(t, err)
		assert.Equal(t, packsDir, got)
	})

	t.Run("not found", func(t *testing.T) {
		_, err := discover("", empty)
		// A packs/ directory above the temp root would satisfy the search.
		if err == nil {
			t.Skip("packs directory exists above the temp dir")
		}
		assert.ErrorIs(t, err, ErrNoPacksDir)
	})
}

func TestShippedPacks(t *testing.T) {
	dir, err := discover("", ".")
	require.NoError(t, err)

	lib := Open(dir)
	entries, err := lib.Entries()
	require.NoError(t, err)
	require.NotEmpty(t, entries)

	for _, e := range entries {
		assert.True(t, e.HasManifest, e.Dir)
		assert.Equal(t, e.Dir, e.Manifest.Name)
		assert.NotEmpty(t, e.Manifest.Version, e.Dir)

		pack, err := lib.Pack(e.Dir)
		require.NoError(t, err)
		rc, err := LoadContext(pack)
		require.NoError(t, err)
		assert.NotEmpty(t, rc.Overlay, e.Dir)
		assert.NotEmpty(t, rc.Checklists, e.Dir)

		var outcomes []Outcome
		require.NoError(t, NewInstaller(pack, t.TempDir()).Run(ConfirmFunc(yes), func(o Outcome) {
			outcomes = append(outcomes, o)
		}))
		for _, o := range outcomes {
			assert.Empty(t, o.Missing, "%s: %s", e.Dir, o.Component.Name)
		}
	}
}

func TestBuiltin(t *testing.T) {
	lib := Builtin()
	names, err := lib.List()
	require.NoError(t, err)
	assert.Contains(t, names, "python-azure-ai-agent")

	pack, err := lib.Pack("python-azure-ai-agent")
	require.NoError(t, err)
	m, ok, err := LoadManifest(pack)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "python-azure-ai-agent", m.Name)

	target := t.TempDir()
	require.NoError(t, NewInstaller(pack, target).Run(ConfirmFunc(yes), func(Outcome) {}))

	script, err := os.Stat(filepath.Join(target, ".github", "scripts", "ai_review.sh"))
	require.NoError(t, err)
	assert.NotZero(t, script.Mode().Perm()&0o100, "embedded script installed executable")

	rules, err := os.Stat(filepath.Join(target, "CLAUDE.md"))
	require.NoError(t, err)
	assert.NotZero(t, rules.Mode().Perm()&0o200, "installed files are writable")
	assert.Zero(t, rules.Mode().Perm()&0o100)
}
