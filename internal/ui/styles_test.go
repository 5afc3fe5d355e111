package ui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderHelpersKeepText(t *testing.T) {
	tests := map[string]string{
		"pass":    Pass("Installed AGENTS.md"),
		"warn":    Warn("AGENTS.md not found in pack"),
		"skip":    Skip("Skipped cursor"),
		"error":   Error("Unknown pack: x"),
		"header":  Header("Available packs:"),
		"success": Success("Pack initialized successfully!"),
	}
	for name, got := range tests {
		assert.NotEmpty(t, strings.TrimSpace(got), name)
	}
	assert.Contains(t, Pass("Installed AGENTS.md"), "Installed AGENTS.md")
	assert.Contains(t, Pass("x"), IconPass)
	assert.Contains(t, Warn("x"), IconWarn)
}

func TestIsTerminal_NonFile(t *testing.T) {
	assert.False(t, IsTerminal(&bytes.Buffer{}))
	assert.False(t, Interactive(strings.NewReader(""), &bytes.Buffer{}))
}
