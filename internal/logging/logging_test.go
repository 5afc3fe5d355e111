package logging

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Levels(t *testing.T) {
	var buf bytes.Buffer
	log, err := New("info", &buf, false)
	require.NoError(t, err)

	log.Debug().Msg("hidden")
	log.Info().Str("pack", "p").Msg("shown")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "shown")
	assert.Contains(t, out, "pack=p")
}

func TestNew_DefaultIsWarn(t *testing.T) {
	var buf bytes.Buffer
	log, err := New("", &buf, false)
	require.NoError(t, err)

	log.Info().Msg("quiet")
	log.Warn().Msg("loud")
	assert.NotContains(t, buf.String(), "quiet")
	assert.Contains(t, buf.String(), "loud")
}

func TestNew_InvalidLevel(t *testing.T) {
	_, err := New("chatty", &bytes.Buffer{}, false)
	assert.Error(t, err)
}
