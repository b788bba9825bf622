package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMake_FromWriter(t *testing.T) {
	var buf bytes.Buffer
	l, err := New().FromWriter(&buf).Level("warn").Make()
	require.NoError(t, err)

	l.Info().Msg("hidden")
	l.Warn().Str("node_id", "abc").Msg("visible")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, `"node_id":"abc"`)
	assert.Contains(t, out, `"time"`)
}

func TestMake_FromPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "sulu.log")
	l, err := New().FromPath(path).Make()
	require.NoError(t, err)

	l.Info().Msg("written")
	require.NoError(t, l.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "written")
}

func TestMake_UnknownLevelFallsBackToInfo(t *testing.T) {
	var buf bytes.Buffer
	l, err := New().FromWriter(&buf).Level("chatty").Make()
	require.NoError(t, err)

	l.Debug().Msg("debug")
	l.Info().Msg("info")
	assert.NotContains(t, buf.String(), `"debug"`)
	assert.Contains(t, buf.String(), `"info"`)
}
