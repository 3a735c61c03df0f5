package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	charmlog "github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want charmlog.Level
	}{
		{"debug", charmlog.DebugLevel},
		{"info", charmlog.InfoLevel},
		{"warn", charmlog.WarnLevel},
		{"error", charmlog.ErrorLevel},
		{"", charmlog.InfoLevel},
		{"verbose", charmlog.InfoLevel},
	}
	for _, tt := range tests {
		t.Run("level "+tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLevel(tt.in))
		})
	}
}

func TestNewRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: "warn", Output: &buf})

	logger.Info("quiet")
	logger.Warn("loud")

	out := buf.String()
	assert.NotContains(t, out, "quiet")
	assert.Contains(t, out, "loud")
}

func TestNewDebugPassesEverything(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: "debug", Output: &buf})

	logger.Debug("strategy fallback", "scorer", "keyword")

	out := buf.String()
	assert.Contains(t, out, "strategy fallback")
	assert.Contains(t, out, "keyword")
}

func TestNewFileSink(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gist.log")
	logger := New(Config{Level: "info", File: path})

	logger.Info("written to file")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "written to file")
}
