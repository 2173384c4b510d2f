package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogger_JSONWithFields(t *testing.T) {
	var buf bytes.Buffer
	log := New(Options{Level: Info, Format: FormatJSON, App: "pet-spa", Writer: &buf})

	log.With(map[string]any{"request_id": "r-1"}).Info("booking created", map[string]any{"booking_id": "B1"})

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "booking created", entry["msg"])
	assert.Equal(t, "pet-spa", entry["app"])
	assert.Equal(t, "r-1", entry["request_id"])
	assert.Equal(t, "B1", entry["booking_id"])
}

func TestLogger_LevelFilter(t *testing.T) {
	var buf bytes.Buffer
	log := New(Options{Level: Warn, Writer: &buf})

	log.Info("hidden", nil)
	log.Debug("hidden", nil)
	assert.Empty(t, buf.String())

	log.Warn("shown", map[string]any{"k": 1})
	assert.True(t, strings.Contains(buf.String(), "shown"))
	assert.True(t, strings.Contains(buf.String(), "k=1"))
}

func TestParseLevelAndFormat(t *testing.T) {
	assert.Equal(t, Debug, ParseLevel("DEBUG"))
	assert.Equal(t, Warn, ParseLevel("warning"))
	assert.Equal(t, Info, ParseLevel("nope"))
	assert.Equal(t, FormatJSON, ParseFormat(" json "))
	assert.Equal(t, FormatText, ParseFormat(""))
}
