package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewJSONOutput(t *testing.T) {
	var buf bytes.Buffer
	log := New("debug", "json", &buf)
	log.Named("api").Info("request done", "status", 200)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "api", entry["logger"])
	assert.Equal(t, "request done", entry["message"])
	assert.EqualValues(t, 200, entry["status"])
}

func TestNewLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log := New("warn", "console", &buf)
	log.Info("hidden")
	assert.Zero(t, buf.Len())

	log.Warn("shown")
	assert.Contains(t, buf.String(), "shown")
}

func TestNewUnknownLevelDefaultsToInfo(t *testing.T) {
	log := New("loud", "json", &bytes.Buffer{})
	assert.Equal(t, "info", log.GetLevel())
}

func TestNop(t *testing.T) {
	log := Nop()
	log.Error("discarded", "k", "v")
	assert.NoError(t, log.Sync())
}
