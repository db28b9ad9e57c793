package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWithOutput(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithOutput("debug", &buf)
	assert.Equal(t, logrus.DebugLevel, log.GetLevel())

	log.WithField("service", "store").Info("Dataset loaded")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "Dataset loaded", entry["message"])
	assert.Equal(t, "store", entry["service"])
	assert.Equal(t, "info", entry["level"])
}

func TestNew_InvalidLevelFallsBackToInfo(t *testing.T) {
	log := New("verbose")
	assert.Equal(t, logrus.InfoLevel, log.GetLevel())
}
