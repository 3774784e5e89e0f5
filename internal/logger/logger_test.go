package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetup_JSON(t *testing.T) {
	var buf bytes.Buffer
	Setup("debug", "json", &buf)

	LogEvent(logrus.InfoLevel, "landmark added", logrus.Fields{"id": "1"})

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "landmark added", entry["msg"])
	assert.Equal(t, "1", entry["id"])
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, logrus.DebugLevel, Logger.GetLevel())
}

func TestSetup_UnknownLevelDefaultsToInfo(t *testing.T) {
	var buf bytes.Buffer
	Setup("chatty", "text", &buf)

	LogEvent(logrus.DebugLevel, "hidden", nil)
	LogEvent(logrus.WarnLevel, "shown", nil)

	assert.Equal(t, logrus.InfoLevel, Logger.GetLevel())
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}
