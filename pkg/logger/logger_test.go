package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupProductionWritesJSON(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	Setup("info", "production")
	t.Cleanup(func() { Setup("info", "development") })

	WithFields(map[string]interface{}{"orderId": "o-1"}).Info("checkout complete")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "checkout complete", entry["msg"])
	assert.Equal(t, "o-1", entry["orderId"])
}

func TestDebugSuppressedAtInfo(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	Setup("info", "development")

	Debug("hidden %d", 1)
	assert.Empty(t, buf.String())

	Setup("debug", "development")
	Debug("shown %d", 2)
	assert.Contains(t, buf.String(), "shown 2")
	Setup("info", "development")
}
