package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggerWritesFields(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&buf, "info")

	l.Info("Product created", map[string]interface{}{"product_id": 7})

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "INFO", line["level"])
	assert.Equal(t, "Product created", line["msg"])
	assert.EqualValues(t, 7, line["product_id"])
}

func TestLoggerRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&buf, "warn")

	l.Debug("hidden", nil)
	l.Info("hidden", nil)
	assert.Zero(t, buf.Len())

	l.Error("shown", nil)
	assert.Contains(t, buf.String(), "shown")
}
