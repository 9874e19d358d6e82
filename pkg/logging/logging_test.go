package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/ssargent/basekit/pkg/config"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zapcore.Level
	}{
		{in: "", want: zapcore.InfoLevel},
		{in: "debug", want: zapcore.DebugLevel},
		{in: "WARN", want: zapcore.WarnLevel},
		{in: "error", want: zapcore.ErrorLevel},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	_, err := ParseLevel("chatty")
	assert.Error(t, err)
}

func TestNewWithWriter_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewWithWriter(config.Logging{Level: "info", Format: "json"}, &buf)
	require.NoError(t, err)

	logger.Debug("hidden")
	logger.Info("encoded", zap.String("codec", "base64"), zap.Int("bytes", 6))
	require.NoError(t, logger.Sync())

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 1)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(lines[0], &entry))
	assert.Equal(t, "encoded", entry["msg"])
	assert.Equal(t, "base64", entry["codec"])
	assert.Equal(t, float64(6), entry["bytes"])
}

func TestNewWithWriter_Console(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewWithWriter(config.Logging{Level: "debug"}, &buf)
	require.NoError(t, err)

	logger.Debug("decoding", zap.String("codec", "hex"))
	assert.Contains(t, buf.String(), "DEBUG")
	assert.Contains(t, buf.String(), "decoding")
}

func TestNewWithWriter_Invalid(t *testing.T) {
	_, err := NewWithWriter(config.Logging{Level: "info", Format: "xml"}, &bytes.Buffer{})
	assert.Error(t, err)

	_, err = New(config.Logging{Level: "loud"})
	assert.Error(t, err)
}
