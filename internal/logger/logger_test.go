package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBufferLogger(level LogLevel, format LogFormat) (*Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return New(Config{Level: level, Format: format, Output: &buf, Component: "test"}), &buf
}

func TestLoggerLevels(t *testing.T) {
	l, buf := newBufferLogger(DEBUG, JSONFormat)

	l.Debug("debug message")
	l.Info("info message")
	l.Warn("warn message")
	l.Error("error message", nil)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 4)

	for i, line := range lines {
		var entry LogEntry
		require.NoError(t, json.Unmarshal([]byte(line), &entry), "line %d", i+1)
		assert.Equal(t, "test", entry.Component)
	}
}

func TestLoggerLevelFiltering(t *testing.T) {
	l, buf := newBufferLogger(WARN, JSONFormat)

	l.Debug("debug message")
	l.Info("info message")
	l.Warn("warn message")
	l.Error("error message", errors.New("boom"))

	out := buf.String()
	assert.NotContains(t, out, "debug message")
	assert.NotContains(t, out, "info message")
	assert.Contains(t, out, "warn message")
	assert.Contains(t, out, `"error":"boom"`)
}

func TestLoggerWithFields(t *testing.T) {
	l, buf := newBufferLogger(INFO, JSONFormat)

	l.With(Fields{"page": "sales"}).Info("rendered", map[string]interface{}{"charts": 2})

	var entry LogEntry
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "rendered", entry.Message)
	assert.Equal(t, "sales", entry.Fields["page"])
	assert.EqualValues(t, 2, entry.Fields["charts"])
	assert.Contains(t, entry.Caller, "logger_test.go:")
}

func TestWithComponentSharesOutput(t *testing.T) {
	l, buf := newBufferLogger(INFO, TextFormat)

	l.WithComponent("server").Info("listening")

	assert.Contains(t, buf.String(), "INFO [server] listening")
}

func TestTextFormatSortsFields(t *testing.T) {
	l, buf := newBufferLogger(INFO, TextFormat)

	l.Info("snapshot", map[string]interface{}{"b": 2, "a": 1})

	assert.Contains(t, buf.String(), "{a=1, b=2}")
}

func TestChildLevelIsIndependent(t *testing.T) {
	l, buf := newBufferLogger(INFO, JSONFormat)
	child := l.WithComponent("child")

	child.SetLevel(ERROR)
	child.Warn("dropped")
	assert.Empty(t, buf.String())

	l.Warn("kept")
	assert.Contains(t, buf.String(), "kept")
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    LogLevel
		wantErr bool
	}{
		{"debug", DEBUG, false},
		{"INFO", INFO, false},
		{"warning", WARN, false},
		{" error ", ERROR, false},
		{"verbose", INFO, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("TEXT")
	require.NoError(t, err)
	assert.Equal(t, TextFormat, f)

	_, err = ParseFormat("xml")
	assert.Error(t, err)
}

func TestConfigureGlobal(t *testing.T) {
	orig := GetGlobalLogger()
	defer SetGlobalLogger(orig)

	l, buf := newBufferLogger(INFO, JSONFormat)
	SetGlobalLogger(l)

	require.NoError(t, Configure("warn", "text"))
	Info("hidden")
	Warn("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "WARN [test] shown")
	assert.Error(t, Configure("loud", "text"))
}
