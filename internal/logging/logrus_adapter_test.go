package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBufferedAdapter(t *testing.T, level logrus.Level) (Logger, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	l := logrus.New()
	l.SetOutput(&buf)
	l.SetLevel(level)
	l.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	return NewLogrusAdapterFromLogger(l), &buf
}

func TestNewLogrusAdapter(t *testing.T) {
	tests := []struct {
		name   string
		level  string
		format string
		want   logrus.Level
		json   bool
	}{
		{name: "debug text", level: "debug", format: "text", want: logrus.DebugLevel},
		{name: "info json", level: "info", format: "json", want: logrus.InfoLevel, json: true},
		{name: "warn text", level: "warn", format: "text", want: logrus.WarnLevel},
		{name: "unknown level falls back to info", level: "chatty", format: "text", want: logrus.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			adapter, ok := NewLogrusAdapter(tt.level, tt.format).(*LogrusAdapter)
			require.True(t, ok)
			assert.Equal(t, tt.want, adapter.logger.Level)

			_, isJSON := adapter.logger.Formatter.(*logrus.JSONFormatter)
			assert.Equal(t, tt.json, isJSON)
		})
	}
}

func TestNewLogrusAdapterWithOutput_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogrusAdapterWithOutput("debug", "json", &buf)

	logger.WithField(FieldProvider, "gemini").Debug("remote call", Field{Key: FieldDuration, Value: 12})

	var line map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "remote call", line["msg"])
	assert.Equal(t, "gemini", line[FieldProvider])
	assert.EqualValues(t, 12, line[FieldDuration])
}

func TestNewLogrusAdapterFromLogger_Nil(t *testing.T) {
	adapter, ok := NewLogrusAdapterFromLogger(nil).(*LogrusAdapter)
	require.True(t, ok)
	assert.NotNil(t, adapter.logger)
}

func TestLogrusAdapter_Levels(t *testing.T) {
	tests := []struct {
		name string
		log  func(Logger)
		msg  string
	}{
		{name: "debug", log: func(l Logger) { l.Debug("debug msg", Field{Key: "k", Value: 1}) }, msg: "debug msg"},
		{name: "info", log: func(l Logger) { l.Info("info msg", Field{Key: "k", Value: 1}) }, msg: "info msg"},
		{name: "warn", log: func(l Logger) { l.Warn("warn msg", Field{Key: "k", Value: 1}) }, msg: "warn msg"},
		{name: "error", log: func(l Logger) { l.Error("error msg", Field{Key: "k", Value: 1}) }, msg: "error msg"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, buf := newBufferedAdapter(t, logrus.DebugLevel)
			tt.log(logger)
			assert.Contains(t, buf.String(), tt.msg)
			assert.Contains(t, buf.String(), "k=1")
		})
	}
}

func TestLogrusAdapter_LevelFiltering(t *testing.T) {
	logger, buf := newBufferedAdapter(t, logrus.WarnLevel)
	logger.Info("hidden")
	logger.Warn("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}

func TestLogrusAdapter_ChainedContext(t *testing.T) {
	logger, buf := newBufferedAdapter(t, logrus.InfoLevel)

	logger.
		WithField(FieldKey, "coffee").
		WithFields(Field{Key: FieldStrategy, Value: "ExactMatch"}).
		WithError(errors.New("boom")).
		Error("resolution failed")

	out := buf.String()
	assert.Contains(t, out, "resolution failed")
	assert.Contains(t, out, "key=coffee")
	assert.Contains(t, out, "strategy=ExactMatch")
	assert.Contains(t, out, "boom")
}

func TestToLogrusFields(t *testing.T) {
	fields := toLogrusFields([]Field{{Key: "a", Value: "x"}, {Key: "b", Value: 2}})
	assert.Equal(t, logrus.Fields{"a": "x", "b": 2}, fields)
	assert.Empty(t, toLogrusFields(nil))
}

func TestGetLoggerAndSetLogger(t *testing.T) {
	t.Cleanup(func() { SetLogger(nil) })

	assert.NotNil(t, GetLogger())

	mock := NewMockLogger()
	SetLogger(mock)
	assert.Same(t, mock, GetLogger())
	assert.Same(t, mock, OrDefault(nil))

	other := NewMockLogger()
	assert.Same(t, other, OrDefault(other))
}
