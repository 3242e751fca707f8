package logger

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{" error ", slog.LevelError},
		{"warning", slog.LevelWarn},
		{"", slog.LevelWarn},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, ParseLevel(tc.in), tc.in)
	}
}

func TestSetDefault(t *testing.T) {
	prev := Default()
	defer SetDefault(prev)

	buf := &bytes.Buffer{}
	SetDefault(New(buf, slog.LevelInfo))
	Default().Info("hello", "k", "v")
	assert.Contains(t, buf.String(), "hello")
	assert.Contains(t, buf.String(), "k=v")

	SetDefault(nil)
	assert.NotNil(t, Default())
}

func TestSetLevel_KeepsWriter(t *testing.T) {
	prev := Default()
	prevLevel := level.Level()
	defer func() {
		SetDefault(prev)
		SetLevel(prevLevel)
	}()

	buf := &bytes.Buffer{}
	SetDefault(NewShared(buf))

	testCases := []struct {
		description string
		level       slog.Level
		expectDebug bool
	}{
		{description: "debug enabled", level: slog.LevelDebug, expectDebug: true},
		{description: "debug filtered", level: slog.LevelError, expectDebug: false},
	}
	for _, testCase := range testCases {
		buf.Reset()
		SetLevel(testCase.level)
		Default().Debug("debug line")
		Default().Error("always")
		assert.Equal(t, testCase.expectDebug, bytes.Contains(buf.Bytes(), []byte("debug line")), testCase.description)
		assert.Contains(t, buf.String(), "always", testCase.description)
	}
}
