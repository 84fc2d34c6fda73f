package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zapcore.DebugLevel, ParseLevel("DEBUG"))
	assert.Equal(t, zapcore.InfoLevel, ParseLevel("info"))
	assert.Equal(t, zapcore.ErrorLevel, ParseLevel(" error "))
	assert.Equal(t, zapcore.WarnLevel, ParseLevel("warn"))
	assert.Equal(t, zapcore.WarnLevel, ParseLevel("bogus"))
}

func TestFromZap_WithFields(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	l := FromZap(zap.New(core)).With(String("root", "/site"))

	l.Debug("file scanned", String("path", "index.html"), Int("passes", 2))
	l.Warn("pass cap reached", Bool("converged", false))

	require.Equal(t, 2, logs.Len())
	first := logs.All()[0]
	assert.Equal(t, "file scanned", first.Message)
	assert.Equal(t, "/site", first.ContextMap()["root"])
	assert.Equal(t, int64(2), first.ContextMap()["passes"])
	assert.Equal(t, zapcore.WarnLevel, logs.All()[1].Level)
}

func TestNew_Defaults(t *testing.T) {
	l, err := New(Config{})
	require.NoError(t, err)
	l.Info("dropped below warn")
	NewNop().Error("discarded")
}
