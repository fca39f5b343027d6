package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestSet_RoutesHelpers(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	Set(zap.New(core))
	t.Cleanup(func() { Set(nil) })

	Info("listing created", zap.Uint64("product_id", 3))
	Warn("publish skipped")
	Error("[Login] err userRepo.Get", zap.String("error", "boom"))

	require.Equal(t, 3, logs.Len())
	entries := logs.All()
	assert.Equal(t, "listing created", entries[0].Message)
	assert.Equal(t, zapcore.WarnLevel, entries[1].Level)
	assert.Equal(t, "boom", entries[2].ContextMap()["error"])
}

func TestInit_Level(t *testing.T) {
	require.NoError(t, Init("production", "warn"))
	t.Cleanup(func() { Set(nil) })

	assert.False(t, Get().Core().Enabled(zapcore.InfoLevel))
	assert.True(t, Get().Core().Enabled(zapcore.WarnLevel))
}
