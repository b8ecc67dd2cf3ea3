package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestInitLevels(t *testing.T) {
	require.NoError(t, Init(false))
	prod := Log()
	assert.False(t, prod.Core().Enabled(zapcore.DebugLevel))
	assert.True(t, prod.Core().Enabled(zapcore.InfoLevel))

	require.NoError(t, Init(false))
	assert.Same(t, prod, Log(), "same mode keeps the logger")

	require.NoError(t, Init(true))
	assert.NotSame(t, prod, Log())
	assert.True(t, Log().Core().Enabled(zapcore.DebugLevel))
	assert.NotNil(t, S())
}

func TestSetDebug(t *testing.T) {
	require.NoError(t, InitProduction())
	defer SetDebug(false)

	SetDebug(true)
	assert.True(t, Log().Core().Enabled(zapcore.DebugLevel))

	SetDebug(false)
	assert.False(t, Log().Core().Enabled(zapcore.DebugLevel))
}
