package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNewRespectsVerboseLevel(t *testing.T) {
	quiet, err := New(false)
	require.NoError(t, err)
	defer quiet.Sync()
	assert.False(t, quiet.Core().Enabled(zapcore.DebugLevel))
	assert.True(t, quiet.Core().Enabled(zapcore.InfoLevel))

	verbose, err := New(true)
	require.NoError(t, err)
	defer verbose.Sync()
	assert.True(t, verbose.Core().Enabled(zapcore.DebugLevel))
}

func TestNopDiscardsWithoutError(t *testing.T) {
	logger := Nop()
	assert.NotPanics(t, func() { logger.Info("ignored") })
}
