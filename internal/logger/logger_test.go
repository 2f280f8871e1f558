package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNew(t *testing.T) {
	for lvl, want := range map[string]zap.AtomicLevel{
		"":      zap.NewAtomicLevelAt(zap.InfoLevel),
		"debug": zap.NewAtomicLevelAt(zap.DebugLevel),
		"warn":  zap.NewAtomicLevelAt(zap.WarnLevel),
		"error": zap.NewAtomicLevelAt(zap.ErrorLevel),
	} {
		log, err := New(lvl)
		require.NoError(t, err, lvl)
		assert.True(t, log.Core().Enabled(want.Level()), lvl)
		assert.False(t, log.Core().Enabled(want.Level()-1), lvl)
	}
}

func TestNew_BadLevel(t *testing.T) {
	_, err := New("loud")
	assert.Error(t, err)
}
