package log

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNew_Level(t *testing.T) {
	l, err := New("warn", "")
	require.NoError(t, err)
	require.False(t, l.Core().Enabled(zapcore.InfoLevel))
	require.True(t, l.Core().Enabled(zapcore.WarnLevel))

	// кривой уровень не ломает сборку
	l, err = New("loud", "json")
	require.NoError(t, err)
	require.True(t, l.Core().Enabled(zapcore.DebugLevel))
}

func TestEmail_Hashed(t *testing.T) {
	f := Email("Alice@Example.com")
	require.Equal(t, "user", f.Key)
	require.NotContains(t, f.String, "alice")
	require.Equal(t, Email("alice@example.com").String, f.String)
}
