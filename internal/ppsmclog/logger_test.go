package ppsmclog_test

import (
	"testing"

	"github.com/joeycumines/go-ppsmc/internal/ppsmclog"
	"github.com/joeycumines/logiface"
	"github.com/joeycumines/stumpy"
	"github.com/stretchr/testify/require"
)

func TestLoggerDefaultsToNoOp(t *testing.T) {
	ppsmclog.SetLogger(nil)
	l := ppsmclog.Logger()
	require.NotNil(t, l)
	require.Equal(t, logiface.LevelDisabled, l.Level())
}

func TestSetLoggerRoundTrips(t *testing.T) {
	defer ppsmclog.SetLogger(nil)

	custom := stumpy.L.New(stumpy.L.WithStumpy())
	ppsmclog.SetLogger(custom)
	require.Same(t, custom, ppsmclog.Logger())
}

func TestNewStderrLoggerIsEnabled(t *testing.T) {
	l := ppsmclog.NewStderrLogger()
	require.NotEqual(t, logiface.LevelDisabled, l.Level())
}
