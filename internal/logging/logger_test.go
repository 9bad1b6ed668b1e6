package logging_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/knapsack/internal/logging"
)

func TestParseLevel(t *testing.T) {
	for name, want := range map[string]int{"": 0, "info": 0, "DEBUG": 1, " trace ": 2} {
		got, err := logging.ParseLevel(name)
		require.NoError(t, err, name)
		require.Equal(t, want, got, name)
	}
	_, err := logging.ParseLevel("loud")
	require.Error(t, err)
}

func TestNewLogger_Verbosity(t *testing.T) {
	log, err := logging.NewLogger(logging.DEBUG, false)
	require.NoError(t, err)
	require.True(t, log.V(logging.DEBUG).Enabled())
	require.False(t, log.V(logging.TRACE).Enabled())

	dev, err := logging.NewLogger(logging.TRACE, true)
	require.NoError(t, err)
	require.True(t, dev.V(logging.TRACE).Enabled())
}

func TestNewTestLogger(t *testing.T) {
	log := logging.NewTestLogger(t)
	require.True(t, log.V(logging.TRACE).Enabled())
	log.V(logging.TRACE).Info("trace line", "k", 1)
}
