package lib

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoggerMemory(t *testing.T) {
	buf := &bytes.Buffer{}
	log, err := NewLoggerMemory("info", LogOptions{}, buf)
	require.NoError(t, err)

	log.Named("SCHEDULER").Infof("poll %d applied", 3)
	log.Debugf("hidden")
	_ = log.Sync()

	out := buf.String()
	require.Contains(t, out, "SCHEDULER")
	require.Contains(t, out, "poll 3 applied")
	require.NotContains(t, out, "hidden")
}

func TestLoggerInvalidLevel(t *testing.T) {
	_, err := NewLogger("verbose", LogOptions{})
	require.Error(t, err)
}
