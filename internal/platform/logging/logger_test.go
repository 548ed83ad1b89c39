package logging

import (
	"os"
	"path/filepath"
	"testing"

	"fxbot/internal/config"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

func TestSetup_FileSink(t *testing.T) {
	t.Cleanup(func() {
		logrus.SetOutput(os.Stderr)
		logrus.SetLevel(logrus.InfoLevel)
	})
	path := filepath.Join(t.TempDir(), "logs", "fxbot.log")

	closer, err := Setup(config.Logging{Level: "debug", File: path})
	require.NoError(t, err)

	logrus.Debug("written to file")
	require.NoError(t, closer.Close())

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(b), "written to file")
	require.Equal(t, logrus.DebugLevel, logrus.GetLevel())
}

func TestSetup_BadLevelFallsBackToInfo(t *testing.T) {
	t.Cleanup(func() { logrus.SetOutput(os.Stderr) })

	closer, err := Setup(config.Logging{Level: "chatty"})
	require.NoError(t, err)
	require.NoError(t, closer.Close())
	require.Equal(t, logrus.InfoLevel, logrus.GetLevel())
}
