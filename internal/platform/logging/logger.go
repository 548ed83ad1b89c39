package logging

import (
	"io"
	"os"
	"path/filepath"

	"fxbot/internal/config"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// Setup configures the global logrus logger. With logging.file set, output is tee'd
// to stdout and a size-rotated file. The returned closer flushes the file sink.
func Setup(cfg config.Logging) (io.Closer, error) {
	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)

	if cfg.File == "" {
		logrus.SetOutput(os.Stdout)
		return nopCloser{}, nil
	}

	if err = os.MkdirAll(filepath.Dir(cfg.File), 0o755); err != nil {
		logrus.SetOutput(os.Stdout)
		return nopCloser{}, err
	}
	fileLogger := &lumberjack.Logger{
		Filename:   cfg.File,
		MaxSize:    10, // megabytes
		MaxBackups: 3,
		MaxAge:     28, // days
		Compress:   true,
	}
	logrus.SetOutput(io.MultiWriter(os.Stdout, fileLogger))
	return fileLogger, nil
}
