// Package logging builds the process logger: one timestamped file per session, inside a directory per day,
// mirrored on the console. Nothing happens at import time; callers build the logger and pass it around.
package logging

import (
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config configures the logger.
type Config struct {
	Dir     string `yaml:"dir"`
	Level   string `yaml:"level"`
	Console bool   `yaml:"console"`
}

// Logger is a zap logger bound to its session file.
type Logger struct {
	*zap.Logger
	file *os.File
	Path string
}

// FilePath returns <dir>/<YYYY-MM-DD>/log_<YYYYMMDD_HHMMSS>.log for a session started at now.
func FilePath(dir string, now time.Time) string {
	return filepath.Join(dir, now.Format("2006-01-02"), "log_"+now.Format("20060102_150405")+".log")
}

// New opens the session file and builds the logger. console receives the mirrored output when
// cfg.Console is set; nil means stderr.
func New(cfg Config, now time.Time, console io.Writer) (*Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to parse log level %q", cfg.Level)
	}

	path := FilePath(cfg.Dir, now)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, errors.Wrap(err, "unable to create log directory")
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, errors.Wrap(err, "unable to open log file")
	}

	cores := []zapcore.Core{
		zapcore.NewCore(zapcore.NewConsoleEncoder(encoderConfig()), zapcore.AddSync(file), level),
	}

	if cfg.Console {
		if console == nil {
			console = os.Stderr
		}
		cores = append(cores, zapcore.NewCore(zapcore.NewConsoleEncoder(encoderConfig()), zapcore.AddSync(console), level))
	}

	return &Logger{
		Logger: zap.New(zapcore.NewTee(cores...)),
		file:   file,
		Path:   path,
	}, nil
}

// Close flushes the logger and closes the session file.
func (l *Logger) Close() error {
	// Sync fails on some terminals, the file is what matters.
	_ = l.Logger.Sync()

	return errors.Wrap(l.file.Close(), "unable to close log file")
}

func encoderConfig() zapcore.EncoderConfig {
	cfg := zap.NewProductionEncoderConfig()
	cfg.EncodeTime = zapcore.TimeEncoderOfLayout("2006-01-02 15:04:05,000")
	cfg.EncodeLevel = zapcore.CapitalLevelEncoder
	cfg.ConsoleSeparator = " - "
	cfg.CallerKey = zapcore.OmitKey

	return cfg
}

// OrNop returns logger, or a no-op logger when it is nil.
func OrNop(logger *zap.Logger) *zap.Logger {
	if logger == nil {
		return zap.NewNop()
	}

	return logger
}
