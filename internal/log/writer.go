package log

import (
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LevelWriter writes each line it receives to the logger at a fixed level.
type LevelWriter struct {
	logger *zap.SugaredLogger
	level  zapcore.Level
	prefix string
}

// NewLevelWriter returns a writer logging at level. Every line is prefixed
// with prefix, if any.
func NewLevelWriter(logger *zap.SugaredLogger, level zapcore.Level, prefix string) *LevelWriter {
	return &LevelWriter{logger: logger, level: level, prefix: prefix}
}

// Write logs every non-empty line of p.
func (w *LevelWriter) Write(p []byte) (int, error) {
	for _, line := range strings.Split(strings.TrimRight(string(p), "\r\n"), "\n") {
		w.WriteLine(line)
	}
	return len(p), nil
}

// WriteLine logs a single line. Empty lines are dropped.
func (w *LevelWriter) WriteLine(line string) {
	line = strings.TrimRight(line, "\r")
	if strings.TrimSpace(line) == "" {
		return
	}
	msg := w.prefix + line
	switch w.level {
	case zapcore.DebugLevel:
		w.logger.Debug(msg)
	case zapcore.InfoLevel:
		w.logger.Info(msg)
	case zapcore.WarnLevel:
		w.logger.Warn(msg)
	default:
		w.logger.Error(msg)
	}
}
