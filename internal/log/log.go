// Package log builds the console logger used by the CLI and forwards
// diagnostic output from external commands to it.
package log

import (
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Options configures NewCliLogger.
type Options struct {
	// Verbose enables debug messages and level prefixes.
	Verbose bool
	// Quiet hides info messages; warnings and errors are still shown.
	Quiet bool
	// Color enables colored level names.
	Color bool
}

// NewCliLogger logs info (and debug when verbose) to stdout and warnings and
// errors to stderr.
func NewCliLogger(stdout, stderr io.Writer, opts Options) *zap.SugaredLogger {
	return zap.New(zapcore.NewTee(
		stdoutCore(stdout, opts),
		stderrCore(stderr, opts),
	)).Sugar()
}

// NewNop returns a logger that discards everything.
func NewNop() *zap.SugaredLogger {
	return zap.NewNop().Sugar()
}

// IsTerminal reports whether w is a terminal, for deciding on colors.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func stdoutCore(stdout io.Writer, opts Options) zapcore.Core {
	levels := zap.LevelEnablerFunc(func(l zapcore.Level) bool {
		switch l {
		case zapcore.DebugLevel:
			return opts.Verbose
		case zapcore.InfoLevel:
			return !opts.Quiet
		default:
			return false
		}
	})

	// Prefix messages with level only when verbose enabled
	levelKey := ""
	if opts.Verbose {
		levelKey = "level"
	}
	return zapcore.NewCore(consoleEncoder(levelKey, opts.Color), zapcore.AddSync(stdout), levels)
}

func stderrCore(stderr io.Writer, opts Options) zapcore.Core {
	// Warnings and errors always carry their level.
	return zapcore.NewCore(consoleEncoder("level", opts.Color), zapcore.AddSync(stderr), zapcore.WarnLevel)
}

func consoleEncoder(levelKey string, color bool) zapcore.Encoder {
	encodeLevel := zapcore.CapitalLevelEncoder
	if color {
		encodeLevel = zapcore.CapitalColorLevelEncoder
	}
	return zapcore.NewConsoleEncoder(zapcore.EncoderConfig{
		MessageKey:       "msg",
		LevelKey:         levelKey,
		EncodeLevel:      encodeLevel,
		ConsoleSeparator: "\t",
	})
}
