package main

import (
	"os"

	"github.com/mattn/go-isatty"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// newLogger builds the console logger used by every command. Quiet
// discards everything; verbose enables debug output.
func newLogger(verbose, quiet bool) *zap.Logger {
	if quiet {
		return zap.NewNop()
	}

	ec := zap.NewDevelopmentEncoderConfig()
	ec.EncodeCaller = nil
	ec.NameKey = zapcore.OmitKey
	if isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd()) {
		ec.EncodeLevel = zapcore.CapitalColorLevelEncoder
		ec.TimeKey = zapcore.OmitKey
	} else {
		ec.EncodeLevel = zapcore.CapitalLevelEncoder
	}

	level := zapcore.InfoLevel
	if verbose {
		level = zapcore.DebugLevel
		ec.NameKey = "N"
	}

	core := zapcore.NewCore(zapcore.NewConsoleEncoder(ec), zapcore.Lock(os.Stderr), level)
	return zap.New(core)
}

func loggerFromConfig() *zap.Logger {
	return newLogger(
		getBoolWithFallback("verbose", "verbose", false),
		getBoolWithFallback("quiet", "quiet", false))
}
