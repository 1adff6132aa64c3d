package main

import (
	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// newLogger builds the process logger. Output goes to stderr so stdout stays
// clean for reports. verbose enables V(1) progress lines.
func newLogger(verbose bool) logr.Logger {
	zc := zap.NewDevelopmentConfig()
	zc.OutputPaths = []string{"stderr"}
	zc.DisableStacktrace = true
	zc.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	if verbose {
		zc.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	zl, err := zc.Build()
	if err != nil {
		return logr.Discard()
	}
	return zapr.NewLogger(zl)
}
