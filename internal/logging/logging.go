// Package logging sets up the process-wide zap logger, replacing the ad
// hoc fmt.Fprintf(os.Stderr, ...) calls the CLI would otherwise scatter
// across its subcommands with structured, leveled output.
package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds a logger writing human-readable console output to stderr.
// verbose raises the level from Info to Debug, matching the CLI's -v flag.
func New(verbose bool) (*zap.Logger, error) {
	level := zapcore.InfoLevel
	if verbose {
		level = zapcore.DebugLevel
	}

	cfg := zap.NewProductionConfig()
	cfg.Encoding = "console"
	cfg.EncoderConfig = zap.NewDevelopmentEncoderConfig()
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	cfg.Level = zap.NewAtomicLevelAt(level)

	return cfg.Build()
}

// Nop returns a logger that discards everything, for tests and library
// callers that don't want CLI-style console output.
func Nop() *zap.Logger { return zap.NewNop() }
