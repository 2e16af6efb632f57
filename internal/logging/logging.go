// Package logging wires the structured logger used throughout voxelcore.
package logging

import "go.uber.org/zap"

// Log is the package-level logger, set by Init. Packages that need to log
// before Init runs (tests, early CLI parsing) get zap's no-op logger.
var Log *zap.Logger = zap.NewNop()

// Init builds the process logger for the given level ("debug", "info",
// "warn", "error") and installs it as Log. Callers should defer the
// returned sync function.
func Init(level string) (*zap.Logger, func()) {
	cfg := zap.NewProductionConfig()
	if lvl, err := zap.ParseAtomicLevel(level); err == nil {
		cfg.Level = lvl
	}
	logger, err := cfg.Build()
	if err != nil {
		logger = zap.NewNop()
	}
	Log = logger
	return logger, func() { _ = logger.Sync() }
}
