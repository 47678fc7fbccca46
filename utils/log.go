package utils

import "go.uber.org/zap"

var logger = zap.NewNop()

// Logger returns the process-wide logger. It defaults to a no-op
// logger so that library users opt into diagnostics explicitly.
func Logger() *zap.Logger {
	return logger
}

// SetLogger installs a logger for the whole analysis. Passing nil
// restores the no-op logger.
func SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	logger = l
}
