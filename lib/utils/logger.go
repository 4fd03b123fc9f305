package utils

import (
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// SetupLogger builds the process logger. Development mode uses zap's
// console encoder; otherwise JSON lines are written. Logs always go to
// stderr so command output on stdout stays clean.
func SetupLogger(level string) *zap.SugaredLogger {
	config := zap.NewProductionConfig()
	if IsDevModeEnabled() {
		config = zap.NewDevelopmentConfig()
	}
	if parsed, err := zapcore.ParseLevel(strings.ToLower(level)); err == nil {
		config.Level = zap.NewAtomicLevelAt(parsed)
	}
	config.OutputPaths = []string{"stderr"}
	config.ErrorOutputPaths = []string{"stderr"}

	logger := zap.Must(config.Build())
	return logger.Sugar()
}
