package fastjs

import (
	"testing"

	"go.uber.org/zap"
)

// Light smoke tests ensuring exported logger APIs do not panic and remain
// callable. If richer logging behavior (format, sinks, filtering) is added
// later, expand assertions here.
func TestSimpleLoggerLevels(t *testing.T) {
	logger := NewSimpleLogger()

	logger.Debug("debug message")
	logger.Info("info message", "key", "value")
	logger.Warn("warn message", "dangling")
	logger.Error("error message", "n", 3)
}

func TestSimpleLoggerReusability(t *testing.T) {
	logger := NewSimpleLogger()
	for i := 0; i < 5; i++ {
		logger.Info("loop message", "i", i)
	}
}

func TestZapLoggerAdapter(t *testing.T) {
	logger := NewZapLogger(zap.NewNop())

	logger.Debug("debug message", "k", "v")
	logger.Info("info message")
	logger.Warn("warn message", "k", 1)
	logger.Error("error message")
}
