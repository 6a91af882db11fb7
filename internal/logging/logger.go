package logging

import (
	"log"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var logger *zap.Logger

// Init builds the process-wide logger. Development mode (GIN_MODE unset or
// "debug") gets colored console output, anything else gets production JSON.
func Init() *zap.Logger {
	var cfg zap.Config

	if mode := os.Getenv("GIN_MODE"); mode == "release" {
		cfg = zap.NewProductionConfig()
		cfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	} else {
		cfg = zap.NewDevelopmentConfig()
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	l, err := cfg.Build()
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}

	logger = l
	return l
}

// L returns the process logger, initializing it on first use.
func L() *zap.Logger {
	if logger == nil {
		return Init()
	}
	return logger
}
