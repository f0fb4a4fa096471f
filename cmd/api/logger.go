package main

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/sangkips/ledgerbook/internal/config"
)

// newLogger builds the process logger. Production gets JSON output unless
// LOG_FORMAT asks for console.
func newLogger(cfg *config.Config) (*zap.Logger, error) {
	zcfg := zap.NewDevelopmentConfig()
	if cfg.App.Env == "production" {
		zcfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL %q: %w", cfg.Log.Level, err)
	}
	zcfg.Level = zap.NewAtomicLevelAt(level)

	switch cfg.Log.Format {
	case "json", "console":
		zcfg.Encoding = cfg.Log.Format
	}

	return zcfg.Build(zap.Fields(zap.String("service", cfg.App.Name)))
}
