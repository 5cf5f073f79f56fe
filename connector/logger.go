package connector

import (
	"fmt"

	"go.uber.org/zap"
)

// NewLogger builds a zap logger from the logging section of the config.
func NewLogger(cfg LoggingConfig) (*zap.Logger, error) {
	zc := zap.NewProductionConfig()
	if cfg.Development {
		zc = zap.NewDevelopmentConfig()
	}

	if cfg.Level != "" {
		level, err := zap.ParseAtomicLevel(cfg.Level)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
		}
		zc.Level = level
	}

	return zc.Build()
}
