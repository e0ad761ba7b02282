package logging

import (
	"fmt"

	"foodassistant/internal/config"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds the process logger. DEV mode gets a colored console encoder,
// everything else the production JSON encoder.
func New(conf config.LogConfig) (*zap.Logger, error) {
	lvl, err := zap.ParseAtomicLevel(conf.Level)
	if err != nil {
		return nil, fmt.Errorf("error parsing log level: %w", err)
	}

	var cfg zap.Config
	if conf.Mode == config.AppModeDevelop {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else {
		cfg = zap.NewProductionConfig()
	}
	cfg.Level = lvl

	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("error building logger: %w", err)
	}
	return logger.Named("foodassistant"), nil
}
