// Package logger builds the application zap logger.
package logger

import (
	"fmt"

	"github.com/rezagth/gestion-installations/internal/config"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config returns the zap configuration: console output in dev, JSON otherwise.
func Config(cfg config.LogConfig, dev bool) (zap.Config, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return zap.Config{}, fmt.Errorf("invalid LOG_LEVEL %q: %w", cfg.Level, err)
	}
	encoding := "json"
	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	if dev {
		encoding = "console"
		encoderCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	return zap.Config{
		Encoding:         encoding,
		Level:            zap.NewAtomicLevelAt(level),
		Development:      dev,
		OutputPaths:      []string{"stdout"},
		ErrorOutputPaths: []string{"stderr"},
		EncoderConfig:    encoderCfg,
	}, nil
}

// New builds the logger described by Config.
func New(cfg config.LogConfig, dev bool) (*zap.Logger, error) {
	zcfg, err := Config(cfg, dev)
	if err != nil {
		return nil, err
	}
	return zcfg.Build()
}
