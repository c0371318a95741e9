// Package logging builds the application's zap logger from configuration.
package logging

import (
	"sort"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/km-arc/go-servicemanager/framework/config"
)

// New builds the logger described by ZapConfig and attaches Fields.
func New(cfg *config.Config) (*zap.Logger, error) {
	logger, err := ZapConfig(cfg).Build()
	if err != nil {
		return nil, err
	}

	return logger.With(Fields(cfg)...), nil
}

// ZapConfig returns zap's development config when APP_DEBUG is set and its
// production config otherwise, at LOG_LEVEL. Unknown levels fall back to
// info.
func ZapConfig(cfg *config.Config) zap.Config {
	var zapConfig zap.Config
	if cfg.App.Debug {
		zapConfig = zap.NewDevelopmentConfig()
	} else {
		zapConfig = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Log.Level)
	if err != nil {
		level = zapcore.InfoLevel
	}
	zapConfig.Level = zap.NewAtomicLevelAt(level)
	return zapConfig
}

// Fields returns the static fields attached to every entry: the app name
// plus LOG_FIELDS, in key order.
func Fields(cfg *config.Config) []zap.Field {
	keys := make([]string, 0, len(cfg.Log.Fields))
	for k := range cfg.Log.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	fields := make([]zap.Field, 0, len(keys)+1)
	fields = append(fields, zap.String("app", cfg.App.Name))
	for _, k := range keys {
		fields = append(fields, zap.String(k, cfg.Log.Fields[k]))
	}
	return fields
}
