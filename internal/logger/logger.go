package logger

import (
	"context"
	"strings"

	"go-support/internal/config"
	"go-support/internal/database"

	"go.uber.org/fx"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Build creates the base zap logger from configuration.
func Build(cfg *config.Config) (*zap.Logger, error) {
	var zapConfig zap.Config
	if cfg.IsProduction() {
		zapConfig = zap.NewProductionConfig()
	} else {
		zapConfig = zap.NewDevelopmentConfig()
	}

	level := zapcore.InfoLevel
	if err := level.Set(strings.ToLower(cfg.LogLevel)); err == nil {
		zapConfig.Level = zap.NewAtomicLevelAt(level)
	}

	// Important: Enable Caller to get Function Name
	zapConfig.EncoderConfig.FunctionKey = "func"
	zapConfig.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	return zapConfig.Build()
}

// NewLogger builds the service logger and, when LOG_TO_DB is set, tees warnings into MongoDB.
func NewLogger(lc fx.Lifecycle, cfg *config.Config, mongodb *database.MongodbDB) (*zap.Logger, error) {
	baseLogger, err := Build(cfg)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			_ = baseLogger.Sync()
			return nil
		},
	})

	if !cfg.LogToDB {
		return baseLogger, nil
	}

	dbWriter := NewDBLogWriter(mongodb.DB.Collection("logs"), cfg.AppId, 1000)
	lc.Append(fx.Hook{
		OnStop: dbWriter.Close,
	})

	finalCore := NewDBCore(baseLogger.Core(), dbWriter, zapcore.WarnLevel)
	return zap.New(finalCore, zap.AddCaller()), nil
}
