package app

import (
	"github.com/Freeeeeet/timetable_bot/internal/config"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewLogger production: JSON на stdout, иначе цветной консольный вывод.
// LOG_LEVEL пустой или нераспознанный оставляет уровень по умолчанию для окружения.
func NewLogger(cfg *config.Config) *zap.Logger {
	var zapConfig zap.Config

	if cfg.IsProduction() {
		zapConfig = zap.NewProductionConfig()
	} else {
		zapConfig = zap.NewDevelopmentConfig()
		zapConfig.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	if cfg.LogLevel != "" {
		if lvl, err := zapcore.ParseLevel(cfg.LogLevel); err == nil {
			zapConfig.Level = zap.NewAtomicLevelAt(lvl)
		}
	}

	zapConfig.OutputPaths = []string{"stdout"}
	zapConfig.InitialFields = map[string]interface{}{"env": cfg.Environment}

	logger, err := zapConfig.Build()
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}

	return logger.Named("timetable")
}
