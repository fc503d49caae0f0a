package logger

import (
	"os"

	"gameforge/config"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// New builds a sugared logger: human-readable console output, plus a
// rotated JSON file when cfg.File is set.
func New(cfg *config.LoggerConfig) *zap.SugaredLogger {
	level := zap.InfoLevel
	if cfg.Debug {
		level = zap.DebugLevel
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.TimeEncoderOfLayout("02 Jan 15:04:05")
	encCfg.EncodeLevel = zapcore.CapitalLevelEncoder
	consoleEncoder := zapcore.NewConsoleEncoder(encCfg)

	var core zapcore.Core
	if cfg.File != "" {
		fileCfg := zap.NewProductionEncoderConfig()
		fileEncoder := zapcore.NewJSONEncoder(fileCfg)
		core = zapcore.NewTee(
			zapcore.NewCore(fileEncoder, zapcore.AddSync(&lumberjack.Logger{
				Filename:   cfg.File,
				MaxSize:    cfg.MaxSize,
				MaxAge:     cfg.MaxAge,
				MaxBackups: cfg.MaxBackups,
				Compress:   cfg.Compress,
			}), level),
			zapcore.NewCore(consoleEncoder, zapcore.AddSync(os.Stderr), level),
		)
	} else {
		core = zapcore.NewCore(consoleEncoder, zapcore.AddSync(os.Stderr), level)
	}

	return zap.New(core).Sugar()
}
