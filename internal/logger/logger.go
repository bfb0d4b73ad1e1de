package logger

import (
	"fmt"

	"github.com/KNICEX/spot-bot/internal/config"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New 追加写入单个日志文件, 每行: 时间 级别 消息 字段
func New(cfg config.LogConfig) (*zap.Logger, error) {
	level := zapcore.InfoLevel
	if cfg.Level != "" {
		l, err := zapcore.ParseLevel(cfg.Level)
		if err != nil {
			return nil, fmt.Errorf("parse log level: %w", err)
		}
		level = l
	}

	configLog := zap.NewProductionConfig()
	configLog.Level = zap.NewAtomicLevelAt(level)
	configLog.Encoding = "console"
	configLog.OutputPaths = []string{cfg.File}
	configLog.ErrorOutputPaths = []string{"stderr"}
	configLog.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	configLog.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	configLog.DisableCaller = true
	configLog.DisableStacktrace = true
	configLog.Sampling = nil

	logger, err := configLog.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	return logger, nil
}
