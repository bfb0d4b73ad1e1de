package ioc

import (
	"github.com/KNICEX/spot-bot/internal/config"
	"github.com/KNICEX/spot-bot/internal/logger"
	"go.uber.org/zap"
)

func InitLogger(cfg config.LogConfig) *zap.Logger {
	l, err := logger.New(cfg)
	if err != nil {
		panic(err)
	}
	return l
}
