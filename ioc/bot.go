package ioc

import (
	"context"

	"github.com/KNICEX/spot-bot/internal/config"
	"github.com/KNICEX/spot-bot/internal/metrics"
	"github.com/KNICEX/spot-bot/internal/service/exchange/binance"
	"go.uber.org/zap"
)

// InitBot 组装交易所适配器, 启动时与服务器对时一次
func InitBot(ctx context.Context, cfg config.BinanceConfig, l *zap.Logger, m *metrics.Metrics) *binance.Service {
	l.Info("initializing bot", zap.Stringer("binance", cfg))
	svc, err := binance.NewService(ctx, InitBinanceCli(cfg),
		binance.WithLogger(l),
		binance.WithMetrics(m),
		binance.WithRecvWindow(cfg.RecvWindow),
	)
	if err != nil {
		l.Error("initialize bot failed", zap.Error(err))
		panic(err)
	}
	return svc
}
