package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/KNICEX/spot-bot/internal/metrics"
	"github.com/KNICEX/spot-bot/internal/web"
	"github.com/KNICEX/spot-bot/ioc"
	"go.uber.org/zap"
)

func main() {
	cfg := ioc.InitConfig()
	logger := ioc.InitLogger(cfg.Log)
	defer logger.Sync()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	m := metrics.New()
	bot := ioc.InitBot(ctx, cfg.Binance, logger, m)
	server := web.NewServer(bot,
		web.WithLogger(logger),
		web.WithMetrics(m),
		web.WithTestnet(cfg.Binance.Testnet),
	)
	if err := server.ListenAndServe(ctx, cfg.Web.Addr); err != nil {
		logger.Error("web server stopped", zap.Error(err))
		panic(err)
	}
}
