package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/KNICEX/spot-bot/internal/cli"
	"github.com/KNICEX/spot-bot/internal/metrics"
	"github.com/KNICEX/spot-bot/ioc"
)

func main() {
	cfg := ioc.InitConfig()
	logger := ioc.InitLogger(cfg.Log)
	defer logger.Sync()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	bot := ioc.InitBot(ctx, cfg.Binance, logger, metrics.New())
	if err := cli.New(bot, os.Stdin, os.Stdout, cli.WithLogger(logger)).Run(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
