package ioc

import (
	"github.com/KNICEX/spot-bot/internal/config"
	"github.com/adshao/go-binance/v2"
)

// InitBinanceCli 现货 REST 客户端, 地址由 testnet / base_url 决定
func InitBinanceCli(cfg config.BinanceConfig) *binance.Client {
	cli := binance.NewClient(cfg.ApiKey, cfg.ApiSecret)
	cli.BaseURL = cfg.Endpoint()
	return cli
}
