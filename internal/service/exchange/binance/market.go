package binance

import (
	"context"
	"fmt"

	"github.com/KNICEX/spot-bot/internal/service/exchange"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

func (svc *Service) Ticker(ctx context.Context, symbol string) (decimal.Decimal, error) {
	symbol = exchange.NormalizeSymbol(symbol)
	price, err := svc.ticker(ctx, symbol)
	if err != nil {
		return decimal.Zero, svc.fail("ticker", err, zap.String("symbol", symbol))
	}
	return price, nil
}

func (svc *Service) ticker(ctx context.Context, symbol string) (decimal.Decimal, error) {
	prices, err := svc.cli.NewListPricesService().Symbol(symbol).Do(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	if len(prices) == 0 {
		return decimal.Zero, exchange.NewError("ticker", exchange.ErrNotFound, fmt.Errorf("no price for symbol %s", symbol))
	}
	price, err := decimal.NewFromString(prices[0].Price)
	if err != nil {
		return decimal.Zero, exchange.NewError("ticker", exchange.ErrTransport, fmt.Errorf("parse price %q: %w", prices[0].Price, err))
	}
	return price, nil
}
