package binance

import (
	"context"

	"github.com/KNICEX/spot-bot/internal/service/exchange"
	"github.com/adshao/go-binance/v2"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

func (svc *Service) Balances(ctx context.Context) ([]exchange.Balance, error) {
	account, err := svc.cli.NewGetAccountService().Do(ctx, svc.recvWindowOpt())
	if err != nil {
		return nil, svc.fail("balances", err)
	}

	balances := lo.FilterMap(account.Balances, func(item binance.Balance, index int) (exchange.Balance, bool) {
		b := exchange.Balance{
			Asset:  item.Asset,
			Free:   parseDecimal(item.Free),
			Locked: parseDecimal(item.Locked),
		}
		return b, !b.IsZero()
	})
	svc.logger.Info("balance fetched", zap.Int("assets", len(balances)))
	return balances, nil
}
