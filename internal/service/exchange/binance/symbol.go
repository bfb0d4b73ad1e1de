package binance

import (
	"context"
	"sort"
	"sync"

	"github.com/KNICEX/spot-bot/internal/service/exchange"
	"github.com/adshao/go-binance/v2"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const symbolStatusTrading = "TRADING"

// symbolCache 交易对列表只在第一次成功获取时填充, 之后整个进程生命周期内不再刷新
type symbolCache struct {
	mu      sync.Mutex
	symbols []string
}

func (c *symbolCache) load(ctx context.Context, fetch func(ctx context.Context) ([]string, error)) ([]string, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.symbols) > 0 {
		return c.symbols, false, nil
	}
	symbols, err := fetch(ctx)
	if err != nil {
		return nil, false, err
	}
	c.symbols = symbols
	return c.symbols, true, nil
}

func (svc *Service) Symbols(ctx context.Context) ([]string, error) {
	symbols, err := svc.cachedSymbols(ctx)
	if err != nil {
		return nil, svc.fail("symbols", err)
	}
	return append([]string(nil), symbols...), nil
}

// SymbolPrices 交易对列表走缓存, 价格每次重新获取, 返回两者交集
func (svc *Service) SymbolPrices(ctx context.Context) (map[string]decimal.Decimal, error) {
	const op = "symbol prices"
	symbols, err := svc.cachedSymbols(ctx)
	if err != nil {
		return nil, svc.fail(op, err)
	}

	tickers, err := svc.cli.NewListPricesService().Do(ctx)
	if err != nil {
		return nil, svc.fail(op, err)
	}
	latest := lo.SliceToMap(tickers, func(item *binance.SymbolPrice) (string, string) {
		return item.Symbol, item.Price
	})

	prices := make(map[string]decimal.Decimal, len(symbols))
	for _, symbol := range symbols {
		raw, ok := latest[symbol]
		if !ok {
			continue
		}
		price, err := decimal.NewFromString(raw)
		if err != nil {
			svc.logger.Error("fail to parse price", zap.String("symbol", symbol), zap.String("price", raw), zap.Error(err))
			continue
		}
		prices[symbol] = price
	}
	svc.logger.Info("symbols and prices fetched", zap.Int("symbols", len(symbols)), zap.Int("priced", len(prices)))
	return prices, nil
}

func (svc *Service) cachedSymbols(ctx context.Context) ([]string, error) {
	symbols, loaded, err := svc.symbols.load(ctx, svc.fetchTradingSymbols)
	if err != nil {
		return nil, err
	}
	if loaded {
		svc.metrics.SetSymbolCacheSize(len(symbols))
		svc.logger.Info("symbol cache populated", zap.Int("symbols", len(symbols)))
	}
	return symbols, nil
}

// fetchTradingSymbols 只保留正在交易且以 USDT 计价的交易对
func (svc *Service) fetchTradingSymbols(ctx context.Context) ([]string, error) {
	info, err := svc.cli.NewExchangeInfoService().Do(ctx)
	if err != nil {
		return nil, err
	}
	symbols := lo.FilterMap(info.Symbols, func(item binance.Symbol, index int) (string, bool) {
		return item.Symbol, item.Status == symbolStatusTrading && item.QuoteAsset == exchange.SettlementAsset
	})
	sort.Strings(symbols)
	return symbols, nil
}
