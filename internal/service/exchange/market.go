package exchange

import (
	"context"
	"sort"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

type MarketService interface {
	Ticker(ctx context.Context, symbol string) (decimal.Decimal, error)
	// Symbols tradable symbols quoted in SettlementAsset, fetched once per process
	Symbols(ctx context.Context) ([]string, error)
	// SymbolPrices latest price of every cached symbol still present in the ticker snapshot
	SymbolPrices(ctx context.Context) (map[string]decimal.Decimal, error)
}

// Service 前端 (cli / web) 只依赖这个接口
type Service interface {
	OrderService
	AccountService
	MarketService
}

// SortedSymbols keys of a price map in ascending order
func SortedSymbols(prices map[string]decimal.Decimal) []string {
	symbols := lo.Keys(prices)
	sort.Strings(symbols)
	return symbols
}
