package binance

import (
	"net/http"
	"testing"

	"github.com/KNICEX/spot-bot/internal/service/exchange"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type SymbolSuite struct {
	BaseSuite
}

func TestSymbolSuite(t *testing.T) {
	suite.Run(t, new(SymbolSuite))
}

func (s *SymbolSuite) SetupTest() {
	s.BaseSuite.SetupTest()
	s.exchange.reply(routeExchangeInfo, http.StatusOK, map[string]any{
		"timezone": "UTC",
		"symbols": []map[string]any{
			{"symbol": "BTCUSDT", "status": "TRADING", "baseAsset": "BTC", "quoteAsset": "USDT"},
			{"symbol": "ETHBTC", "status": "TRADING", "baseAsset": "ETH", "quoteAsset": "BTC"},
			{"symbol": "LUNAUSDT", "status": "BREAK", "baseAsset": "LUNA", "quoteAsset": "USDT"},
			{"symbol": "ETHUSDT", "status": "TRADING", "baseAsset": "ETH", "quoteAsset": "USDT"},
			{"symbol": "NEWUSDT", "status": "TRADING", "baseAsset": "NEW", "quoteAsset": "USDT"},
		},
	})
	s.exchange.handle(routeTicker, tickerHandler(map[string]string{
		"BTCUSDT":  "60000.01",
		"ETHBTC":   "0.05",
		"ETHUSDT":  "3000.50",
		"LUNAUSDT": "0.0001",
	}))
}

// ETHBTC 以 BTC 计价, 不进入缓存
func (s *SymbolSuite) TestSymbolsFilterQuoteAndStatus() {
	symbols, err := s.svc.Symbols(s.ctx)
	s.Require().NoError(err)
	s.Equal([]string{"BTCUSDT", "ETHUSDT", "NEWUSDT"}, symbols)
}

func (s *SymbolSuite) TestSymbolPricesIntersection() {
	prices, err := s.svc.SymbolPrices(s.ctx)
	s.Require().NoError(err)

	// NEWUSDT 没有价格, ETHBTC / LUNAUSDT 不在缓存里
	s.Len(prices, 2)
	s.True(prices["BTCUSDT"].Equal(decimal.RequireFromString("60000.01")))
	s.True(prices["ETHUSDT"].Equal(decimal.RequireFromString("3000.5")))
	s.NotContains(prices, "ETHBTC")
	s.NotContains(prices, "LUNAUSDT")
	s.NotContains(prices, "NEWUSDT")
}

func (s *SymbolSuite) TestSymbolListCachedPricesRefetched() {
	_, err := s.svc.SymbolPrices(s.ctx)
	s.Require().NoError(err)

	s.exchange.handle(routeTicker, tickerHandler(map[string]string{
		"BTCUSDT": "61000",
	}))
	prices, err := s.svc.SymbolPrices(s.ctx)
	s.Require().NoError(err)

	s.Len(s.exchange.calls(routeExchangeInfo), 1)
	s.Len(s.exchange.calls(routeTicker), 2)
	s.Len(prices, 1)
	s.True(prices["BTCUSDT"].Equal(decimal.NewFromInt(61000)))
}

// 交易所新上架的交易对不会出现, 缓存在进程生命周期内不刷新
func (s *SymbolSuite) TestSymbolCacheIsNeverRefreshed() {
	_, err := s.svc.Symbols(s.ctx)
	s.Require().NoError(err)

	s.exchange.reply(routeExchangeInfo, http.StatusOK, map[string]any{
		"symbols": []map[string]any{
			{"symbol": "SOLUSDT", "status": "TRADING", "quoteAsset": "USDT"},
		},
	})
	symbols, err := s.svc.Symbols(s.ctx)
	s.Require().NoError(err)
	s.Equal([]string{"BTCUSDT", "ETHUSDT", "NEWUSDT"}, symbols)
	s.Len(s.exchange.calls(routeExchangeInfo), 1)
}

func (s *SymbolSuite) TestFailedFetchLeavesCacheEmpty() {
	s.exchange.reply(routeExchangeInfo, http.StatusInternalServerError, map[string]any{"code": -1001, "msg": "Internal error"})

	prices, err := s.svc.SymbolPrices(s.ctx)
	s.Nil(prices)
	s.ErrorIs(err, exchange.ErrRejected)
	s.Empty(s.exchange.calls(routeTicker))

	s.exchange.reply(routeExchangeInfo, http.StatusOK, map[string]any{
		"symbols": []map[string]any{
			{"symbol": "BTCUSDT", "status": "TRADING", "quoteAsset": "USDT"},
		},
	})
	prices, err = s.svc.SymbolPrices(s.ctx)
	s.Require().NoError(err)
	s.Len(prices, 1)
	s.Len(s.exchange.calls(routeExchangeInfo), 2)
}

func (s *SymbolSuite) TestSymbolsReturnsCopy() {
	symbols, err := s.svc.Symbols(s.ctx)
	s.Require().NoError(err)
	symbols[0] = "MUTATED"

	again, err := s.svc.Symbols(s.ctx)
	s.Require().NoError(err)
	s.Equal("BTCUSDT", again[0])
}

func (s *SymbolSuite) TestTicker() {
	price, err := s.svc.Ticker(s.ctx, " ethusdt ")
	s.Require().NoError(err)
	s.True(price.Equal(decimal.RequireFromString("3000.5")))
	s.Equal("ETHUSDT", s.lastParams(routeTicker)["symbol"])
}
