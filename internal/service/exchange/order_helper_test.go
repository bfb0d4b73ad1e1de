package exchange

import (
	"errors"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseOrderId(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    OrderId
		wantErr bool
	}{
		{name: "numeric id", input: "12345", want: 12345},
		{name: "surrounding spaces", input: "  42 ", want: 42},
		{name: "letters", input: "abc", wantErr: true},
		{name: "mixed", input: "12a", wantErr: true},
		{name: "empty", input: "", wantErr: true},
		{name: "zero", input: "0", wantErr: true},
		{name: "negative", input: "-7", wantErr: true},
		{name: "decimal", input: "1.5", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseOrderId(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidInput)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseSide(t *testing.T) {
	tests := []struct {
		input   string
		want    Side
		wantErr bool
	}{
		{input: "buy", want: SideBuy},
		{input: " SELL ", want: SideSell},
		{input: "hold", wantErr: true},
		{input: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseSide(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidInput)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseOrderType(t *testing.T) {
	tests := []struct {
		input   string
		want    OrderType
		wantErr bool
	}{
		{input: "market", want: OrderTypeMarket},
		{input: "Limit", want: OrderTypeLimit},
		{input: "STOP", want: OrderTypeStop},
		{input: "STOP_LOSS", wantErr: true},
		{input: "oco", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseOrderType(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidInput)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCreateOrderReqValidate(t *testing.T) {
	one := decimal.NewFromInt(1)
	tests := []struct {
		name    string
		req     CreateOrderReq
		wantErr bool
	}{
		{
			name: "market order",
			req:  CreateOrderReq{Symbol: "btcusdt", Side: SideBuy, Type: OrderTypeMarket, Quantity: one},
		},
		{
			name: "limit order with price",
			req:  CreateOrderReq{Symbol: "BTCUSDT", Side: SideSell, Type: OrderTypeLimit, Quantity: one, Price: one},
		},
		{
			name:    "limit order without price",
			req:     CreateOrderReq{Symbol: "BTCUSDT", Side: SideSell, Type: OrderTypeLimit, Quantity: one},
			wantErr: true,
		},
		{
			name: "stop order with stop price",
			req:  CreateOrderReq{Symbol: "BTCUSDT", Side: SideSell, Type: OrderTypeStop, Quantity: one, StopPrice: one},
		},
		{
			name:    "stop order without stop price",
			req:     CreateOrderReq{Symbol: "BTCUSDT", Side: SideSell, Type: OrderTypeStop, Quantity: one},
			wantErr: true,
		},
		{
			name:    "zero quantity",
			req:     CreateOrderReq{Symbol: "BTCUSDT", Side: SideBuy, Type: OrderTypeMarket, Quantity: decimal.Zero},
			wantErr: true,
		},
		{
			name:    "negative quantity",
			req:     CreateOrderReq{Symbol: "BTCUSDT", Side: SideBuy, Type: OrderTypeMarket, Quantity: one.Neg()},
			wantErr: true,
		},
		{
			name:    "blank symbol",
			req:     CreateOrderReq{Symbol: "  ", Side: SideBuy, Type: OrderTypeMarket, Quantity: one},
			wantErr: true,
		},
		{
			name:    "unknown side",
			req:     CreateOrderReq{Symbol: "BTCUSDT", Side: "HOLD", Type: OrderTypeMarket, Quantity: one},
			wantErr: true,
		},
		{
			name:    "unknown type",
			req:     CreateOrderReq{Symbol: "BTCUSDT", Side: SideBuy, Type: "OCO", Quantity: one},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidInput)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestBalanceIsZero(t *testing.T) {
	tests := []struct {
		name    string
		balance Balance
		want    bool
	}{
		{name: "empty", balance: Balance{Asset: "BTC"}, want: true},
		{name: "free only", balance: Balance{Asset: "BTC", Free: decimal.RequireFromString("0.1")}, want: false},
		{name: "locked only", balance: Balance{Asset: "BTC", Locked: decimal.RequireFromString("0.00000001")}, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.balance.IsZero())
		})
	}
}

func TestErrorKinds(t *testing.T) {
	cause := errors.New("boom")
	err := fmt.Errorf("place order: %w", NewError("create order", ErrRejected, cause))

	assert.ErrorIs(t, err, ErrRejected)
	assert.ErrorIs(t, err, cause)
	assert.NotErrorIs(t, err, ErrNotFound)
	assert.Equal(t, ErrRejected, KindOf(err))
	assert.Equal(t, "rejected", KindName(err))
	assert.Equal(t, "unknown", KindName(cause))
	assert.Nil(t, KindOf(nil))
	assert.Contains(t, err.Error(), "create order: rejected: boom")
}

func TestNormalizeSymbol(t *testing.T) {
	assert.Equal(t, "BTCUSDT", NormalizeSymbol(" btcUsdt "))
	assert.Equal(t, "", NormalizeSymbol("   "))
}

func TestSortedSymbols(t *testing.T) {
	prices := map[string]decimal.Decimal{
		"ETHUSDT": decimal.NewFromInt(3000),
		"BTCUSDT": decimal.NewFromInt(60000),
		"BNBUSDT": decimal.NewFromInt(500),
	}
	assert.Equal(t, []string{"BNBUSDT", "BTCUSDT", "ETHUSDT"}, SortedSymbols(prices))
}
