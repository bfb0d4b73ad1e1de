package exchange

import (
	"fmt"
	"strings"
)

// SettlementAsset 只展示以 USDT 计价的交易对
const SettlementAsset = "USDT"

// NormalizeSymbol 交易对统一使用大写, 如 btcusdt -> BTCUSDT
func NormalizeSymbol(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}

type Side string

const (
	SideBuy  Side = "BUY"
	SideSell Side = "SELL"
)

func (s Side) ToString() string {
	return string(s)
}

func (s Side) IsValid() bool {
	return s == SideBuy || s == SideSell
}

func ParseSide(s string) (Side, error) {
	side := Side(strings.ToUpper(strings.TrimSpace(s)))
	if !side.IsValid() {
		return "", fmt.Errorf("%w: side must be BUY or SELL, got %q", ErrInvalidInput, s)
	}
	return side, nil
}

type OrderType string

const (
	OrderTypeMarket OrderType = "MARKET"
	OrderTypeLimit  OrderType = "LIMIT"
	OrderTypeStop   OrderType = "STOP"
)

var OrderTypes = []OrderType{OrderTypeMarket, OrderTypeLimit, OrderTypeStop}

func (t OrderType) ToString() string {
	return string(t)
}

func (t OrderType) IsValid() bool {
	switch t {
	case OrderTypeMarket, OrderTypeLimit, OrderTypeStop:
		return true
	default:
		return false
	}
}

func ParseOrderType(s string) (OrderType, error) {
	typ := OrderType(strings.ToUpper(strings.TrimSpace(s)))
	if !typ.IsValid() {
		return "", fmt.Errorf("%w: order type must be MARKET, LIMIT or STOP, got %q", ErrInvalidInput, s)
	}
	return typ, nil
}
