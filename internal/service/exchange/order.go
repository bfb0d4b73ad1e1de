package exchange

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// https://developers.binance.com/docs/binance-spot-api-docs/rest-api/trading-endpoints

type OrderId int64

func (id OrderId) IsZero() bool {
	return id <= 0
}

func (id OrderId) ToString() string {
	return strconv.FormatInt(int64(id), 10)
}

func (id OrderId) ToInt64() int64 {
	return int64(id)
}

// ParseOrderId 订单 id 必须是正整数, 校验失败时不会发出任何请求
func ParseOrderId(s string) (OrderId, error) {
	s = strings.TrimSpace(s)
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: order id must be numeric, got %q", ErrInvalidInput, s)
	}
	if id <= 0 {
		return 0, fmt.Errorf("%w: order id must be positive, got %d", ErrInvalidInput, id)
	}
	return OrderId(id), nil
}

type OrderService interface {
	// PlaceOrder validates req and dispatches on req.Type
	PlaceOrder(ctx context.Context, req CreateOrderReq) (*Order, error)

	PlaceMarketOrder(ctx context.Context, symbol string, side Side, quantity decimal.Decimal) (*Order, error)
	// PlaceLimitOrder may move price back into the band accepted by the exchange
	PlaceLimitOrder(ctx context.Context, symbol string, side Side, quantity, price decimal.Decimal) (*Order, error)
	// PlaceStopOrder is never price adjusted
	PlaceStopOrder(ctx context.Context, symbol string, side Side, quantity, stopPrice decimal.Decimal) (*Order, error)

	// OpenOrders lists unfilled orders, empty symbol means every symbol
	OpenOrders(ctx context.Context, symbol string) ([]Order, error)
	CancelOrder(ctx context.Context, symbol string, id OrderId) (*Order, error)
}

type CreateOrderReq struct {
	Symbol    string
	Side      Side
	Type      OrderType
	Quantity  decimal.Decimal
	Price     decimal.Decimal // 限价单有效
	StopPrice decimal.Decimal // 止损单有效
}

func (req CreateOrderReq) Validate() error {
	if NormalizeSymbol(req.Symbol) == "" {
		return fmt.Errorf("%w: symbol is required", ErrInvalidInput)
	}
	if !req.Side.IsValid() {
		return fmt.Errorf("%w: invalid side %q", ErrInvalidInput, req.Side)
	}
	if !req.Quantity.IsPositive() {
		return fmt.Errorf("%w: quantity must be greater than 0", ErrInvalidInput)
	}
	switch req.Type {
	case OrderTypeMarket:
	case OrderTypeLimit:
		if !req.Price.IsPositive() {
			return fmt.Errorf("%w: limit price must be greater than 0", ErrInvalidInput)
		}
	case OrderTypeStop:
		if !req.StopPrice.IsPositive() {
			return fmt.Errorf("%w: stop price must be greater than 0", ErrInvalidInput)
		}
	default:
		return fmt.Errorf("%w: invalid order type %q", ErrInvalidInput, req.Type)
	}
	return nil
}

type OrderStatus string

const (
	OrderStatusNew             OrderStatus = "NEW"
	OrderStatusPartiallyFilled OrderStatus = "PARTIALLY_FILLED"
	OrderStatusFilled          OrderStatus = "FILLED"
	OrderStatusCanceled        OrderStatus = "CANCELED"
	OrderStatusRejected        OrderStatus = "REJECTED"
	OrderStatusExpired         OrderStatus = "EXPIRED"
)

// Order 交易所返回的订单, Type 保留交易所原始类型 (如 STOP_LOSS)
type Order struct {
	Id               OrderId         `json:"orderId"`
	ClientOrderId    string          `json:"clientOrderId"`
	Symbol           string          `json:"symbol"`
	Side             Side            `json:"side"`
	Type             string          `json:"type"`
	Status           OrderStatus     `json:"status"`
	TimeInForce      string          `json:"timeInForce,omitempty"`
	Price            decimal.Decimal `json:"price"`
	StopPrice        decimal.Decimal `json:"stopPrice"`
	Quantity         decimal.Decimal `json:"origQty"`
	ExecutedQuantity decimal.Decimal `json:"executedQty"`
	Time             time.Time       `json:"time"`
}

// IsActive 未完全成交且未撤销
func (o *Order) IsActive() bool {
	return o.Status == OrderStatusNew || o.Status == OrderStatusPartiallyFilled
}
