package binance

import (
	"time"

	"github.com/KNICEX/spot-bot/internal/service/exchange"
	"github.com/adshao/go-binance/v2"
	"github.com/shopspring/decimal"
)

func binanceSide(side exchange.Side) binance.SideType {
	switch side {
	case exchange.SideBuy:
		return binance.SideTypeBuy
	case exchange.SideSell:
		return binance.SideTypeSell
	default:
		return ""
	}
}

func fromBinanceSide(side binance.SideType) exchange.Side {
	switch side {
	case binance.SideTypeBuy:
		return exchange.SideBuy
	case binance.SideTypeSell:
		return exchange.SideSell
	default:
		return exchange.Side(side)
	}
}

// binanceOrderType STOP 对应现货的 STOP_LOSS (触发后按市价成交)
func binanceOrderType(typ exchange.OrderType) binance.OrderType {
	switch typ {
	case exchange.OrderTypeMarket:
		return binance.OrderTypeMarket
	case exchange.OrderTypeLimit:
		return binance.OrderTypeLimit
	case exchange.OrderTypeStop:
		return binance.OrderTypeStopLoss
	default:
		return ""
	}
}

// parseDecimal 交易所返回的数字字符串, 空串或非法值按 0 处理
func parseDecimal(s string) decimal.Decimal {
	if s == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

func parseOrder(order *binance.Order) exchange.Order {
	return exchange.Order{
		Id:               exchange.OrderId(order.OrderID),
		ClientOrderId:    order.ClientOrderID,
		Symbol:           order.Symbol,
		Side:             fromBinanceSide(order.Side),
		Type:             string(order.Type),
		Status:           exchange.OrderStatus(order.Status),
		TimeInForce:      string(order.TimeInForce),
		Price:            parseDecimal(order.Price),
		StopPrice:        parseDecimal(order.StopPrice),
		Quantity:         parseDecimal(order.OrigQuantity),
		ExecutedQuantity: parseDecimal(order.ExecutedQuantity),
		Time:             time.UnixMilli(order.Time),
	}
}

func parseCreateOrderResponse(resp *binance.CreateOrderResponse) *exchange.Order {
	return &exchange.Order{
		Id:               exchange.OrderId(resp.OrderID),
		ClientOrderId:    resp.ClientOrderID,
		Symbol:           resp.Symbol,
		Side:             fromBinanceSide(resp.Side),
		Type:             string(resp.Type),
		Status:           exchange.OrderStatus(resp.Status),
		TimeInForce:      string(resp.TimeInForce),
		Price:            parseDecimal(resp.Price),
		Quantity:         parseDecimal(resp.OrigQuantity),
		ExecutedQuantity: parseDecimal(resp.ExecutedQuantity),
		Time:             time.UnixMilli(resp.TransactTime),
	}
}

func parseCancelOrderResponse(resp *binance.CancelOrderResponse) *exchange.Order {
	return &exchange.Order{
		Id:               exchange.OrderId(resp.OrderID),
		ClientOrderId:    resp.OrigClientOrderID,
		Symbol:           resp.Symbol,
		Side:             fromBinanceSide(resp.Side),
		Type:             string(resp.Type),
		Status:           exchange.OrderStatus(resp.Status),
		TimeInForce:      string(resp.TimeInForce),
		Price:            parseDecimal(resp.Price),
		Quantity:         parseDecimal(resp.OrigQuantity),
		ExecutedQuantity: parseDecimal(resp.ExecutedQuantity),
		Time:             time.UnixMilli(resp.TransactTime),
	}
}
