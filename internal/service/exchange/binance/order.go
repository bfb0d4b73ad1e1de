package binance

import (
	"context"
	"fmt"

	"github.com/KNICEX/spot-bot/internal/service/exchange"
	"github.com/adshao/go-binance/v2"
	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

func (svc *Service) PlaceOrder(ctx context.Context, req exchange.CreateOrderReq) (*exchange.Order, error) {
	if err := req.Validate(); err != nil {
		svc.logger.Warn("order request rejected before submission", zap.Error(err))
		return nil, err
	}
	switch req.Type {
	case exchange.OrderTypeMarket:
		return svc.PlaceMarketOrder(ctx, req.Symbol, req.Side, req.Quantity)
	case exchange.OrderTypeLimit:
		return svc.PlaceLimitOrder(ctx, req.Symbol, req.Side, req.Quantity, req.Price)
	default:
		return svc.PlaceStopOrder(ctx, req.Symbol, req.Side, req.Quantity, req.StopPrice)
	}
}

func (svc *Service) PlaceMarketOrder(ctx context.Context, symbol string, side exchange.Side, quantity decimal.Decimal) (*exchange.Order, error) {
	symbol = exchange.NormalizeSymbol(symbol)
	orderSvc := svc.cli.NewCreateOrderService().
		Symbol(symbol).
		Side(binanceSide(side)).
		Type(binanceOrderType(exchange.OrderTypeMarket)).
		Quantity(quantity.String())
	return svc.submit(ctx, "place market order", orderSvc, exchange.OrderTypeMarket, side, symbol)
}

// PlaceLimitOrder 下单前取最新价, 超出 ±5% 时按方向替换价格 (见 AdjustLimitPrice)
func (svc *Service) PlaceLimitOrder(ctx context.Context, symbol string, side exchange.Side, quantity, price decimal.Decimal) (*exchange.Order, error) {
	const op = "place limit order"
	symbol = exchange.NormalizeSymbol(symbol)

	current, err := svc.ticker(ctx, symbol)
	if err != nil {
		svc.metrics.OrderPlaced(exchange.OrderTypeLimit.ToString(), side.ToString(), err)
		return nil, svc.fail(op, err, zap.String("symbol", symbol))
	}

	adjusted, changed := AdjustLimitPrice(side, price, current)
	if changed {
		svc.logger.Warn("limit price adjusted to meet exchange price band",
			zap.String("symbol", symbol),
			zap.String("side", side.ToString()),
			zap.String("requested", price.String()),
			zap.String("adjusted", adjusted.String()),
			zap.String("market", current.String()),
		)
		svc.metrics.PriceAdjusted(side.ToString())
	}

	orderSvc := svc.cli.NewCreateOrderService().
		Symbol(symbol).
		Side(binanceSide(side)).
		Type(binanceOrderType(exchange.OrderTypeLimit)).
		TimeInForce(binance.TimeInForceTypeGTC).
		Quantity(quantity.String()).
		Price(adjusted.String())
	return svc.submit(ctx, op, orderSvc, exchange.OrderTypeLimit, side, symbol)
}

// PlaceStopOrder 止损单不做价格带调整
func (svc *Service) PlaceStopOrder(ctx context.Context, symbol string, side exchange.Side, quantity, stopPrice decimal.Decimal) (*exchange.Order, error) {
	symbol = exchange.NormalizeSymbol(symbol)
	orderSvc := svc.cli.NewCreateOrderService().
		Symbol(symbol).
		Side(binanceSide(side)).
		Type(binanceOrderType(exchange.OrderTypeStop)).
		Quantity(quantity.String()).
		StopPrice(stopPrice.String())
	order, err := svc.submit(ctx, "place stop order", orderSvc, exchange.OrderTypeStop, side, symbol)
	if err != nil {
		return nil, err
	}
	// 下单响应不带触发价
	order.StopPrice = stopPrice
	return order, nil
}

func (svc *Service) submit(ctx context.Context, op string, orderSvc *binance.CreateOrderService,
	typ exchange.OrderType, side exchange.Side, symbol string) (*exchange.Order, error) {
	clientOrderId := newClientOrderId()
	resp, err := orderSvc.NewClientOrderID(clientOrderId).Do(ctx, svc.recvWindowOpt())
	svc.metrics.OrderPlaced(typ.ToString(), side.ToString(), err)
	if err != nil {
		return nil, svc.fail(op, err,
			zap.String("symbol", symbol),
			zap.String("side", side.ToString()),
			zap.String("client_order_id", clientOrderId),
		)
	}
	svc.logger.Info(op+" succeeded", zap.Any("response", resp))
	return parseCreateOrderResponse(resp), nil
}

func (svc *Service) OpenOrders(ctx context.Context, symbol string) ([]exchange.Order, error) {
	symbol = exchange.NormalizeSymbol(symbol)
	listSvc := svc.cli.NewListOpenOrdersService()
	if symbol != "" {
		listSvc.Symbol(symbol)
	}
	orders, err := listSvc.Do(ctx, svc.recvWindowOpt())
	if err != nil {
		return nil, svc.fail("open orders", err, zap.String("symbol", symbol))
	}
	svc.logger.Info("open orders fetched", zap.String("symbol", symbol), zap.Int("count", len(orders)))
	return lo.Map(orders, func(item *binance.Order, index int) exchange.Order {
		return parseOrder(item)
	}), nil
}

func (svc *Service) CancelOrder(ctx context.Context, symbol string, id exchange.OrderId) (*exchange.Order, error) {
	if id.IsZero() {
		return nil, fmt.Errorf("%w: order id must be positive, got %d", exchange.ErrInvalidInput, id)
	}
	symbol = exchange.NormalizeSymbol(symbol)
	resp, err := svc.cli.NewCancelOrderService().
		Symbol(symbol).
		OrderID(id.ToInt64()).
		Do(ctx, svc.recvWindowOpt())
	if err != nil {
		return nil, svc.fail("cancel order", err, zap.String("symbol", symbol), zap.Int64("order_id", id.ToInt64()))
	}
	svc.logger.Info("order cancelled", zap.Int64("order_id", id.ToInt64()), zap.Any("response", resp))
	return parseCancelOrderResponse(resp), nil
}

func newClientOrderId() string {
	return uuid.NewString()
}
