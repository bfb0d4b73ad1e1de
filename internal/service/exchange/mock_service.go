package exchange

import (
	"context"
	"fmt"
	"sync"

	"github.com/shopspring/decimal"
)

var _ Service = (*MockService)(nil)

// MockService 内存实现, 供前端测试使用
// 每次调用都会记录到 Calls, 设置 Err 后所有调用返回该错误
type MockService struct {
	mu sync.Mutex

	Prices   map[string]decimal.Decimal
	Accounts []Balance
	Orders   []Order
	Err      error

	Calls    []string
	Placed   []CreateOrderReq
	nextId   OrderId
	Canceled []OrderId
}

func NewMockService() *MockService {
	return &MockService{
		Prices: make(map[string]decimal.Decimal),
		nextId: 1000,
	}
}

func (m *MockService) record(call string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls = append(m.Calls, call)
	return m.Err
}

// CallCount 某个方法被调用的次数
func (m *MockService) CallCount(call string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, c := range m.Calls {
		if c == call {
			n++
		}
	}
	return n
}

func (m *MockService) PlaceOrder(ctx context.Context, req CreateOrderReq) (*Order, error) {
	if err := m.record("PlaceOrder"); err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Placed = append(m.Placed, req)
	m.nextId++
	return &Order{
		Id:        m.nextId,
		Symbol:    NormalizeSymbol(req.Symbol),
		Side:      req.Side,
		Type:      req.Type.ToString(),
		Status:    OrderStatusNew,
		Price:     req.Price,
		StopPrice: req.StopPrice,
		Quantity:  req.Quantity,
	}, nil
}

func (m *MockService) PlaceMarketOrder(ctx context.Context, symbol string, side Side, quantity decimal.Decimal) (*Order, error) {
	return m.PlaceOrder(ctx, CreateOrderReq{Symbol: symbol, Side: side, Type: OrderTypeMarket, Quantity: quantity})
}

func (m *MockService) PlaceLimitOrder(ctx context.Context, symbol string, side Side, quantity, price decimal.Decimal) (*Order, error) {
	return m.PlaceOrder(ctx, CreateOrderReq{Symbol: symbol, Side: side, Type: OrderTypeLimit, Quantity: quantity, Price: price})
}

func (m *MockService) PlaceStopOrder(ctx context.Context, symbol string, side Side, quantity, stopPrice decimal.Decimal) (*Order, error) {
	return m.PlaceOrder(ctx, CreateOrderReq{Symbol: symbol, Side: side, Type: OrderTypeStop, Quantity: quantity, StopPrice: stopPrice})
}

func (m *MockService) OpenOrders(ctx context.Context, symbol string) ([]Order, error) {
	if err := m.record("OpenOrders"); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	symbol = NormalizeSymbol(symbol)
	res := make([]Order, 0, len(m.Orders))
	for _, o := range m.Orders {
		if symbol == "" || o.Symbol == symbol {
			res = append(res, o)
		}
	}
	return res, nil
}

func (m *MockService) CancelOrder(ctx context.Context, symbol string, id OrderId) (*Order, error) {
	if err := m.record("CancelOrder"); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Canceled = append(m.Canceled, id)
	return &Order{Id: id, Symbol: NormalizeSymbol(symbol), Status: OrderStatusCanceled}, nil
}

func (m *MockService) Balances(ctx context.Context) ([]Balance, error) {
	if err := m.record("Balances"); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Balance(nil), m.Accounts...), nil
}

func (m *MockService) Ticker(ctx context.Context, symbol string) (decimal.Decimal, error) {
	if err := m.record("Ticker"); err != nil {
		return decimal.Zero, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	price, ok := m.Prices[NormalizeSymbol(symbol)]
	if !ok {
		return decimal.Zero, NewError("ticker", ErrNotFound, fmt.Errorf("no price for %s", symbol))
	}
	return price, nil
}

func (m *MockService) Symbols(ctx context.Context) ([]string, error) {
	if err := m.record("Symbols"); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return SortedSymbols(m.Prices), nil
}

func (m *MockService) SymbolPrices(ctx context.Context) (map[string]decimal.Decimal, error) {
	if err := m.record("SymbolPrices"); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	res := make(map[string]decimal.Decimal, len(m.Prices))
	for k, v := range m.Prices {
		res[k] = v
	}
	return res, nil
}
