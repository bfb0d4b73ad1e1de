package cli

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/KNICEX/spot-bot/internal/service/exchange"
	"github.com/KNICEX/spot-bot/pkg/decimalx"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const menu = `
📊 Choose an option:
1. ➕ Place an Order
2. 💰 Check Balance
3. 📋 View Open Orders
4. 🗑 Cancel an Order
5. 📈 List Symbols with Prices
6. 🚪 Exit`

// errCancelled 用户在确认步骤选择了 n
var errCancelled = errors.New("cancelled by user")

// CLI 菜单式命令行前端, 每个选项只调用一次 exchange.Service
type CLI struct {
	svc    exchange.Service
	in     *bufio.Scanner
	out    io.Writer
	logger *zap.Logger
}

type Option func(c *CLI)

func WithLogger(logger *zap.Logger) Option {
	return func(c *CLI) {
		c.logger = logger
	}
}

func New(svc exchange.Service, in io.Reader, out io.Writer, opts ...Option) *CLI {
	c := &CLI{
		svc:    svc,
		in:     bufio.NewScanner(in),
		out:    out,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Run 循环读取菜单选项, 选择退出或输入结束时返回 nil
func (c *CLI) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		c.println(menu)
		choice, err := c.ask("🔹 Enter choice: ")
		if err != nil {
			return c.eof(err)
		}

		switch choice {
		case "1":
			err = c.placeOrder(ctx)
		case "2":
			c.balances(ctx)
		case "3":
			err = c.openOrders(ctx)
		case "4":
			err = c.cancelOrder(ctx)
		case "5":
			c.symbolPrices(ctx)
		case "6":
			c.println("👋 Exiting... Bye!")
			return nil
		default:
			c.println("❌ Invalid choice, try again!")
		}
		if err != nil {
			return c.eof(err)
		}
	}
}

func (c *CLI) eof(err error) error {
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

func (c *CLI) placeOrder(ctx context.Context) error {
	req, err := c.readOrder()
	switch {
	case errors.Is(err, io.EOF):
		return err
	case errors.Is(err, errCancelled):
		c.logger.Info("order cancelled by user", zap.String("symbol", req.Symbol))
		c.println("❌ Cancelled by user.")
		return nil
	case err != nil:
		c.printf("❌ %v\n", err)
		return nil
	}

	order, err := c.svc.PlaceOrder(ctx, req)
	if err != nil {
		c.printf("❌ Failed to place order: %v\n", err)
		return nil
	}
	c.println("✅ Order Response:")
	c.printJSON(order)
	return nil
}

// readOrder 按类型询问价格, 全部输入校验通过后才要求确认
func (c *CLI) readOrder() (exchange.CreateOrderReq, error) {
	var req exchange.CreateOrderReq

	symbol, err := c.ask("🔸 Enter Symbol (e.g., BTCUSDT): ")
	if err != nil {
		return req, err
	}
	req.Symbol = exchange.NormalizeSymbol(symbol)
	if req.Symbol == "" {
		return req, fmt.Errorf("%w: symbol is required", exchange.ErrInvalidInput)
	}

	side, err := c.ask("🔸 Side (BUY / SELL): ")
	if err != nil {
		return req, err
	}
	if req.Side, err = exchange.ParseSide(side); err != nil {
		return req, err
	}

	typ, err := c.ask("🔸 Order Type (MARKET / LIMIT / STOP): ")
	if err != nil {
		return req, err
	}
	if req.Type, err = exchange.ParseOrderType(typ); err != nil {
		return req, err
	}

	if req.Quantity, err = c.askDecimal("🔸 Quantity: ", "quantity"); err != nil {
		return req, err
	}
	switch req.Type {
	case exchange.OrderTypeLimit:
		if req.Price, err = c.askDecimal("🔸 Enter Limit Price: ", "limit price"); err != nil {
			return req, err
		}
	case exchange.OrderTypeStop:
		if req.StopPrice, err = c.askDecimal("🔸 Enter Stop Price: ", "stop price"); err != nil {
			return req, err
		}
	}

	c.println("\n📝 Order Summary:")
	c.printf("▶ Symbol: %s\n", req.Symbol)
	c.printf("▶ Side: %s\n", req.Side)
	c.printf("▶ Type: %s\n", req.Type)
	c.printf("▶ Quantity: %s\n", req.Quantity)
	if req.Type == exchange.OrderTypeLimit {
		c.printf("▶ Limit Price: %s\n", req.Price)
	}
	if req.Type == exchange.OrderTypeStop {
		c.printf("▶ Stop Price: %s\n", req.StopPrice)
	}

	confirm, err := c.ask("✅ Proceed? (y/n): ")
	if err != nil {
		return req, err
	}
	if strings.ToLower(confirm) != "y" {
		return req, errCancelled
	}
	return req, nil
}

func (c *CLI) askDecimal(prompt, field string) (decimal.Decimal, error) {
	s, err := c.ask(prompt)
	if err != nil {
		return decimal.Zero, err
	}
	d, err := decimalx.ParsePositive(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %s %v", exchange.ErrInvalidInput, field, err)
	}
	return d, nil
}

func (c *CLI) balances(ctx context.Context) {
	balances, err := c.svc.Balances(ctx)
	if err != nil {
		c.printf("❌ Failed to fetch balance: %v\n", err)
		return
	}
	c.println("💰 Your Balance (non-zero only):")
	if len(balances) == 0 {
		c.println("No assets found.")
		return
	}
	for _, b := range balances {
		c.printf(" - %s: %s (free), %s (locked)\n", b.Asset, b.Free, b.Locked)
	}
}

func (c *CLI) openOrders(ctx context.Context) error {
	symbol, err := c.ask("🔸 Enter symbol to filter (or press Enter to see all): ")
	if err != nil {
		return err
	}
	orders, err := c.svc.OpenOrders(ctx, exchange.NormalizeSymbol(symbol))
	if err != nil {
		c.printf("❌ Failed to fetch open orders: %v\n", err)
		return nil
	}
	c.println("📋 Open Orders:")
	if len(orders) == 0 {
		c.println("No open orders found.")
		return nil
	}
	for _, o := range orders {
		c.printf(" - ID: %d | Symbol: %s | Type: %s | Qty: %s | Price: %s\n", o.Id, o.Symbol, o.Type, o.Quantity, o.Price)
	}
	return nil
}

func (c *CLI) cancelOrder(ctx context.Context) error {
	symbol, err := c.ask("🔸 Symbol of order to cancel (e.g., BTCUSDT): ")
	if err != nil {
		return err
	}
	rawId, err := c.ask("🔸 Order ID to cancel: ")
	if err != nil {
		return err
	}
	symbol = exchange.NormalizeSymbol(symbol)
	if symbol == "" {
		c.println("❌ Symbol is required.")
		return nil
	}
	id, err := exchange.ParseOrderId(rawId)
	if err != nil {
		c.printf("❌ %v\n", err)
		return nil
	}

	order, err := c.svc.CancelOrder(ctx, symbol, id)
	if err != nil {
		c.printf("❌ Failed to cancel order: %v\n", err)
		return nil
	}
	c.println("🗑 Cancel Response:")
	c.printJSON(order)
	return nil
}

func (c *CLI) symbolPrices(ctx context.Context) {
	prices, err := c.svc.SymbolPrices(ctx)
	if err != nil {
		c.printf("❌ Failed to fetch prices: %v\n", err)
		return
	}
	c.println("📈 Symbols and Prices:")
	for _, symbol := range exchange.SortedSymbols(prices) {
		c.printf(" - %s: %s\n", symbol, prices[symbol])
	}
	c.printf("Total symbols listed: %d\n", len(prices))
}

func (c *CLI) ask(prompt string) (string, error) {
	_, _ = fmt.Fprint(c.out, prompt)
	if !c.in.Scan() {
		if err := c.in.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return strings.TrimSpace(c.in.Text()), nil
}

func (c *CLI) printJSON(v any) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		c.printf("%+v\n", v)
		return
	}
	c.println(string(data))
}

func (c *CLI) println(s string) {
	_, _ = fmt.Fprintln(c.out, s)
}

func (c *CLI) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(c.out, format, args...)
}
