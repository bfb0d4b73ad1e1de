package web

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"strings"
	"time"

	"github.com/KNICEX/spot-bot/internal/metrics"
	"github.com/KNICEX/spot-bot/internal/service/exchange"
	"github.com/KNICEX/spot-bot/pkg/decimalx"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

// Server 网页前端, 每个表单提交只调用一次 exchange.Service
type Server struct {
	svc     exchange.Service
	logger  *zap.Logger
	metrics *metrics.Metrics
	testnet bool
	mux     *http.ServeMux
}

type Option func(s *Server)

func WithLogger(logger *zap.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithMetrics 挂载 /metrics
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Server) {
		s.metrics = m
	}
}

func WithTestnet(testnet bool) Option {
	return func(s *Server) {
		s.testnet = testnet
	}
}

func NewServer(svc exchange.Service, opts ...Option) *Server {
	s := &Server{
		svc:    svc,
		logger: zap.NewNop(),
		mux:    http.NewServeMux(),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/order", http.StatusFound)
	})
	s.mux.HandleFunc("GET /order", s.orderForm)
	s.mux.HandleFunc("POST /order", s.placeOrder)
	s.mux.HandleFunc("GET /balances", s.balances)
	s.mux.HandleFunc("GET /orders", s.openOrders)
	s.mux.HandleFunc("GET /cancel", s.cancelForm)
	s.mux.HandleFunc("POST /cancel", s.cancelOrder)
	s.mux.HandleFunc("GET /prices", s.prices)
	s.mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("ok\n"))
	})
	if s.metrics != nil {
		s.mux.Handle("GET /metrics", s.metrics.Handler())
	}
	return s
}

func (s *Server) Handler() http.Handler {
	return s.mux
}

// ListenAndServe 阻塞直到 ctx 结束, 然后优雅关闭
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.mux,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("web server listening", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

type priceRow struct {
	Symbol string
	Price  decimal.Decimal
}

type formValues struct {
	Side      string
	Type      string
	Quantity  string
	Price     string
	StopPrice string
	OrderId   string
}

type page struct {
	Title   string
	Active  string
	Testnet bool
	Error   string
	Success string
	Result  string

	Symbols    []string
	Symbol     string
	Price      string
	Prices     []priceRow
	Balances   []exchange.Balance
	Orders     []exchange.Order
	Fetched    bool
	Sides      []exchange.Side
	OrderTypes []exchange.OrderType
	Form       formValues
}

func (s *Server) newPage(title, active string) *page {
	return &page{Title: title, Active: active, Testnet: s.testnet}
}

// symbolPrices 每次页面加载取一次快照
func (s *Server) symbolPrices(ctx context.Context, p *page) map[string]decimal.Decimal {
	prices, err := s.svc.SymbolPrices(ctx)
	if err != nil {
		p.Error = err.Error()
		return nil
	}
	p.Symbols = exchange.SortedSymbols(prices)
	return prices
}

func (s *Server) orderPage(r *http.Request) *page {
	p := s.newPage("Place New Order", "order")
	p.Sides = []exchange.Side{exchange.SideBuy, exchange.SideSell}
	p.OrderTypes = exchange.OrderTypes
	p.Form = formValues{Side: exchange.SideBuy.ToString(), Type: exchange.OrderTypeMarket.ToString()}

	prices := s.symbolPrices(r.Context(), p)
	if len(p.Symbols) == 0 {
		return p
	}
	p.Symbol = exchange.NormalizeSymbol(r.FormValue("symbol"))
	if !lo.Contains(p.Symbols, p.Symbol) {
		p.Symbol = p.Symbols[0]
	}
	p.Price = prices[p.Symbol].String()
	return p
}

func (s *Server) orderForm(w http.ResponseWriter, r *http.Request) {
	s.render(w, http.StatusOK, "order", s.orderPage(r))
}

func (s *Server) placeOrder(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	p := s.orderPage(r)
	p.Form = formValues{
		Side:      strings.ToUpper(r.PostFormValue("side")),
		Type:      strings.ToUpper(r.PostFormValue("type")),
		Quantity:  r.PostFormValue("quantity"),
		Price:     r.PostFormValue("price"),
		StopPrice: r.PostFormValue("stop_price"),
	}
	p.Error = ""

	req, err := parseOrderForm(r)
	if err != nil {
		p.Error = err.Error()
		s.render(w, statusOf(err), "order", p)
		return
	}

	order, err := s.svc.PlaceOrder(r.Context(), req)
	if err != nil {
		p.Error = "Failed to place order: " + err.Error()
		s.render(w, statusOf(err), "order", p)
		return
	}
	p.Success = "Order Placed!"
	p.Result = toJSON(order)
	s.render(w, http.StatusOK, "order", p)
}

func parseOrderForm(r *http.Request) (exchange.CreateOrderReq, error) {
	var req exchange.CreateOrderReq
	req.Symbol = exchange.NormalizeSymbol(r.PostFormValue("symbol"))
	if req.Symbol == "" {
		return req, fmt.Errorf("%w: symbol is required", exchange.ErrInvalidInput)
	}
	var err error
	if req.Side, err = exchange.ParseSide(r.PostFormValue("side")); err != nil {
		return req, err
	}
	if req.Type, err = exchange.ParseOrderType(r.PostFormValue("type")); err != nil {
		return req, err
	}
	if req.Quantity, err = decimalx.ParsePositive(r.PostFormValue("quantity")); err != nil {
		return req, fmt.Errorf("%w: please enter a valid quantity: %v", exchange.ErrInvalidInput, err)
	}
	switch req.Type {
	case exchange.OrderTypeLimit:
		if req.Price, err = decimalx.ParsePositive(r.PostFormValue("price")); err != nil {
			return req, fmt.Errorf("%w: please enter a valid limit price: %v", exchange.ErrInvalidInput, err)
		}
	case exchange.OrderTypeStop:
		if req.StopPrice, err = decimalx.ParsePositive(r.PostFormValue("stop_price")); err != nil {
			return req, fmt.Errorf("%w: please enter a valid stop price: %v", exchange.ErrInvalidInput, err)
		}
	}
	return req, nil
}

func (s *Server) balances(w http.ResponseWriter, r *http.Request) {
	p := s.newPage("Your Balances", "balances")
	balances, err := s.svc.Balances(r.Context())
	if err != nil {
		p.Error = "Failed to fetch balances: " + err.Error()
		s.render(w, statusOf(err), "balances", p)
		return
	}
	p.Balances = balances
	s.render(w, http.StatusOK, "balances", p)
}

func (s *Server) openOrders(w http.ResponseWriter, r *http.Request) {
	p := s.newPage("Your Open Orders", "orders")
	s.symbolPrices(r.Context(), p)
	p.Error = ""

	p.Symbol = exchange.NormalizeSymbol(r.FormValue("symbol"))
	if p.Symbol == "ALL" {
		p.Symbol = ""
	}
	if r.FormValue("fetch") == "" {
		s.render(w, http.StatusOK, "orders", p)
		return
	}

	p.Fetched = true
	orders, err := s.svc.OpenOrders(r.Context(), p.Symbol)
	if err != nil {
		p.Error = "Failed to fetch open orders: " + err.Error()
		s.render(w, statusOf(err), "orders", p)
		return
	}
	p.Orders = orders
	s.render(w, http.StatusOK, "orders", p)
}

func (s *Server) cancelPage(r *http.Request) *page {
	p := s.newPage("Cancel an Order", "cancel")
	s.symbolPrices(r.Context(), p)
	return p
}

func (s *Server) cancelForm(w http.ResponseWriter, r *http.Request) {
	s.render(w, http.StatusOK, "cancel", s.cancelPage(r))
}

func (s *Server) cancelOrder(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	p := s.cancelPage(r)
	p.Error = ""
	p.Symbol = exchange.NormalizeSymbol(r.PostFormValue("symbol"))
	p.Form.OrderId = r.PostFormValue("order_id")

	if p.Symbol == "" {
		p.Error = "Please select a symbol."
		s.render(w, http.StatusBadRequest, "cancel", p)
		return
	}
	id, err := exchange.ParseOrderId(p.Form.OrderId)
	if err != nil {
		p.Error = "Please enter a valid numeric order ID."
		s.render(w, http.StatusBadRequest, "cancel", p)
		return
	}

	order, err := s.svc.CancelOrder(r.Context(), p.Symbol, id)
	if err != nil {
		p.Error = "Failed to cancel order: " + err.Error()
		s.render(w, statusOf(err), "cancel", p)
		return
	}
	p.Success = "Order Cancelled!"
	p.Result = toJSON(order)
	s.render(w, http.StatusOK, "cancel", p)
}

func (s *Server) prices(w http.ResponseWriter, r *http.Request) {
	p := s.newPage("Live Prices", "prices")
	prices := s.symbolPrices(r.Context(), p)
	p.Prices = lo.Map(p.Symbols, func(symbol string, _ int) priceRow {
		return priceRow{Symbol: symbol, Price: prices[symbol]}
	})
	status := http.StatusOK
	if p.Error != "" {
		status = http.StatusBadGateway
	}
	s.render(w, status, "prices", p)
}

func (s *Server) render(w http.ResponseWriter, status int, name string, p *page) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := templates.ExecuteTemplate(w, name, p); err != nil {
		s.logger.Error("render page failed", zap.String("page", name), zap.Error(err))
	}
}

// statusOf 按错误分类映射 http 状态码
func statusOf(err error) int {
	switch exchange.KindOf(err) {
	case exchange.ErrInvalidInput:
		return http.StatusBadRequest
	case exchange.ErrNotFound:
		return http.StatusNotFound
	case exchange.ErrRejected:
		return http.StatusUnprocessableEntity
	case exchange.ErrConfig:
		return http.StatusInternalServerError
	default:
		return http.StatusBadGateway
	}
}

func toJSON(v any) string {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Sprintf("%+v", v)
	}
	return string(data)
}
