package binance

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"
)

// fakeExchange 模拟币安现货 REST 接口, 记录收到的请求
type fakeExchange struct {
	t   *testing.T
	srv *httptest.Server

	mu       sync.Mutex
	requests []recordedRequest
	handlers map[string]http.HandlerFunc
}

type recordedRequest struct {
	Method string
	Path   string
	Params url.Values
}

func newFakeExchange(t *testing.T) *fakeExchange {
	f := &fakeExchange{
		t:        t,
		handlers: make(map[string]http.HandlerFunc),
	}
	f.srv = httptest.NewServer(http.HandlerFunc(f.serve))
	t.Cleanup(f.srv.Close)
	return f
}

func (f *fakeExchange) URL() string {
	return f.srv.URL
}

// handle registers a handler for "METHOD /path"
func (f *fakeExchange) handle(route string, h http.HandlerFunc) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.handlers[route] = h
}

// reply registers a fixed JSON answer
func (f *fakeExchange) reply(route string, status int, body any) {
	f.handle(route, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, status, body)
	})
}

func (f *fakeExchange) serve(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()
	body, _ := io.ReadAll(r.Body)
	r.Body = io.NopCloser(bytes.NewReader(body))
	if form, err := url.ParseQuery(string(body)); err == nil {
		for k, vs := range form {
			for _, v := range vs {
				params.Add(k, v)
			}
		}
	}

	route := r.Method + " " + r.URL.Path
	f.mu.Lock()
	f.requests = append(f.requests, recordedRequest{Method: r.Method, Path: r.URL.Path, Params: params})
	h, ok := f.handlers[route]
	f.mu.Unlock()

	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]any{"code": -1, "msg": "unexpected route " + route})
		return
	}
	h(w, r)
}

// calls requests received for "METHOD /path"
func (f *fakeExchange) calls(route string) []recordedRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	var res []recordedRequest
	for _, req := range f.requests {
		if req.Method+" "+req.Path == route {
			res = append(res, req)
		}
	}
	return res
}

func (f *fakeExchange) totalCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.requests)
}

func (f *fakeExchange) reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = nil
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

const (
	routeTime         = "GET /api/v3/time"
	routeExchangeInfo = "GET /api/v3/exchangeInfo"
	routeTicker       = "GET /api/v3/ticker/price"
	routeAccount      = "GET /api/v3/account"
	routeCreateOrder  = "POST /api/v3/order"
	routeCancelOrder  = "DELETE /api/v3/order"
	routeOpenOrders   = "GET /api/v3/openOrders"
)

// tickerHandler answers single-symbol and full ticker requests from one price table
func tickerHandler(prices map[string]string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if symbol := r.URL.Query().Get("symbol"); symbol != "" {
			price, ok := prices[symbol]
			if !ok {
				writeJSON(w, http.StatusBadRequest, map[string]any{"code": -1121, "msg": "Invalid symbol."})
				return
			}
			writeJSON(w, http.StatusOK, map[string]string{"symbol": symbol, "price": price})
			return
		}
		list := make([]map[string]string, 0, len(prices))
		for symbol, price := range prices {
			list = append(list, map[string]string{"symbol": symbol, "price": price})
		}
		writeJSON(w, http.StatusOK, list)
	}
}

// echoOrderHandler answers order creation with the submitted parameters
func echoOrderHandler(orderId int64) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_ = r.ParseForm()
		writeJSON(w, http.StatusOK, map[string]any{
			"symbol":              r.Form.Get("symbol"),
			"orderId":             orderId,
			"clientOrderId":       r.Form.Get("newClientOrderId"),
			"transactTime":        1700000000000,
			"price":               r.Form.Get("price"),
			"origQty":             r.Form.Get("quantity"),
			"executedQty":         "0",
			"cummulativeQuoteQty": "0",
			"status":              "NEW",
			"timeInForce":         r.Form.Get("timeInForce"),
			"type":                r.Form.Get("type"),
			"side":                r.Form.Get("side"),
		})
	}
}
