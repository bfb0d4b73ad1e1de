package binance

import (
	"context"
	"net/http"
	"time"

	"github.com/KNICEX/spot-bot/internal/metrics"
	"github.com/adshao/go-binance/v2"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

// BaseSuite 每个用例都有独立的模拟交易所和适配器
type BaseSuite struct {
	suite.Suite

	exchange *fakeExchange
	client   *binance.Client
	svc      *Service
	metrics  *metrics.Metrics
	logs     *observer.ObservedLogs

	localTime  time.Time
	serverTime time.Time
	ctx        context.Context
}

func (s *BaseSuite) SetupTest() {
	s.ctx = context.Background()
	s.exchange = newFakeExchange(s.T())

	s.localTime = time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	s.serverTime = s.localTime.Add(1500 * time.Millisecond)
	s.exchange.reply(routeTime, http.StatusOK, map[string]int64{"serverTime": s.serverTime.UnixMilli()})

	s.client = s.newClient("test-key", "test-secret")
	s.metrics = metrics.New()
	s.svc = s.newService(s.client)
	s.exchange.reset()
}

func (s *BaseSuite) newClient(key, secret string) *binance.Client {
	cli := binance.NewClient(key, secret)
	cli.BaseURL = s.exchange.URL()
	return cli
}

func (s *BaseSuite) newService(cli *binance.Client) *Service {
	core, logs := observer.New(zap.DebugLevel)
	s.logs = logs
	svc, err := NewService(s.ctx, cli,
		WithLogger(zap.New(core)),
		WithMetrics(s.metrics),
		WithClock(func() time.Time { return s.localTime }),
	)
	s.Require().NoError(err)
	return svc
}

// lastParams parameters of the last request sent to route
func (s *BaseSuite) lastParams(route string) map[string]string {
	calls := s.exchange.calls(route)
	s.Require().NotEmpty(calls, "no request sent to %s", route)
	params := make(map[string]string)
	for k := range calls[len(calls)-1].Params {
		params[k] = calls[len(calls)-1].Params.Get(k)
	}
	return params
}

func (s *BaseSuite) warnings(snippet string) int {
	return s.logs.FilterLevelExact(zap.WarnLevel).FilterMessageSnippet(snippet).Len()
}
