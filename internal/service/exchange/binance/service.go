package binance

import (
	"context"
	"errors"
	"time"

	"github.com/KNICEX/spot-bot/internal/metrics"
	"github.com/KNICEX/spot-bot/internal/service/exchange"
	"github.com/adshao/go-binance/v2"
	"go.uber.org/zap"
)

var _ exchange.Service = (*Service)(nil)

// DefaultRecvWindow 签名请求允许的时间误差 (毫秒)
const DefaultRecvWindow int64 = 6000

// Service 现货交易所适配器, 所有对交易所的调用都经过这里
type Service struct {
	cli        *binance.Client
	logger     *zap.Logger
	metrics    *metrics.Metrics
	recvWindow int64
	now        func() time.Time

	symbols *symbolCache
}

type Option func(svc *Service)

func WithLogger(logger *zap.Logger) Option {
	return func(svc *Service) {
		svc.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(svc *Service) {
		svc.metrics = m
	}
}

func WithRecvWindow(ms int64) Option {
	return func(svc *Service) {
		if ms > 0 {
			svc.recvWindow = ms
		}
	}
}

// WithClock local clock used for the startup time sync
func WithClock(now func() time.Time) Option {
	return func(svc *Service) {
		svc.now = now
	}
}

// NewService 创建适配器并与服务器对时一次
// 凭证缺失返回 exchange.ErrConfig; 对时失败只记录警告, 使用零偏移继续
func NewService(ctx context.Context, cli *binance.Client, opts ...Option) (*Service, error) {
	if cli == nil || cli.APIKey == "" || cli.SecretKey == "" {
		return nil, exchange.NewError("new service", exchange.ErrConfig, errors.New("api key and secret are required"))
	}
	svc := &Service{
		cli:        cli,
		logger:     zap.NewNop(),
		recvWindow: DefaultRecvWindow,
		now:        time.Now,
		symbols:    &symbolCache{},
	}
	for _, opt := range opts {
		opt(svc)
	}

	svc.syncTime(ctx)
	svc.logger.Info("bot initialized", zap.String("base_url", cli.BaseURL))
	return svc, nil
}

// syncTime offset = serverTime - localTime, applied to every signed request
func (svc *Service) syncTime(ctx context.Context) {
	serverTime, err := svc.cli.NewServerTimeService().Do(ctx)
	if err != nil {
		svc.cli.TimeOffset = 0
		svc.logger.Warn("failed to sync timestamp with server, using zero offset", zap.Error(err))
		svc.metrics.APIError("server_time", exchange.KindName(classify("server time", err)))
		return
	}
	offset := serverTime - svc.now().UnixMilli()
	// go-binance subtracts TimeOffset from the local timestamp
	svc.cli.TimeOffset = -offset
	svc.metrics.SetTimeOffset(offset)
	svc.logger.Info("timestamp synced with server", zap.Int64("offset_ms", offset))
}

// TimeOffset server time minus local time, in milliseconds
func (svc *Service) TimeOffset() int64 {
	return -svc.cli.TimeOffset
}

func (svc *Service) recvWindowOpt() binance.RequestOption {
	return binance.WithRecvWindow(svc.recvWindow)
}

// fail classifies, logs and counts an exchange failure
func (svc *Service) fail(op string, err error, fields ...zap.Field) error {
	err = classify(op, err)
	svc.logger.Error(op+" failed", append(fields, zap.Error(err))...)
	svc.metrics.APIError(opLabel(op), exchange.KindName(err))
	return err
}
