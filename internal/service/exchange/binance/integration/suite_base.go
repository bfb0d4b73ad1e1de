package integration

import (
	"context"
	"os"
	"time"

	"github.com/KNICEX/spot-bot/internal/config"
	"github.com/KNICEX/spot-bot/internal/metrics"
	"github.com/KNICEX/spot-bot/internal/service/exchange"
	"github.com/KNICEX/spot-bot/internal/service/exchange/binance"
	bnc "github.com/adshao/go-binance/v2"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
)

// EnableEnv 设置为 1 才会对 testnet 发起真实请求
const EnableEnv = "SPOTBOT_INTEGRATION"

// BaseSuite 是所有集成测试的基础套件, 只连接 testnet
type BaseSuite struct {
	suite.Suite
	svc     *binance.Service
	metrics *metrics.Metrics

	// 测试配置
	testSymbol string
	ctx        context.Context
}

// SetupSuite 在测试套件开始前运行一次
func (s *BaseSuite) SetupSuite() {
	if os.Getenv(EnableEnv) != "1" {
		s.T().Skipf("%s not set, skipping testnet integration tests", EnableEnv)
	}
	s.T().Log("=== 初始化测试套件 ===")

	cfg, err := config.Load(viper.New(), "../../../../../config/config.yaml", "../../../../../.env")
	s.Require().NoError(err, "读取配置失败")
	s.Require().True(cfg.Binance.Testnet, "集成测试只允许连接 testnet")

	cli := bnc.NewClient(cfg.Binance.ApiKey, cfg.Binance.ApiSecret)
	cli.BaseURL = cfg.Binance.Endpoint()

	s.ctx = context.Background()
	s.metrics = metrics.New()
	s.svc, err = binance.NewService(s.ctx, cli,
		binance.WithLogger(zaptest.NewLogger(s.T(), zaptest.Level(zap.InfoLevel))),
		binance.WithMetrics(s.metrics),
		binance.WithRecvWindow(cfg.Binance.RecvWindow),
	)
	s.Require().NoError(err, "初始化适配器失败")

	s.testSymbol = "BTCUSDT"
	s.T().Log("✓ 测试套件初始化完成")
}

// SetupTest 在每个测试用例开始前运行
func (s *BaseSuite) SetupTest() {
	s.T().Logf(">>> 开始测试: %s", s.T().Name())
}

// TearDownTest 在每个测试用例结束后运行
func (s *BaseSuite) TearDownTest() {
	s.T().Logf("<<< 结束测试: %s\n", s.T().Name())
}

// CleanupOrders 撤销测试交易对上所有未成交订单
func (s *BaseSuite) CleanupOrders(symbol string) {
	orders, err := s.svc.OpenOrders(s.ctx, symbol)
	if err != nil {
		s.T().Logf("    获取未成交订单失败: %v", err)
		return
	}
	for _, o := range orders {
		if _, err := s.svc.CancelOrder(s.ctx, symbol, o.Id); err != nil {
			s.T().Logf("    撤销订单 %d 失败: %v", o.Id, err)
		}
	}
	if len(orders) > 0 {
		s.WaitForOrderSettlement()
	}
}

// WaitForOrderSettlement testnet 订单状态有延迟
func (s *BaseSuite) WaitForOrderSettlement() {
	time.Sleep(time.Second)
}

// AssertOrderInList 订单应出现在未成交列表中
func (s *BaseSuite) AssertOrderInList(id exchange.OrderId, symbol string) {
	orders, err := s.svc.OpenOrders(s.ctx, symbol)
	s.Require().NoError(err)
	for _, o := range orders {
		if o.Id == id {
			return
		}
	}
	s.Failf("order not found", "order %d is not in the open order list of %s", id, symbol)
}
