package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/KNICEX/spot-bot/internal/service/exchange"
	"github.com/spf13/viper"
)

const (
	MainnetBaseURL = "https://api.binance.com"
	TestnetBaseURL = "https://testnet.binance.vision"

	// 币安允许的最大 recvWindow
	maxRecvWindow int64 = 60000
)

type Config struct {
	Binance BinanceConfig `mapstructure:"binance"`
	Log     LogConfig     `mapstructure:"log"`
	Web     WebConfig     `mapstructure:"web"`
}

type BinanceConfig struct {
	ApiKey     string `mapstructure:"api_key"`
	ApiSecret  string `mapstructure:"api_secret"`
	Testnet    bool   `mapstructure:"testnet"`
	BaseURL    string `mapstructure:"base_url"` // 覆盖 testnet/mainnet 地址
	RecvWindow int64  `mapstructure:"recv_window"`
}

// Endpoint REST base url selected by BaseURL, then Testnet
func (c BinanceConfig) Endpoint() string {
	if c.BaseURL != "" {
		return strings.TrimRight(c.BaseURL, "/")
	}
	if c.Testnet {
		return TestnetBaseURL
	}
	return MainnetBaseURL
}

// String 不输出密钥
func (c BinanceConfig) String() string {
	return fmt.Sprintf("binance{endpoint=%s, testnet=%t, api_key=%s, recv_window=%d}",
		c.Endpoint(), c.Testnet, mask(c.ApiKey), c.RecvWindow)
}

type LogConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

type WebConfig struct {
	Addr string `mapstructure:"addr"`
}

func SetDefaults(v *viper.Viper) {
	v.SetDefault("binance.testnet", true)
	v.SetDefault("binance.recv_window", 6000)
	v.SetDefault("log.file", "bot.log")
	v.SetDefault("log.level", "info")
	v.SetDefault("web.addr", ":8501")
}

// BindEnv API_KEY / API_SECRET 与原 .env 约定一致, BINANCE_ 前缀优先
func BindEnv(v *viper.Viper) {
	_ = v.BindEnv("binance.api_key", "BINANCE_API_KEY", "API_KEY")
	_ = v.BindEnv("binance.api_secret", "BINANCE_API_SECRET", "API_SECRET")
	_ = v.BindEnv("binance.testnet", "BINANCE_TESTNET")
	_ = v.BindEnv("binance.base_url", "BINANCE_BASE_URL")
	_ = v.BindEnv("log.file", "LOG_FILE")
	_ = v.BindEnv("web.addr", "WEB_ADDR")
}

// dotenvKeys .env 中的键 (viper 读入后为小写) -> 配置键
// 按顺序写入, 同一配置键后写的覆盖先写的, 所以 BINANCE_ 前缀放在后面
var dotenvKeys = []struct {
	envKey string
	key    string
}{
	{envKey: "api_key", key: "binance.api_key"},
	{envKey: "binance_api_key", key: "binance.api_key"},
	{envKey: "api_secret", key: "binance.api_secret"},
	{envKey: "binance_api_secret", key: "binance.api_secret"},
	{envKey: "binance_testnet", key: "binance.testnet"},
	{envKey: "binance_base_url", key: "binance.base_url"},
}

// Load 优先级: 环境变量 > 配置文件 > .env > 默认值
// configFile 或 dotenvFile 不存在时跳过
func Load(v *viper.Viper, configFile, dotenvFile string) (Config, error) {
	SetDefaults(v)
	if err := loadDotenv(v, dotenvFile); err != nil {
		return Config{}, err
	}
	BindEnv(v)

	if configFile != "" {
		if _, err := os.Stat(configFile); err == nil {
			v.SetConfigFile(configFile)
			if err := v.ReadInConfig(); err != nil {
				return Config{}, fmt.Errorf("read config file %s: %w", configFile, err)
			}
		} else if !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("stat config file %s: %w", configFile, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func loadDotenv(v *viper.Viper, file string) error {
	if file == "" {
		return nil
	}
	if _, err := os.Stat(file); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("stat env file %s: %w", file, err)
	}
	dot := viper.New()
	dot.SetConfigFile(file)
	dot.SetConfigType("env")
	if err := dot.ReadInConfig(); err != nil {
		return fmt.Errorf("read env file %s: %w", file, err)
	}
	for _, k := range dotenvKeys {
		if dot.IsSet(k.envKey) {
			v.SetDefault(k.key, dot.Get(k.envKey))
		}
	}
	return nil
}

func (c *Config) normalize() {
	c.Binance.ApiKey = strings.TrimSpace(c.Binance.ApiKey)
	c.Binance.ApiSecret = strings.TrimSpace(c.Binance.ApiSecret)
	c.Binance.BaseURL = strings.TrimSpace(c.Binance.BaseURL)
	c.Log.Level = strings.ToLower(strings.TrimSpace(c.Log.Level))
}

// Validate 密钥不允许缺省
func (c Config) Validate() error {
	var errs []error
	if c.Binance.ApiKey == "" {
		errs = append(errs, errors.New("binance.api_key (API_KEY) is required"))
	}
	if c.Binance.ApiSecret == "" {
		errs = append(errs, errors.New("binance.api_secret (API_SECRET) is required"))
	}
	if c.Binance.RecvWindow <= 0 || c.Binance.RecvWindow > maxRecvWindow {
		errs = append(errs, fmt.Errorf("binance.recv_window must be in (0, %d], got %d", maxRecvWindow, c.Binance.RecvWindow))
	}
	if c.Log.File == "" {
		errs = append(errs, errors.New("log.file is required"))
	}
	if len(errs) > 0 {
		return exchange.NewError("load config", exchange.ErrConfig, errors.Join(errs...))
	}
	return nil
}

func mask(secret string) string {
	if len(secret) <= 4 {
		return strings.Repeat("*", len(secret))
	}
	return secret[:4] + strings.Repeat("*", len(secret)-4)
}
