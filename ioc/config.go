package ioc

import (
	"fmt"

	"github.com/KNICEX/spot-bot/internal/config"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// InitConfig --config=./config/xxx.yaml --env=.env
func InitConfig() config.Config {
	file := pflag.String("config", "./config/config.yaml", "specify config file")
	dotenv := pflag.String("env", ".env", "specify env file")
	pflag.Parse()

	cfg, err := config.Load(viper.GetViper(), *file, *dotenv)
	if err != nil {
		panic(fmt.Errorf("fatal error config: %w", err))
	}
	return cfg
}
