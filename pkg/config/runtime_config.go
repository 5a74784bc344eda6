package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// RuntimeConfig 启动参数
//
// 先从环境变量读取，命令行参数再覆盖（见 main.go）
type RuntimeConfig struct {
	// ConfigPath 竞技场配置文件路径
	ConfigPath string `env:"ARENA_CONFIG" envDefault:"data/arena.yaml"`

	// Seed 随机种子，0 表示使用当前时间
	Seed int64 `env:"ARENA_SEED" envDefault:"0"`

	// Verbose 启用详细日志输出
	Verbose bool `env:"ARENA_VERBOSE" envDefault:"false"`

	// AppName gdata 存储使用的应用名
	AppName string `env:"ARENA_APP_NAME" envDefault:"arena_blaster"`
}

// LoadRuntimeConfig 从环境变量加载启动参数
func LoadRuntimeConfig() (*RuntimeConfig, error) {
	var cfg RuntimeConfig
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if cfg.AppName == "" {
		return nil, fmt.Errorf("ARENA_APP_NAME must not be empty")
	}
	return &cfg, nil
}
