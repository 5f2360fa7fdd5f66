package config

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"
)

// Cfg 全局可访问的配置实例
var Cfg *Config

// LoadConfig 从文件加载配置并填充到 Cfg
func LoadConfig() error {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./configs")

	if err := viper.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if errors.As(err, &configFileNotFoundError) {
			return fmt.Errorf("config file not found: %w", err)
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyDefaults(&cfg)
	Cfg = &cfg

	return nil
}

// applyDefaults 未配置项回落到默认值
func applyDefaults(cfg *Config) {
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.JWT.ExpireHours == 0 {
		cfg.JWT.ExpireHours = 24 * 7
	}
	if cfg.Trending.LikeWeight == 0 {
		cfg.Trending.LikeWeight = 3
	}
	if cfg.Trending.CommentWeight == 0 {
		cfg.Trending.CommentWeight = 5
	}
	if cfg.Trending.ViewWeight == 0 {
		cfg.Trending.ViewWeight = 0.1
	}
	if cfg.Trending.DecayDays == 0 {
		cfg.Trending.DecayDays = 180
	}
	if cfg.Trending.MinAgeFactor == 0 {
		cfg.Trending.MinAgeFactor = 0.1
	}
	if cfg.MealVote.DurationHours == 0 {
		cfg.MealVote.DurationHours = 24
	}
}
