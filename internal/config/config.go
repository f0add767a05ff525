package config

import (
	"net/http"
	"time"

	"github.com/spf13/viper"
)

type DBConfig struct {
	Username string
	Password string
	Host     string
	Port     string
	DBName   string
	SSLMode  string
	MaxConns int32
}

type ServerConfig struct {
	Port           string
	Handler        http.Handler
	MaxHeaderBytes int
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
}

// FeedConfig tunes batch sizes and cache lifetimes of the feed endpoints.
type FeedConfig struct {
	DefaultLimit int           `mapstructure:"default_limit"`
	CacheTTL     time.Duration `mapstructure:"cache_ttl"`
}

func SetDefaults() {
	viper.SetDefault("app.port", "8080")
	viper.SetDefault("client.origin", "http://localhost:3000")
	viper.SetDefault("feed.default_limit", 20)
	viper.SetDefault("feed.cache_ttl", "1h")
}

func LoadFeedConfig() (FeedConfig, error) {
	var cfg FeedConfig
	if err := viper.UnmarshalKey("feed", &cfg); err != nil {
		return FeedConfig{}, err
	}
	if cfg.DefaultLimit <= 0 {
		cfg.DefaultLimit = 20
	}
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = time.Hour
	}
	return cfg, nil
}
