package config

import (
	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// MustLoad loads the configuration from environment variables and .env file.
func MustLoad[T any](cfg T) {
	_ = godotenv.Load()

	env.Must(cfg, env.Parse(cfg))
}

// Load loads the configuration from environment variables and .env file.
func Load[T any](cfg T) error {
	_ = godotenv.Load() // a missing .env file is fine; env vars may be set directly

	return env.Parse(cfg)
}

// Config holds the configuration for the exchange server.
type Config struct {
	Pair            string          `env:"PAIR,required"` // Trading pair, e.g., ACME/ETH
	OrderFeedConfig OrderFeedConfig `envPrefix:"ORDER_FEED_"`
	TradeFeedConfig TradeFeedConfig `envPrefix:"TRADE_FEED_"`
}

// OrderFeedConfig holds the configuration for the inbound offer-request topic.
type OrderFeedConfig struct {
	Topic   string   `env:"TOPIC,required"`
	GroupID string   `env:"GROUP_ID" envDefault:"default_group"`
	Brokers []string `env:"BROKER,required"`
}

// TradeFeedConfig holds the configuration for the outbound trade-event topic.
type TradeFeedConfig struct {
	Topic   string   `env:"TOPIC,required"`
	Brokers []string `env:"BROKER,required"`
}
