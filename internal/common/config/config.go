package config

import (
	"time"

	"github.com/caarlos0/env/v10"
)

type Config struct {
	Debug bool `env:"DEBUG" envDefault:"false"`

	Server struct {
		Port   int    `env:"PORT" envDefault:"8080"`
		Origin string `env:"ORIGIN" envDefault:"http://localhost:3000"`
	}

	Redis struct {
		Host     string `env:"REDIS_HOST" envDefault:"localhost"`
		Port     int    `env:"REDIS_PORT" envDefault:"6379"`
		Password string `env:"REDIS_PASSWORD" envDefault:""`
		DB       int    `env:"REDIS_DB" envDefault:"0"`
	}

	Discord struct {
		BotToken string   `env:"BOT_TOKEN,required"`
		AdminIDs []string `env:"ADMIN_IDS" envSeparator:","`
	}

	Scheduler struct {
		// Interval between scans for overdue giveaways.
		PollInterval time.Duration `env:"SCHEDULER_POLL_INTERVAL" envDefault:"10s"`
	}

	Cache struct {
		GiveawayTTL time.Duration `env:"GIVEAWAY_CACHE_TTL" envDefault:"30s"`
	}
}

// Load parses the configuration from the environment. The caller is
// expected to have loaded any .env file first.
func Load() *Config {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		panic(err)
	}

	return cfg
}
