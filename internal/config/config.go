package config

import "github.com/caarlos0/env/v11"

type Config struct {
	Server    ServerConfig
	Services  ServicesConfig
	Client    ClientConfig
	RateLimit RateLimitConfig
	Pprof     PprofConfig
}

type ServerConfig struct {
	Host           string `env:"SERVER_HOST" envDefault:"0.0.0.0"`
	Port           int    `env:"PORT"`
	MaxConnections int    `env:"MAX_CONNECTIONS" envDefault:"0"`
}

type ServicesConfig struct {
	UsersURL    string `env:"USERS_SERVICE_URL" envDefault:"http://localhost:8000"`
	ProductsURL string `env:"PRODUCTS_SERVICE_URL" envDefault:"http://localhost:8001"`
}

type ClientConfig struct {
	TimeoutSeconds float64 `env:"CLIENT_TIMEOUT" envDefault:"5"`
}

type RateLimitConfig struct {
	Enabled       bool    `env:"RATE_LIMIT_ENABLED" envDefault:"false"`
	RPS           float64 `env:"RATE_LIMIT_RPS" envDefault:"100"`
	Burst         int     `env:"RATE_LIMIT_BURST" envDefault:"200"`
	ExpireMinutes int     `env:"RATE_LIMIT_EXPIRE_MINUTES" envDefault:"3"`
	BypassSecret  string  `env:"RATE_LIMIT_BYPASS_SECRET" envDefault:""`
}

type PprofConfig struct {
	Enabled bool   `env:"PPROF_ENABLED" envDefault:"false"`
	Secret  string `env:"PPROF_SECRET" envDefault:""`
}

// Load reads configuration from the environment. defaultPort is used when PORT
// is unset, so each service keeps its conventional port (8000/8001/8002).
func Load(defaultPort int) (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = defaultPort
	}
	return &cfg, nil
}
