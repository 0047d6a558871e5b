package config

import (
	"time"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Prefix of every environment variable read by Load
const Prefix = "CONVERTER"

// Config of the converter server
type Config struct {
	// Base currency all rates are fetched against
	Base string `envconfig:"BASE" default:"usd"`

	ApiUrl      string        `envconfig:"API_URL" default:"https://cdn.jsdelivr.net/npm/@fawazahmed0/currency-api@latest/v1"`
	FallbackUrl string        `envconfig:"FALLBACK_URL" default:"https://latest.currency-api.pages.dev/v1"`
	HTTPTimeout time.Duration `envconfig:"HTTP_TIMEOUT" default:"5s"`

	ListenAddr    string `envconfig:"LISTEN_ADDR" default:":8080"`
	DefaultTarget string `envconfig:"DEFAULT_TARGET" default:"inr"`

	// LogLevel one of debug, info, warn, error
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
}

// Load reads an optional .env file and then the CONVERTER_* environment
func Load(logger log.Logger, envFilePath ...string) (*Config, error) {
	var err error
	if len(envFilePath) > 0 && envFilePath[0] != "" {
		err = godotenv.Load(envFilePath[0])
	} else {
		err = godotenv.Load()
	}
	if err != nil {
		level.Debug(logger).Log("msg", "no .env file loaded, using process environment", "err", err)
	}

	var cfg Config
	if err := envconfig.Process(Prefix, &cfg); err != nil {
		return nil, err
	}

	level.Info(logger).Log("msg", "config loaded",
		"base", cfg.Base,
		"api_url", cfg.ApiUrl,
		"fallback_url", cfg.FallbackUrl,
		"http_timeout", cfg.HTTPTimeout,
		"listen_addr", cfg.ListenAddr,
	)
	return &cfg, nil
}

// LevelOption filter for the configured log level, info when unrecognised
func (c *Config) LevelOption() level.Option {
	switch c.LogLevel {
	case "debug":
		return level.AllowDebug()
	case "warn":
		return level.AllowWarn()
	case "error":
		return level.AllowError()
	default:
		return level.AllowInfo()
	}
}
