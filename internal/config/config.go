package config

import (
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	AppPort          int    `mapstructure:"APP_PORT"`
	DatabasePath     string `mapstructure:"DATABASE_PATH"`
	GenerationAPIURL string `mapstructure:"GENERATION_API_URL"`
	LogLevel         string `mapstructure:"LOG_LEVEL"`

	// Reconnection tuning for the upstream generation stream.
	StreamMaxRetries     int `mapstructure:"STREAM_MAX_RETRIES"`
	StreamInitialRetryMs int `mapstructure:"STREAM_INITIAL_RETRY_MS"`
	StreamMaxRetryMs     int `mapstructure:"STREAM_MAX_RETRY_MS"`
	StreamPollIntervalMs int `mapstructure:"STREAM_POLL_INTERVAL_MS"`
}

func LoadConfig() (*Config, error) {
	viper.SetDefault("APP_PORT", 8000)
	viper.SetDefault("DATABASE_PATH", "/data/draftgen.db")
	viper.SetDefault("GENERATION_API_URL", "http://generation:9000")
	viper.SetDefault("LOG_LEVEL", "INFO")

	viper.SetDefault("STREAM_MAX_RETRIES", 5)
	viper.SetDefault("STREAM_INITIAL_RETRY_MS", 1000)
	viper.SetDefault("STREAM_MAX_RETRY_MS", 30000)
	viper.SetDefault("STREAM_POLL_INTERVAL_MS", 10000)

	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./backend")

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {

			return nil, err
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}
