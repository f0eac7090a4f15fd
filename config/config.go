package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Config holds all runtime settings for the API server. Values come from
// environment variables; AMQPURL is optional and an empty value switches the
// transfer-notice sender to log-only mode.
type Config struct {
	ServerPort          string `mapstructure:"SERVER_PORT"`
	DatabaseURL         string `mapstructure:"DATABASE_URL"`
	AMQPURL             string `mapstructure:"AMQP_URL"`
	TransferNoticeQueue string `mapstructure:"TRANSFER_NOTICE_QUEUE"`
	JWTSecret           string `mapstructure:"JWT_SECRET"`
	LogLevel            string `mapstructure:"LOG_LEVEL"`
}

// Load reads configuration from environment variables.
func Load() (Config, error) {
	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("TRANSFER_NOTICE_QUEUE", "caseflow.transfer_notices")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.AutomaticEnv()

	// Bind environment variables explicitly so they appear in Unmarshal.
	_ = viper.BindEnv("SERVER_PORT")
	_ = viper.BindEnv("DATABASE_URL")
	_ = viper.BindEnv("AMQP_URL")
	_ = viper.BindEnv("TRANSFER_NOTICE_QUEUE")
	_ = viper.BindEnv("JWT_SECRET")
	_ = viper.BindEnv("LOG_LEVEL")

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: unmarshal: %w", err)
	}
	if cfg.DatabaseURL == "" {
		return Config{}, fmt.Errorf("config: DATABASE_URL is required")
	}
	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("config: JWT_SECRET is required")
	}
	return cfg, nil
}
