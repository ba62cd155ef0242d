package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	defaultServerAddress = "localhost:8080"
	defaultEnv           = "prod"
	defaultTimeout       = 30 * time.Second
)

type Config struct {
	Env           string        `mapstructure:"app_env"`
	ServerAddress string        `mapstructure:"server_address"`
	EnableTLS     bool          `mapstructure:"enable_tls"`
	Timeout       time.Duration `mapstructure:"timeout"`
}

// Load merges, in rising priority: defaults, the optional config file,
// .env and the environment.
func Load(configFile string) (*Config, error) {
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(".env"); err != nil {
			return nil, fmt.Errorf("load .env: %w", err)
		}
	}

	v := viper.New()
	v.SetDefault("app_env", defaultEnv)
	v.SetDefault("server_address", defaultServerAddress)
	v.SetDefault("enable_tls", false)
	v.SetDefault("timeout", defaultTimeout)
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", configFile, err)
		}
	}

	cfg := &Config{
		Env:           v.GetString("app_env"),
		ServerAddress: v.GetString("server_address"),
		EnableTLS:     v.GetBool("enable_tls"),
		Timeout:       v.GetDuration("timeout"),
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if strings.TrimSpace(c.ServerAddress) == "" {
		return errors.New("server_address must not be empty")
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %s", c.Timeout)
	}
	return nil
}

// BaseURL returns the server root. An address that already has a scheme
// is used as is.
func (c *Config) BaseURL() string {
	addr := strings.TrimRight(c.ServerAddress, "/")
	if strings.HasPrefix(addr, "http://") || strings.HasPrefix(addr, "https://") {
		return addr
	}
	if c.EnableTLS {
		return "https://" + addr
	}
	return "http://" + addr
}
