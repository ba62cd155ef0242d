package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"golang.org/x/crypto/bcrypt"
)

const (
	envPath  = ".env"
	EnvLocal = "local"
	EnvDev   = "dev"
	EnvProd  = "prod"

	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type Config struct {
	Env    string
	DB     DB
	Server Server
	Logger Logger
	Auth   Auth
}

type DB struct {
	Driver      string `env:"DATABASE_DRIVER" envDefault:"sqlite"`
	DatabaseURI string `env:"DATABASE_URI" envDefault:"datasets.db"`
	Migrations  string `env:"MIGRATIONS_PATH"`
}

type Server struct {
	RunAddress      string        `env:"RUN_ADDRESS" envDefault:":8080"`
	AllowedOrigin   string        `env:"CORS_ALLOWED_ORIGIN" envDefault:"*"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

type Logger struct {
	LogLevel string `env:"LOG_LEVEL"`
}

type Auth struct {
	BcryptCost int `env:"BCRYPT_COST"`
}

func setDefaults() {
	viper.SetDefault("app_env", EnvLocal)
	viper.SetDefault("run_address", ":8080")
	viper.SetDefault("database_driver", DriverSQLite)
	viper.SetDefault("database_uri", "datasets.db")
	viper.SetDefault("cors_allowed_origin", "*")
	viper.SetDefault("shutdown_timeout", 10*time.Second)
	viper.SetDefault("bcrypt_cost", bcrypt.DefaultCost)
}

// Load reads an optional .env file, then the environment.
func Load() (*Config, error) {
	if _, err := os.Stat(envPath); err == nil {
		if err := godotenv.Load(envPath); err != nil {
			return nil, fmt.Errorf("load %s: %w", envPath, err)
		}
	} else {
		log.Println("No .env file found, relying on environment variables")
	}

	viper.AutomaticEnv()
	setDefaults()

	cfg := &Config{
		Env: viper.GetString("app_env"),
		DB: DB{
			Driver:      viper.GetString("database_driver"),
			DatabaseURI: viper.GetString("database_uri"),
			Migrations:  viper.GetString("migrations_path"),
		},
		Server: Server{
			RunAddress:      viper.GetString("run_address"),
			AllowedOrigin:   viper.GetString("cors_allowed_origin"),
			ShutdownTimeout: viper.GetDuration("shutdown_timeout"),
		},
		Logger: Logger{LogLevel: viper.GetString("log_level")},
		Auth:   Auth{BcryptCost: viper.GetInt("bcrypt_cost")},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// MustLoad is Load for main: it panics on invalid configuration.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(fmt.Sprintf("config: %v", err))
	}
	return cfg
}

func (c *Config) validate() error {
	switch c.Env {
	case EnvLocal, EnvDev, EnvProd:
	default:
		return fmt.Errorf("unknown APP_ENV %q", c.Env)
	}
	switch c.DB.Driver {
	case DriverPostgres, DriverSQLite:
	default:
		return fmt.Errorf("unknown DATABASE_DRIVER %q", c.DB.Driver)
	}
	if c.DB.DatabaseURI == "" {
		return fmt.Errorf("DATABASE_URI must not be empty")
	}
	if c.Server.RunAddress == "" {
		return fmt.Errorf("RUN_ADDRESS must not be empty")
	}
	if c.Auth.BcryptCost < bcrypt.MinCost || c.Auth.BcryptCost > bcrypt.MaxCost {
		return fmt.Errorf("BCRYPT_COST must be between %d and %d", bcrypt.MinCost, bcrypt.MaxCost)
	}
	return nil
}

func (c *Config) IsLocal() bool {
	return c.Env == EnvLocal
}
