package config

import (
	"errors"
	"fmt"
	"net/url"
	"slices"
	"strings"
	"time"

	"github.com/spf13/viper"
)

/* Config is read from .env (toml) in the working directory, overridden by the environment.
 * The file is optional so containers can be configured with environment variables only.
 */

type Config struct {
	Port     string `mapstructure:"PORT"`
	DBDriver string `mapstructure:"DB_DRIVER"`
	LogLevel string `mapstructure:"LOG_LEVEL"`

	PostgresHost               string `mapstructure:"POSTGRES_HOST"`
	PostgresPort               string `mapstructure:"POSTGRES_PORT"`
	PostgresUser               string `mapstructure:"POSTGRES_USER"`
	PostgresPassword           string `mapstructure:"POSTGRES_PASSWORD"`
	PostgresDB                 string `mapstructure:"POSTGRES_DB"`
	PostgresSSLMode            string `mapstructure:"POSTGRES_SSLMODE"`
	PostgresMaxOpenConns       int    `mapstructure:"POSTGRES_MAX_OPEN_CONNS"`
	PostgresMaxIdleConns       int    `mapstructure:"POSTGRES_MAX_IDLE_CONNS"`
	PostgresConnMaxLifeMinutes int    `mapstructure:"POSTGRES_CONN_MAX_LIFE_MINUTES"`

	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisDB       int    `mapstructure:"REDIS_DB"`

	SessionTTLHours int    `mapstructure:"SESSION_TTL_HOURS"`
	JWTSecret       string `mapstructure:"JWT_SECRET"`
}

var keys = []string{
	"PORT", "DB_DRIVER", "LOG_LEVEL",
	"POSTGRES_HOST", "POSTGRES_PORT", "POSTGRES_USER", "POSTGRES_PASSWORD", "POSTGRES_DB",
	"POSTGRES_SSLMODE", "POSTGRES_MAX_OPEN_CONNS", "POSTGRES_MAX_IDLE_CONNS",
	"POSTGRES_CONN_MAX_LIFE_MINUTES",
	"REDIS_ADDR", "REDIS_PASSWORD", "REDIS_DB",
	"SESSION_TTL_HOURS", "JWT_SECRET",
}

func GetConfig() (*Config, error) {
	v := viper.New()
	v.SetConfigName(".env")
	v.SetConfigType("toml")
	v.AddConfigPath(".")
	v.AutomaticEnv()
	// Unmarshal only sees environment variables for keys viper knows about
	for _, k := range keys {
		if err := v.BindEnv(k); err != nil {
			return nil, fmt.Errorf("binding %s: %w", k, err)
		}
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}
	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("parsing config data: %w", err)
	}
	return &config, nil
}

func (c *Config) GetPort() string {
	if c.Port == "" {
		return "8080"
	}
	return c.Port
}

// GetDBDriver returns "postgres" or "memory"
func (c *Config) GetDBDriver() string {
	if c.DBDriver == "" {
		return "memory"
	}
	return strings.ToLower(c.DBDriver)
}

func (c *Config) GetLogLevel() string {
	if c.LogLevel == "" {
		return "info"
	}
	return c.LogLevel
}

func (c *Config) GetPostgresMaxOpenConns() int {
	if c.PostgresMaxOpenConns <= 0 {
		return 25
	}
	return c.PostgresMaxOpenConns
}

func (c *Config) GetPostgresMaxIdleConns() int {
	if c.PostgresMaxIdleConns <= 0 {
		return 5
	}
	return c.PostgresMaxIdleConns
}

func (c *Config) GetPostgresConnMaxLifeMinutes() int {
	if c.PostgresConnMaxLifeMinutes <= 0 {
		return 5
	}
	return c.PostgresConnMaxLifeMinutes
}

func (c *Config) GetSessionTTL() time.Duration {
	if c.SessionTTLHours <= 0 {
		return 14 * 24 * time.Hour
	}
	return time.Duration(c.SessionTTLHours) * time.Hour
}

// ValidatePostgres checks the settings needed to reach PostgreSQL
func (c *Config) ValidatePostgres() error {
	var missing []string
	for key, value := range map[string]string{
		"POSTGRES_HOST":     c.PostgresHost,
		"POSTGRES_PORT":     c.PostgresPort,
		"POSTGRES_USER":     c.PostgresUser,
		"POSTGRES_PASSWORD": c.PostgresPassword,
		"POSTGRES_DB":       c.PostgresDB,
	} {
		if value == "" {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		slices.Sort(missing)
		return fmt.Errorf("missing required configuration: %s", strings.Join(missing, ", "))
	}
	return nil
}

// ValidateAPI checks the settings the HTTP API can't start without
func (c *Config) ValidateAPI() error {
	if c.JWTSecret == "" {
		return fmt.Errorf("missing required configuration: JWT_SECRET")
	}
	switch c.GetDBDriver() {
	case "memory":
		return nil
	case "postgres":
		return c.ValidatePostgres()
	}
	return fmt.Errorf("unsupported DB_DRIVER %q", c.DBDriver)
}

// PostgresConnectionString builds a lib/pq URL connection string
func (c *Config) PostgresConnectionString() string {
	sslMode := c.PostgresSSLMode
	if sslMode == "" {
		sslMode = "disable"
	}
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.PostgresUser, c.PostgresPassword),
		Host:     c.PostgresHost + ":" + c.PostgresPort,
		Path:     c.PostgresDB,
		RawQuery: "sslmode=" + url.QueryEscape(sslMode),
	}
	return u.String()
}
