package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"time"

	"gigmarket/pkg/logger"
	"gigmarket/pkg/postgres"

	"gopkg.in/yaml.v3"
)

const (
	MinPort = 1
	MaxPort = 65535

	minSecretLength = 16
)

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`
	RabbitMQ RabbitMQConfig `yaml:"rabbitmq"`
	Auth     AuthConfig     `yaml:"auth"`
	Logging  logger.Config  `yaml:"logging"`
	Outbox   OutboxConfig   `yaml:"outbox"`
}

type ServerConfig struct {
	Address         string        `yaml:"address"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

type DatabaseConfig struct {
	Host            string        `yaml:"host"`
	Port            int           `yaml:"port"`
	User            string        `yaml:"user"`
	Password        string        `yaml:"password"`
	Database        string        `yaml:"database"`
	SSLMode         string        `yaml:"sslmode"`
	MaxOpenConns    int           `yaml:"max_open_conns"`
	MaxIdleConns    int           `yaml:"max_idle_conns"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime"`
	MigrationsPath  string        `yaml:"migrations_path"`
}

func (c *DatabaseConfig) Postgres() *postgres.Config {
	return &postgres.Config{
		Host:            c.Host,
		Port:            c.Port,
		User:            c.User,
		Password:        c.Password,
		Database:        c.Database,
		SSLMode:         c.SSLMode,
		MaxOpenConns:    c.MaxOpenConns,
		MaxIdleConns:    c.MaxIdleConns,
		ConnMaxLifetime: c.ConnMaxLifetime,
	}
}

// Redis is optional; an empty Addr disables the analytics cache.
type RedisConfig struct {
	Addr         string        `yaml:"addr"`
	Password     string        `yaml:"password"`
	DB           int           `yaml:"db"`
	AnalyticsTTL time.Duration `yaml:"analytics_ttl"`
}

type RabbitMQConfig struct {
	URL      string         `yaml:"url"`
	Exchange ExchangeConfig `yaml:"exchange"`
	Publish  PublishConfig  `yaml:"publish"`
}

type ExchangeConfig struct {
	Name    string `yaml:"name"`
	Type    string `yaml:"type"`
	Durable bool   `yaml:"durable"`
}

type PublishConfig struct {
	RetryAttempts     int           `yaml:"retry_attempts"`
	RetryInterval     time.Duration `yaml:"retry_interval"`
	BackoffMultiplier float64       `yaml:"backoff_multiplier"`
}

type AuthConfig struct {
	JWTSecret string `yaml:"jwt_secret"`
}

type OutboxConfig struct {
	BatchSize    int           `yaml:"batch_size"`
	PollInterval time.Duration `yaml:"poll_interval"`
}

// Load reads the YAML file at path, expanding ${VAR} references from the
// environment first. Unset fields keep their defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal([]byte(os.ExpandEnv(string(data))), cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return cfg, nil
}

func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Address:         ":8080",
			ReadTimeout:     10 * time.Second,
			WriteTimeout:    10 * time.Second,
			IdleTimeout:     60 * time.Second,
			ShutdownTimeout: 30 * time.Second,
		},
		Database: DatabaseConfig{
			Host:           "localhost",
			Port:           5432,
			SSLMode:        "disable",
			MigrationsPath: "file://migrations",
		},
		Redis: RedisConfig{
			AnalyticsTTL: 10 * time.Minute,
		},
		RabbitMQ: RabbitMQConfig{
			Exchange: ExchangeConfig{Name: "gigmarket.events", Type: "topic", Durable: true},
			Publish:  PublishConfig{RetryAttempts: 3, RetryInterval: time.Second, BackoffMultiplier: 2},
		},
		Logging: logger.Config{Level: "info", Format: "console"},
		Outbox: OutboxConfig{
			BatchSize:    100,
			PollInterval: 2 * time.Second,
		},
	}
}

// ValidateAPI checks what the marketplace API needs to start.
func (c *Config) ValidateAPI() error {
	if _, port, err := net.SplitHostPort(c.Server.Address); err != nil || port == "" {
		return fmt.Errorf("invalid server address: %q", c.Server.Address)
	}
	if c.Server.ShutdownTimeout <= 0 {
		return errors.New("server shutdown timeout must be positive")
	}
	if err := c.Database.validate(); err != nil {
		return err
	}
	if len(c.Auth.JWTSecret) < minSecretLength {
		return fmt.Errorf("jwt secret must be at least %d characters", minSecretLength)
	}
	if c.Redis.Addr != "" && c.Redis.AnalyticsTTL <= 0 {
		return errors.New("redis analytics ttl must be positive")
	}

	return nil
}

// ValidateRelay checks what the outbox relay needs to start.
func (c *Config) ValidateRelay() error {
	if err := c.Database.validate(); err != nil {
		return err
	}
	if c.RabbitMQ.URL == "" {
		return errors.New("rabbitmq url is required")
	}
	if c.RabbitMQ.Exchange.Name == "" {
		return errors.New("rabbitmq exchange name is required")
	}
	if c.RabbitMQ.Publish.RetryAttempts < 1 {
		return errors.New("rabbitmq publish retry attempts must be at least 1")
	}
	if c.Outbox.BatchSize < 1 {
		return errors.New("outbox batch size must be at least 1")
	}
	if c.Outbox.PollInterval <= 0 {
		return errors.New("outbox poll interval must be positive")
	}

	return nil
}

func (c *DatabaseConfig) validate() error {
	if c.Host == "" {
		return errors.New("database host is required")
	}
	if c.Port < MinPort || c.Port > MaxPort {
		return fmt.Errorf("invalid database port: %d (must be between %d and %d)", c.Port, MinPort, MaxPort)
	}
	if c.User == "" {
		return errors.New("database user is required")
	}
	if c.Database == "" {
		return errors.New("database name is required")
	}

	return nil
}
