package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	ServerPort int

	DBConfig struct {
		DBHost     string `env:"STOREFRONT_DB_HOST"`
		DBPort     string `env:"STOREFRONT_DB_PORT"`
		DBUser     string `env:"STOREFRONT_DB_USER"`
		DBPassword string `env:"STOREFRONT_DB_PASSWORD"`
		DBName     string `env:"STOREFRONT_DB_NAME"`
		DBSSLMode  string `env:"STOREFRONT_DB_SSLMODE"`
	}

	CatalogURL     string        `env:"CATALOG_URL"`
	CatalogTimeout time.Duration `env:"CATALOG_TIMEOUT"`

	GatewayURL        string        `env:"PAYMENT_GATEWAY_URL"`
	GatewayCredential string        `env:"PAYMENT_GATEWAY_TOKEN"`
	GatewayTimeout    time.Duration `env:"PAYMENT_GATEWAY_TIMEOUT"`

	KafkaURL string `env:"KAFKA_BROKER_URL"`

	MigrationsPath     string        `env:"MIGRATIONS_PATH"`
	OutboxPollInterval time.Duration `env:"OUTBOX_POLL_INTERVAL"`
	OutboxPollTimeout  time.Duration `env:"OUTBOX_POLL_TIMEOUT"`

	CheckoutSessionTTL    time.Duration `env:"CHECKOUT_SESSION_TTL"`
	CheckoutSweepInterval time.Duration `env:"CHECKOUT_SWEEP_INTERVAL"`
}

func LoadConfig() (*Config, error) {
	cfg := &Config{}

	portStr := getEnvOrDefault("STOREFRONT_PORT", "8080")
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("invalid STOREFRONT_PORT: %w", err)
	}
	cfg.ServerPort = port

	cfg.DBConfig.DBHost = getEnvOrDefault("STOREFRONT_DB_HOST", "localhost")
	cfg.DBConfig.DBPort = getEnvOrDefault("STOREFRONT_DB_PORT", "5432")
	cfg.DBConfig.DBUser = getEnvOrDefault("STOREFRONT_DB_USER", "postgres")
	cfg.DBConfig.DBPassword = getEnvOrDefault("STOREFRONT_DB_PASSWORD", "postgres")
	cfg.DBConfig.DBName = getEnvOrDefault("STOREFRONT_DB_NAME", "storefront_db")
	cfg.DBConfig.DBSSLMode = getEnvOrDefault("STOREFRONT_DB_SSLMODE", "disable")

	cfg.CatalogURL = getEnvOrDefault("CATALOG_URL", "http://localhost:8090")
	catalogTimeoutStr := getEnvOrDefault("CATALOG_TIMEOUT", "10s")
	catalogTimeout, err := time.ParseDuration(catalogTimeoutStr)
	if err != nil {
		return nil, fmt.Errorf("invalid CATALOG_TIMEOUT: %w", err)
	}
	cfg.CatalogTimeout = catalogTimeout

	cfg.GatewayURL = getEnvOrDefault("PAYMENT_GATEWAY_URL", "http://localhost:8091")
	cfg.GatewayCredential = os.Getenv("PAYMENT_GATEWAY_TOKEN")
	gatewayTimeoutStr := getEnvOrDefault("PAYMENT_GATEWAY_TIMEOUT", "30s")
	gatewayTimeout, err := time.ParseDuration(gatewayTimeoutStr)
	if err != nil {
		return nil, fmt.Errorf("invalid PAYMENT_GATEWAY_TIMEOUT: %w", err)
	}
	cfg.GatewayTimeout = gatewayTimeout

	cfg.KafkaURL = getEnvOrDefault("KAFKA_BROKER_URL", "localhost:9092")
	cfg.MigrationsPath = getEnvOrDefault("MIGRATIONS_PATH", "file://migrations")

	outboxPollIntervalStr := getEnvOrDefault("OUTBOX_POLL_INTERVAL", "5s")
	interval, err := time.ParseDuration(outboxPollIntervalStr)
	if err != nil {
		return nil, fmt.Errorf("invalid OUTBOX_POLL_INTERVAL: %w", err)
	}
	cfg.OutboxPollInterval = interval

	outboxPollTimeoutStr := getEnvOrDefault("OUTBOX_POLL_TIMEOUT", "10s")
	timeout, err := time.ParseDuration(outboxPollTimeoutStr)
	if err != nil {
		return nil, fmt.Errorf("invalid OUTBOX_POLL_TIMEOUT: %w", err)
	}
	cfg.OutboxPollTimeout = timeout

	sessionTTLStr := getEnvOrDefault("CHECKOUT_SESSION_TTL", "30m")
	sessionTTL, err := time.ParseDuration(sessionTTLStr)
	if err != nil {
		return nil, fmt.Errorf("invalid CHECKOUT_SESSION_TTL: %w", err)
	}
	cfg.CheckoutSessionTTL = sessionTTL

	sweepIntervalStr := getEnvOrDefault("CHECKOUT_SWEEP_INTERVAL", "5m")
	sweepInterval, err := time.ParseDuration(sweepIntervalStr)
	if err != nil {
		return nil, fmt.Errorf("invalid CHECKOUT_SWEEP_INTERVAL: %w", err)
	}
	cfg.CheckoutSweepInterval = sweepInterval

	return cfg, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func (c *Config) GetDBMigrationConnectionString() string {
	return fmt.Sprintf("%s:%s@%s:%s/%s?sslmode=%s",
		c.DBConfig.DBUser, c.DBConfig.DBPassword, c.DBConfig.DBHost, c.DBConfig.DBPort, c.DBConfig.DBName, c.DBConfig.DBSSLMode)
}

func (c *Config) GetKafkaBrokers() []string {
	return []string{c.KafkaURL}
}
