package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Load reads configs/config.yaml (if any) and the environment.
func Load() (*Config, error) {
	return LoadFile("")
}

// LoadFile is Load with an explicit config file. An empty path searches
// the default locations.
func LoadFile(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./configs")
		v.AddConfigPath(".")
		v.AddConfigPath("/app/configs")
	}

	v.SetEnvPrefix("APP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Allow common env vars without APP_ prefix for Docker/VM deploys
	v.BindEnv("http.port", "HTTP_PORT", "APP_HTTP_PORT")
	v.BindEnv("database.url", "DATABASE_URL", "APP_DATABASE_URL")
	v.BindEnv("cache.redis_url", "REDIS_URL", "APP_CACHE_REDIS_URL")
	v.BindEnv("queue.url", "NATS_URL", "AMQP_URL", "APP_QUEUE_URL")
	v.BindEnv("attachments.base_url", "ATTACHMENTS_BASE_URL", "APP_ATTACHMENTS_BASE_URL")
	v.BindEnv("attachments.token", "ATTACHMENTS_TOKEN", "APP_ATTACHMENTS_TOKEN")
	v.BindEnv("vault.address", "VAULT_ADDR", "APP_VAULT_ADDRESS")
	v.BindEnv("vault.token", "VAULT_TOKEN", "APP_VAULT_TOKEN")
	v.BindEnv("app.environment", "APP_ENVIRONMENT")
	v.BindEnv("logging.level", "LOG_LEVEL", "APP_LOGGING_LEVEL")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "lapeco-hr")
	v.SetDefault("app.version", "v1.0.0")
	v.SetDefault("app.environment", "development")

	v.SetDefault("http.port", 8080)
	v.SetDefault("http.read_timeout", 30*time.Second)
	v.SetDefault("http.write_timeout", 60*time.Second)
	v.SetDefault("http.idle_timeout", 120*time.Second)
	v.SetDefault("http.body_limit", 1<<20)
	v.SetDefault("http.shutdown_timeout", 30*time.Second)

	v.SetDefault("database.max_open_conns", 25)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.conn_max_lifetime", time.Hour)
	v.SetDefault("database.auto_migrate", true)

	v.SetDefault("cache.evaluation_period_ttl", 5*time.Minute)

	v.SetDefault("queue.enabled", false)
	v.SetDefault("queue.driver", "nats")

	v.SetDefault("reports.format", "pdf")
	v.SetDefault("reports.company_name", "Lapeco Group of Companies")

	v.SetDefault("attachments.timeout", 15*time.Second)
	v.SetDefault("attachments.max_bytes", 20<<20)

	v.SetDefault("vault.mount", "secret")
	v.SetDefault("vault.prefix", "lapeco-hr")

	v.SetDefault("opentelemetry.service_name", "lapeco-hr")
	v.SetDefault("opentelemetry.jaeger.sampler_param", 1.0)

	v.SetDefault("prometheus.enabled", true)
	v.SetDefault("prometheus.path", "/metrics")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
	v.SetDefault("logging.output", "stdout")
	v.SetDefault("logging.sampling.initial", 100)
	v.SetDefault("logging.sampling.thereafter", 100)

	v.SetDefault("rate_limiting.enabled", true)
	v.SetDefault("rate_limiting.max_requests", 120)
	v.SetDefault("rate_limiting.window", time.Minute)

	v.SetDefault("circuit_breaker.enabled", true)
	v.SetDefault("circuit_breaker.max_requests", 3)
	v.SetDefault("circuit_breaker.interval", time.Minute)
	v.SetDefault("circuit_breaker.timeout", 30*time.Second)
	v.SetDefault("circuit_breaker.failure_threshold", 5)

	v.SetDefault("cors.enabled", true)
}

// Validate rejects unsupported formats and drivers and missing addresses.
func (c *Config) Validate() error {
	switch c.Reports.Format {
	case "pdf", "csv":
	default:
		return fmt.Errorf("reports.format must be pdf or csv, got %q", c.Reports.Format)
	}

	switch c.Queue.Driver {
	case "nats", "rabbitmq", "amqp":
	default:
		return fmt.Errorf("queue.driver must be nats or rabbitmq, got %q", c.Queue.Driver)
	}
	if c.Queue.Enabled && c.Queue.URL == "" {
		return errors.New("queue.url is required when the queue is enabled")
	}

	if c.Vault.Enabled && c.Vault.Address == "" {
		return errors.New("vault.address is required when vault is enabled")
	}
	return nil
}
