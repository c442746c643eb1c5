// Package config loads service settings from an optional YAML file and the
// environment. Environment variables win over the file.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"storefront/pkg/cart"
	"storefront/pkg/catalog"
	"storefront/pkg/discount"
)

// Persistence backends for the kv store.
const (
	BackendMemory   = "memory"
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
	BackendSQLite   = "sqlite"
)

// Config holds everything cmd/api needs to start.
type Config struct {
	Addr        string `yaml:"addr"`
	TLSCert     string `yaml:"tls_cert"`
	TLSKey      string `yaml:"tls_key"`
	LogLevel    string `yaml:"log_level"`
	ServiceName string `yaml:"service_name"`
	// AdminToken guards the status update routes. Empty disables them.
	AdminToken string `yaml:"admin_token"`

	DatabaseURL string `yaml:"database_url"`
	RedisAddr   string `yaml:"redis_addr"`
	SQLitePath  string `yaml:"sqlite_path"`
	KVBackend   string `yaml:"kv_backend"`

	OTELHost         string  `yaml:"otel_host"`
	TraceSampleRatio float64 `yaml:"trace_sample_ratio"`

	// KafkaBrokers is a comma separated list. Empty disables order events.
	KafkaBrokers string `yaml:"kafka_brokers"`
	KafkaTopic   string `yaml:"kafka_topic"`

	// CartIdleTimeout closes in-memory cart sessions unused for this long.
	CartIdleTimeout time.Duration `yaml:"cart_idle_timeout"`

	Shipping  cart.ShippingPolicy `yaml:"shipping"`
	Discounts []discount.Code     `yaml:"discounts"`
	Products  []catalog.Product   `yaml:"products"`
}

// Default returns the settings used when nothing is configured.
func Default() Config {
	return Config{
		Addr:             ":8443",
		TLSCert:          "certs/server.crt",
		TLSKey:           "certs/server.key",
		LogLevel:         "info",
		ServiceName:      "storefront",
		SQLitePath:       "storefront.db",
		KVBackend:        BackendMemory,
		KafkaTopic:       "storefront.orders",
		TraceSampleRatio: 1.0,
		CartIdleTimeout:  30 * time.Minute,
		Shipping:         cart.DefaultShipping,
	}
}

// Load reads the file named by STOREFRONT_CONFIG, if set, then applies
// environment overrides.
func Load() (Config, error) {
	cfg := Default()
	if path := os.Getenv("STOREFRONT_CONFIG"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
		if cfg, err = Parse(data); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return Config{}, err
	}
	return cfg, cfg.Validate()
}

// Parse decodes YAML on top of the defaults.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	str := map[string]*string{
		"ADDR":          &c.Addr,
		"TLS_CERT":      &c.TLSCert,
		"TLS_KEY":       &c.TLSKey,
		"LOG_LEVEL":     &c.LogLevel,
		"DATABASE_URL":  &c.DatabaseURL,
		"REDIS_ADDR":    &c.RedisAddr,
		"SQLITE_PATH":   &c.SQLitePath,
		"KV_BACKEND":    &c.KVBackend,
		"OTEL_HOST":     &c.OTELHost,
		"ADMIN_TOKEN":   &c.AdminToken,
		"KAFKA_BROKERS": &c.KafkaBrokers,
		"KAFKA_TOPIC":   &c.KafkaTopic,
	}
	for key, dst := range str {
		if v, ok := lookup(key); ok {
			*dst = strings.TrimSpace(v)
		}
	}

	ints := map[string]*int64{
		"SHIPPING_FEE":       &c.Shipping.Fee,
		"FREE_SHIPPING_OVER": &c.Shipping.FreeOver,
	}
	for key, dst := range ints {
		v, ok := lookup(key)
		if !ok {
			continue
		}
		n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		*dst = n
	}

	if v, ok := lookup("TRACE_SAMPLE_RATIO"); ok {
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return fmt.Errorf("TRACE_SAMPLE_RATIO: %w", err)
		}
		c.TraceSampleRatio = f
	}
	if v, ok := lookup("CART_IDLE_TIMEOUT"); ok {
		d, err := time.ParseDuration(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("CART_IDLE_TIMEOUT: %w", err)
		}
		c.CartIdleTimeout = d
	}
	return nil
}

// Validate checks that the selected backend has what it needs.
func (c Config) Validate() error {
	switch c.KVBackend {
	case BackendMemory:
	case BackendRedis:
		if c.RedisAddr == "" {
			return fmt.Errorf("kv backend redis requires REDIS_ADDR")
		}
	case BackendPostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("kv backend postgres requires DATABASE_URL")
		}
	case BackendSQLite:
		if c.SQLitePath == "" {
			return fmt.Errorf("kv backend sqlite requires SQLITE_PATH")
		}
	default:
		return fmt.Errorf("unknown kv backend %q", c.KVBackend)
	}
	if c.Shipping.Fee < 0 || c.Shipping.FreeOver < 0 {
		return fmt.Errorf("shipping amounts must not be negative")
	}
	if c.CartIdleTimeout < 0 {
		return fmt.Errorf("cart idle timeout must not be negative")
	}
	if c.TraceSampleRatio < 0 || c.TraceSampleRatio > 1 {
		return fmt.Errorf("trace sample ratio must be within [0,1]")
	}
	for _, d := range c.Discounts {
		if d.Percent <= 0 || d.Percent > 100 {
			return fmt.Errorf("discount %s: percent must be within 1-100", d.Code)
		}
	}
	return nil
}
