// Package config loads settings from .env files, environment variables
// prefixed EMAAR_ and command line flags, in increasing precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/labstack/gommon/bytes"
	"github.com/spf13/viper"

	"github.com/octabyte/emaar-web/apiclient"
	"github.com/octabyte/emaar-web/db/redis"
	"github.com/octabyte/emaar-web/otel"
	"github.com/octabyte/emaar-web/queue"
	"github.com/octabyte/emaar-web/stream"
	"github.com/octabyte/emaar-web/utils/logger"
)

const EnvPrefix = "EMAAR"

type HTTPConfig struct {
	Addr            string        `mapstructure:"addr" validate:"required"`
	CookieName      string        `mapstructure:"cookie_name" validate:"required"`
	CookieDomain    string        `mapstructure:"cookie_domain"`
	CookieSecure    bool          `mapstructure:"cookie_secure"`
	SessionTTL      time.Duration `mapstructure:"session_ttl" validate:"gt=0"`
	MaxUploadSize   string        `mapstructure:"max_upload_size" validate:"required"`
	Timezone        string        `mapstructure:"timezone" validate:"required,timezone"`
	CacheTTL        time.Duration `mapstructure:"cache_ttl" validate:"gte=0"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" validate:"gt=0"`
	// DemoContent shows built-in sample projects when the API is unreachable.
	DemoContent bool `mapstructure:"demo_content"`
}

// UploadLimit is MaxUploadSize in bytes. Validate guarantees it parses.
func (h HTTPConfig) UploadLimit() int64 {
	n, _ := bytes.Parse(h.MaxUploadSize)
	return n
}

func (h HTTPConfig) Location() *time.Location {
	loc, err := time.LoadLocation(h.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

type Config struct {
	HTTP   HTTPConfig       `mapstructure:"http"`
	API    apiclient.Config `mapstructure:"api"`
	Redis  redis.Config     `mapstructure:"redis"`
	AMQP   queue.Config     `mapstructure:"amqp"`
	Stream stream.Config    `mapstructure:"stream"`
	Otel   otel.Config      `mapstructure:"otel"`
	Logger logger.Config    `mapstructure:"log"`
}

func (c *Config) Validate() error {
	if err := validator.New(validator.WithRequiredStructEnabled()).Struct(c); err != nil {
		return err
	}
	if _, err := bytes.Parse(c.HTTP.MaxUploadSize); err != nil {
		return fmt.Errorf("http.max_upload_size %q: %w", c.HTTP.MaxUploadSize, err)
	}
	return nil
}

var defaults = map[string]any{
	"http.addr":             ":8080",
	"http.cookie_name":      "emaar_session",
	"http.cookie_domain":    "",
	"http.cookie_secure":    false,
	"http.session_ttl":      "24h",
	"http.max_upload_size":  "10MB",
	"http.timezone":         "Asia/Baghdad",
	"http.cache_ttl":        "1m",
	"http.shutdown_timeout": "10s",
	"http.demo_content":     true,

	"api.base_url": "",
	"api.timeout":  "15s",

	"redis.addr":     "",
	"redis.password": "",
	"redis.db":       0,

	"amqp.uri":                "",
	"amqp.exchange":           "emaar.activity",
	"amqp.exchange_type":      "topic",
	"amqp.routing_key_prefix": "activity.",

	"stream.uri":           "",
	"stream.name":          "emaar.activity",
	"stream.producer_name": "",
	"stream.max_age":       "720h",

	"otel.enabled":         false,
	"otel.endpoint":        "",
	"otel.service_name":    "emaar-web",
	"otel.service_version": "",
	"otel.environment":     "development",
	"otel.sample_rate":     1.0,

	"log.level":        "info",
	"log.env":          "development",
	"log.service_name": "emaar-web",
	"log.encoding":     "",
}

// NewViper returns a viper instance with every key defaulted, so each one
// can be overridden from the environment as EMAAR_<SECTION>_<KEY>.
func NewViper() *viper.Viper {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	return v
}

// LoadDotEnv loads the given files, or ".env", into the process environment
// without overriding variables that are already set. Missing files are fine.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load %s: %w", f, err)
		}
	}
	return nil
}

// Load decodes and validates the configuration held by v.
func Load(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	cfg.API.ServiceName = cfg.Otel.ServiceName
	return &cfg, nil
}
