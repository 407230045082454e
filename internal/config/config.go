package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

func init() {
	// Load .env file if it exists (silent fail if not)
	_ = godotenv.Load()
}

// Config holds all application configuration loaded from environment variables.
type Config struct {
	Server   ServerConfig
	App      AppConfig
	Onbid    OnbidConfig
	Sync     SyncConfig
	Database DatabaseConfig
	Cache    CacheConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `envconfig:"SERVER_HOST" default:"0.0.0.0"`
	Port            int           `envconfig:"SERVER_PORT" default:"8080"`
	ReadTimeout     time.Duration `envconfig:"SERVER_READ_TIMEOUT" default:"15s"`
	WriteTimeout    time.Duration `envconfig:"SERVER_WRITE_TIMEOUT" default:"15s"`
	ShutdownTimeout time.Duration `envconfig:"SERVER_SHUTDOWN_TIMEOUT" default:"30s"`
}

// AppConfig holds application-level settings.
type AppConfig struct {
	Name        string `envconfig:"APP_NAME" default:"onbid-goods-api"`
	Environment string `envconfig:"APP_ENV" default:"development"`
	Version     string `envconfig:"APP_VERSION" default:"1.0.0"`
}

// OnbidConfig holds settings for the Onbid open-data listings API.
type OnbidConfig struct {
	APIURL      string        `envconfig:"ONBID_API_URL" default:"http://openapi.onbid.co.kr/openapi/services/KamcoPblsalThingInquireSvc/getKamcoPbctCltrList"`
	ServiceKey  string        `envconfig:"ONBID_SERVICE_KEY" required:"true"`
	HTTPTimeout time.Duration `envconfig:"ONBID_HTTP_TIMEOUT" default:"30s"`
}

// SyncConfig holds settings for the background goods synchronization job.
type SyncConfig struct {
	Enabled    bool          `envconfig:"SYNC_ENABLED" default:"true"`
	Interval   time.Duration `envconfig:"SYNC_INTERVAL" default:"60s"`
	PageSize   int           `envconfig:"SYNC_PAGE_SIZE" default:"9999"`
	DedupLimit int           `envconfig:"SYNC_DEDUP_LIMIT" default:"100"`
}

// DatabaseConfig holds MySQL connection settings for the goods snapshot store.
type DatabaseConfig struct {
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     int    `envconfig:"DB_PORT" default:"3306"`
	Name     string `envconfig:"DB_NAME" default:"onbid"`
	User     string `envconfig:"DB_USER" default:"root"`
	Password string `envconfig:"DB_PASS" default:""`
}

// CacheConfig holds Redis settings for the optional goods list cache.
type CacheConfig struct {
	Enabled       bool          `envconfig:"CACHE_ENABLED" default:"true"`
	TTL           time.Duration `envconfig:"CACHE_TTL" default:"60s"`
	RedisHost     string        `envconfig:"REDIS_HOST" default:"localhost"`
	RedisPort     int           `envconfig:"REDIS_PORT" default:"6379"`
	RedisPassword string        `envconfig:"REDIS_PASSWORD" default:""`
	RedisDB       int           `envconfig:"REDIS_DB" default:"0"`
}

// Address returns the server address in host:port format.
func (s *ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// RedisAddress returns the Redis address in host:port format.
func (c *CacheConfig) RedisAddress() string {
	return fmt.Sprintf("%s:%d", c.RedisHost, c.RedisPort)
}

// IsDevelopment returns true if running in development mode.
func (a *AppConfig) IsDevelopment() bool {
	return a.Environment == "development"
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config

	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	return &cfg, nil
}

// MustLoad loads configuration or panics on error.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}
	return cfg
}
