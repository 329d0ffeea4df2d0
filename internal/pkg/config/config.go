package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port           string        `env:"PORT,            default=5000"`
	Env            string        `env:"ENV,             default=development"`
	LogLevel       string        `env:"LOG_LEVEL,       default=info"`
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT, default=10s"`
	FeaturedArtist string        `env:"FEATURED_ARTIST, default=MrObvious"`

	Mongo    MongoConfig
	Redis    RedisConfig
	Session  SessionConfig
	CORS     CORSConfig
	Media    MediaConfig
	Playback PlaybackConfig
	NATS     NATSConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=zanith"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR,     default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,       default=0"`
}

type SessionConfig struct {
	CacheTTL     time.Duration `env:"SESSION_CACHE_TTL, default=1h"`
	CookieSecure bool          `env:"COOKIE_SECURE,     default=true"`
}

type CORSConfig struct {
	Origins []string `env:"CORS_ORIGINS, default=http://localhost:3000"`
}

// MediaConfig holds the media host account used to sign direct uploads.
type MediaConfig struct {
	CloudName string `env:"MEDIA_CLOUD_NAME"`
	APIKey    string `env:"MEDIA_API_KEY"`
	APISecret string `env:"MEDIA_API_SECRET"`
}

type PlaybackConfig struct {
	Workers int `env:"PLAYBACK_WORKERS, default=4"`
}

// NATSConfig points at the broker receiving activity events. An empty URL
// disables publishing.
type NATSConfig struct {
	URL           string `env:"NATS_URL"`
	SubjectPrefix string `env:"NATS_SUBJECT_PREFIX, default=zanith.activity"`
}

// IsDevelopment reports whether the service runs in the development environment.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	cfg, err := LoadWithLookuper(context.Background(), envconfig.OsLookuper())
	if err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return cfg
}

// LoadWithLookuper reads configuration from l.
func LoadWithLookuper(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
		return nil, err
	}
	return &cfg, nil
}
