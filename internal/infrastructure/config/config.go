package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string `env:"PORT,      default=8080"`
	Env       string `env:"ENV,       default=development"`
	JWTSecret string `env:"JWT_SECRET"`
	LogLevel  string `env:"LOG_LEVEL, default=info"`

	// TokenTTL bounds the access-token (and cookie) lifetime.
	TokenTTL time.Duration `env:"TOKEN_TTL, default=24h"`

	Mongo MongoConfig
	Redis RedisConfig
	Media MediaConfig
	Audit AuditConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=school_portal"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR, default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,   default=0"`
}

// MediaConfig points at the backend that issues signed attachment URLs.
type MediaConfig struct {
	BaseURL  string `env:"MEDIA_BASE_URL, default=http://localhost:9000"`
	APIToken string `env:"MEDIA_API_TOKEN"`
	// DedupWindow is how long a resolved signed URL answers rapid repeat
	// requests for the same attachment.
	DedupWindow time.Duration `env:"MEDIA_DEDUP_WINDOW, default=3s"`
}

type AuditConfig struct {
	Workers int `env:"AUDIT_WORKERS, default=4"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
