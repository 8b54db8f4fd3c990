package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

// Config holds all configuration for the site server.
type Config struct {
	// Server
	Port            string        `env:"PORT" envDefault:"5000"`
	StaticDir       string        `env:"STATIC_DIR"`
	CORSOrigin      string        `env:"CORS_ORIGIN" envDefault:"*"`
	ReadTimeout     time.Duration `env:"READ_TIMEOUT" envDefault:"10s"`
	WriteTimeout    time.Duration `env:"WRITE_TIMEOUT" envDefault:"10s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"5s"`

	// Store. DATABASE_URL wins over MONGO_URI when both are set.
	MongoURI    string `env:"MONGO_URI" envDefault:"mongodb://127.0.0.1:27017/contactDB"`
	DatabaseURL string `env:"DATABASE_URL"`
	AutoMigrate bool   `env:"AUTO_MIGRATE" envDefault:"false"`

	// Logging
	LogLevel      string `env:"LOG_LEVEL" envDefault:"INFO"`
	LogFile       string `env:"LOG_FILE"`
	LogMaxSizeMB  int    `env:"LOG_MAX_SIZE_MB" envDefault:"100"`
	LogMaxBackups int    `env:"LOG_MAX_BACKUPS" envDefault:"3"`
	LogMaxAgeDays int    `env:"LOG_MAX_AGE_DAYS" envDefault:"28"`

	// Telemetry
	OTLPEndpoint string `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	ServiceName  string `env:"OTEL_SERVICE_NAME" envDefault:"contact-site"`
}

// Load reads .env files (when present) and then the process environment.
// Variables already set in the environment are never overridden by a file.
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		_ = godotenv.Load(f)
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}

// StoreURI is the connection string for the contact store.
func (c *Config) StoreURI() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return c.MongoURI
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return ":" + c.Port
}
