// Package config reads the service configuration from the environment,
// optionally seeded from a .env file.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-faster/errors"
	"github.com/joho/godotenv"
)

const (
	CatalogEmbedded = "embedded"
	CatalogPostgres = "postgres"

	OrderStoreFile     = "file"
	OrderStoreMemory   = "memory"
	OrderStorePostgres = "postgres"
)

type Config struct {
	Env             string
	LogLevel        string
	Port            string
	CatalogSource   string
	OrderStore      string
	OrdersFile      string
	DatabaseURL     string
	ShutdownTimeout time.Duration
	SessionIdle     time.Duration
	SessionCapacity int
}

// Development reports whether the service runs in development mode.
func (c Config) Development() bool {
	return c.Env != "production"
}

// UsesPostgres reports whether any backend needs a database connection.
func (c Config) UsesPostgres() bool {
	return c.CatalogSource == CatalogPostgres || c.OrderStore == OrderStorePostgres
}

// Addr is the listen address.
func (c Config) Addr() string {
	return ":" + c.Port
}

// Load reads .env files (missing files are fine) and the environment.
func Load(files ...string) (Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, os.ErrNotExist) {
			return Config{}, errors.Wrapf(err, "load %s", f)
		}
	}
	return FromEnv(os.Getenv)
}

// FromEnv builds the configuration from a lookup function.
func FromEnv(getenv func(string) string) (Config, error) {
	get := func(key, def string) string {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			return v
		}
		return def
	}

	cfg := Config{
		Env:           get("ENV", "development"),
		LogLevel:      get("LOG_LEVEL", "info"),
		Port:          strings.TrimPrefix(get("PORT", "8080"), ":"),
		CatalogSource: get("CATALOG_SOURCE", CatalogEmbedded),
		OrderStore:    get("ORDER_STORE", OrderStoreFile),
		OrdersFile:    get("ORDERS_FILE", "data/storage.json"),
	}

	switch cfg.Env {
	case "development", "production":
	default:
		return Config{}, errors.Errorf("invalid ENV %q", cfg.Env)
	}
	switch cfg.CatalogSource {
	case CatalogEmbedded, CatalogPostgres:
	default:
		return Config{}, errors.Errorf("invalid CATALOG_SOURCE %q", cfg.CatalogSource)
	}
	switch cfg.OrderStore {
	case OrderStoreFile, OrderStoreMemory, OrderStorePostgres:
	default:
		return Config{}, errors.Errorf("invalid ORDER_STORE %q", cfg.OrderStore)
	}

	timeout, err := time.ParseDuration(get("SHUTDOWN_TIMEOUT", "10s"))
	if err != nil {
		return Config{}, errors.Wrap(err, "parse SHUTDOWN_TIMEOUT")
	}
	cfg.ShutdownTimeout = timeout

	idle, err := time.ParseDuration(get("SESSION_IDLE_TIMEOUT", "30m"))
	if err != nil {
		return Config{}, errors.Wrap(err, "parse SESSION_IDLE_TIMEOUT")
	}
	cfg.SessionIdle = idle

	capacity, err := strconv.Atoi(get("SESSION_CAPACITY", "10000"))
	if err != nil || capacity < 0 {
		return Config{}, errors.Errorf("invalid SESSION_CAPACITY %q", get("SESSION_CAPACITY", ""))
	}
	cfg.SessionCapacity = capacity

	cfg.DatabaseURL = get("DATABASE_URL", "")
	if cfg.DatabaseURL == "" && cfg.UsesPostgres() {
		host := get("POSTGRES_HOST", "")
		user := get("POSTGRES_USER", "")
		dbname := get("POSTGRES_DB", "")
		if host == "" || user == "" || dbname == "" {
			return Config{}, errors.New("database connection variables not set: set DATABASE_URL or POSTGRES_HOST, POSTGRES_USER, POSTGRES_DB")
		}
		cfg.DatabaseURL = fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
			host,
			get("POSTGRES_PORT", "5432"),
			user,
			get("POSTGRES_PASSWORD", ""),
			dbname,
			get("POSTGRES_SSLMODE", "disable"),
		)
	}
	return cfg, nil
}
