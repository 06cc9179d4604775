package config

import (
	"context"
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
)

// Store drivers.
const (
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// App holds core runtime configuration shared across services.
type App struct {
	Name                    string        `env:"APP_NAME" envDefault:"trivia-api"`
	Env                     string        `env:"APP_ENV" envDefault:"development"`
	LogLevel                string        `env:"LOG_LEVEL" envDefault:"info"`
	HTTPAddr                string        `env:"HTTP_ADDR" envDefault:"0.0.0.0:8080"`
	GracefulShutdownTimeout time.Duration `env:"GRACEFUL_SHUTDOWN_SECONDS" envDefault:"20s"`

	Store    Store
	Postgres Postgres
	Redis    Redis
	Catalog  Catalog
	Quiz     Quiz
	Importer Importer
	CORS     CORS
}

// Store selects the persistence backend.
type Store struct {
	Driver         string `env:"STORE_DRIVER" envDefault:"postgres"`
	MigrateOnStart bool   `env:"MIGRATE_ON_START" envDefault:"false"`
}

// Postgres captures connection info for the SQL database.
type Postgres struct {
	Host     string `env:"PG_HOST" envDefault:"localhost"`
	Port     int    `env:"PG_PORT" envDefault:"5432"`
	User     string `env:"PG_USER" envDefault:"postgres"`
	Password string `env:"PG_PASSWORD"`
	Database string `env:"PG_DATABASE" envDefault:"trivia"`
	SSLMode  string `env:"PG_SSL_MODE" envDefault:"disable"`
	MaxConns int    `env:"PG_MAX_CONNS" envDefault:"10"`
}

// DSN renders the keyword/value connection string understood by pgx.
func (p Postgres) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.Database, p.SSLMode)
}

// Redis holds the category cache configuration. An empty Addr disables caching.
type Redis struct {
	Addr     string `env:"REDIS_ADDR"`
	DB       int    `env:"REDIS_DB" envDefault:"0"`
	PoolSize int    `env:"REDIS_POOL_SIZE" envDefault:"20"`
}

// Catalog tunes listing behavior.
type Catalog struct {
	DefaultCurrentCategory string        `env:"DEFAULT_CURRENT_CATEGORY" envDefault:"Science"`
	CategoryCacheTTL       time.Duration `env:"CATEGORY_CACHE_TTL" envDefault:"5m"`
}

// Quiz tunes question selection. RandomSeed 0 means seed from runtime entropy.
type Quiz struct {
	RandomSeed uint64 `env:"QUIZ_RANDOM_SEED" envDefault:"0"`
}

// Importer configures the Open Trivia DB import worker. A zero Interval disables it.
type Importer struct {
	BaseURL    string        `env:"OPENTDB_BASE_URL" envDefault:"https://opentdb.com"`
	BatchSize  int           `env:"IMPORTER_BATCH_SIZE" envDefault:"10"`
	Difficulty string        `env:"IMPORTER_DIFFICULTY"`
	Interval   time.Duration `env:"IMPORTER_INTERVAL" envDefault:"0s"`
	Timeout    time.Duration `env:"IMPORTER_TIMEOUT_SECONDS" envDefault:"10s"`
}

// CORS holds Cross-Origin Resource Sharing configuration.
type CORS struct {
	AllowedOrigins   []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"*"`
	AllowedMethods   []string `env:"CORS_ALLOWED_METHODS" envSeparator:"," envDefault:"GET,PUT,POST,DELETE,OPTIONS"`
	AllowedHeaders   []string `env:"CORS_ALLOWED_HEADERS" envSeparator:"," envDefault:"Content-Type,Authorization"`
	AllowCredentials bool     `env:"CORS_ALLOW_CREDENTIALS" envDefault:"false"`
	MaxAge           int      `env:"CORS_MAX_AGE" envDefault:"3600"`
}

// Load parses environment variables into App config.
func Load(ctx context.Context) (*App, error) {
	cfg := &App{}
	if err := env.ParseWithOptions(cfg, env.Options{RequiredIfNoDef: false}); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadPostgres parses only the Postgres section, for tools such as the migrator.
func LoadPostgres() (Postgres, error) {
	var pg Postgres
	if err := env.Parse(&pg); err != nil {
		return Postgres{}, fmt.Errorf("parse postgres config: %w", err)
	}
	return pg, nil
}

// LoadImporter parses only the Importer section, for the one-shot importer.
func LoadImporter() (Importer, error) {
	var imp Importer
	if err := env.Parse(&imp); err != nil {
		return Importer{}, fmt.Errorf("parse importer config: %w", err)
	}
	if err := imp.validate(); err != nil {
		return Importer{}, err
	}
	return imp, nil
}

func (a *App) validate() error {
	switch a.Store.Driver {
	case DriverPostgres, DriverMemory:
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q (want %s or %s)", a.Store.Driver, DriverPostgres, DriverMemory)
	}
	return a.Importer.validate()
}

func (i Importer) validate() error {
	switch i.Difficulty {
	case "", "easy", "medium", "hard":
		return nil
	default:
		return fmt.Errorf("unknown IMPORTER_DIFFICULTY %q (want easy, medium or hard)", i.Difficulty)
	}
}
