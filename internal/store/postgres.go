// Package store persists the crawl registry and index snapshots to
// PostgreSQL using the tables and encodings named in the external interface.
package store

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq" // PostgreSQL driver
)

const (
	defaultMaxOpenConns    = 10
	defaultMaxIdleConns    = 5
	defaultConnMaxLifetime = 5 * time.Minute
	defaultPingTimeout     = 5 * time.Second
)

// Config holds database connection settings.
type Config struct {
	Host     string `env:"CRAWLSEARCH_DB_HOST"     yaml:"host"`
	Port     string `env:"CRAWLSEARCH_DB_PORT"     yaml:"port"`
	User     string `env:"CRAWLSEARCH_DB_USER"     yaml:"user"`
	Password string `env:"CRAWLSEARCH_DB_PASSWORD" yaml:"password"`
	DBName   string `env:"CRAWLSEARCH_DB_NAME"     yaml:"dbname"`
	SSLMode  string `env:"CRAWLSEARCH_DB_SSLMODE"  yaml:"sslmode"`
}

// DefaultConfig returns connection settings for a local development database.
func DefaultConfig() Config {
	return Config{
		Host:    "localhost",
		Port:    "5432",
		User:    "postgres",
		DBName:  "crawlsearch",
		SSLMode: "disable",
	}
}

// Connect opens and verifies a PostgreSQL connection pool.
func Connect(cfg Config) (*sqlx.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName, cfg.SSLMode,
	)

	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	db.SetMaxOpenConns(defaultMaxOpenConns)
	db.SetMaxIdleConns(defaultMaxIdleConns)
	db.SetConnMaxLifetime(defaultConnMaxLifetime)

	ctx, cancel := context.WithTimeout(context.Background(), defaultPingTimeout)
	defer cancel()

	if pingErr := db.PingContext(ctx); pingErr != nil {
		return nil, fmt.Errorf("ping database: %w", pingErr)
	}

	return db, nil
}
