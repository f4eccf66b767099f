package database

import (
	"database/sql"
	"fmt"
	"net"
	"net/url"

	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"

	"userregistry/internal/config"
)

// Open connects to the configured store and verifies the connection.
func Open(cfg config.DatabaseConfig) (*sql.DB, error) {
	var dsn string
	switch cfg.Driver {
	case config.DriverSQLite:
		dsn = cfg.Path
	case config.DriverPostgres:
		dsn = PostgresDSN(cfg)
	default:
		return nil, fmt.Errorf("desteklenmeyen veritabanı sürücüsü: %q", cfg.Driver)
	}

	db, err := sql.Open(cfg.Driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("veritabanı bağlantısı kurulamadı: %w", err)
	}

	if cfg.Driver == config.DriverSQLite {
		// every new connection to ":memory:" would see its own empty database
		db.SetMaxOpenConns(1)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("veritabanı bağlantısı test edilemedi: %w", err)
	}

	return db, nil
}

// PostgresDSN renders cfg as a postgres:// URL. Empty fields are left out so
// lib/pq falls back to its defaults for them.
func PostgresDSN(cfg config.DatabaseConfig) string {
	u := url.URL{Scheme: "postgres", Host: cfg.Host}
	if cfg.Port != "" {
		u.Host = net.JoinHostPort(cfg.Host, cfg.Port)
	}

	switch {
	case cfg.User != "" && cfg.Password != "":
		u.User = url.UserPassword(cfg.User, cfg.Password)
	case cfg.User != "":
		u.User = url.User(cfg.User)
	}

	if cfg.Name != "" {
		u.Path = "/" + cfg.Name
	}

	if cfg.SSLMode != "" {
		u.RawQuery = url.Values{"sslmode": {cfg.SSLMode}}.Encode()
	}

	return u.String()
}
