// Package repo implements the data persistence layer for the audit trail,
// backed by GORM. This file contains database bootstrapping helpers for the
// SQL Server production backend and the SQLite dev/test backend, plus schema
// migration.
package repo

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	sqlite "github.com/glebarez/sqlite"
	sqlserver "gorm.io/driver/sqlserver"
	"gorm.io/gorm"
	"gorm.io/plugin/opentelemetry/tracing"

	"github.com/padronws/go-cuit-backend/internal/config"
	"github.com/padronws/go-cuit-backend/internal/domain"
)

// OpenDB opens the audit database selected by cfg.Driver, applies pool
// settings, and registers the GORM tracing plugin.
func OpenDB(cfg config.DBConfig) (*gorm.DB, error) {
	var (
		db  *gorm.DB
		err error
	)
	switch cfg.Driver {
	case "sqlserver":
		db, err = gorm.Open(sqlserver.Open(sqlserverDSN(cfg)), &gorm.Config{})
	case "sqlite":
		db, err = OpenSQLite(cfg.SQLitePath)
	default:
		return nil, fmt.Errorf("repo: unsupported DB driver %q", cfg.Driver)
	}
	if err != nil {
		return nil, err
	}

	if err := db.Use(tracing.NewPlugin(tracing.WithoutMetrics())); err != nil {
		return nil, err
	}

	// Pool
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.SetMaxOpenConns(10)
		sqlDB.SetMaxIdleConns(10)
		sqlDB.SetConnMaxIdleTime(5 * time.Minute)
		sqlDB.SetConnMaxLifetime(30 * time.Minute)
	}

	return db, nil
}

// sqlserverDSN builds the SQL Server connection string, carrying the
// encryption and trust-server-certificate flags straight into the driver.
func sqlserverDSN(cfg config.DBConfig) string {
	q := url.Values{}
	q.Set("database", cfg.Database)
	q.Set("encrypt", boolWord(cfg.Encrypt))
	q.Set("TrustServerCertificate", boolWord(cfg.TrustServerCertificate))

	u := url.URL{
		Scheme:   "sqlserver",
		User:     url.UserPassword(cfg.User, cfg.Password),
		Host:     fmt.Sprintf("%s:%d", cfg.Server, cfg.Port),
		RawQuery: q.Encode(),
	}
	return u.String()
}

func boolWord(b bool) string {
	if b {
		return "true"
	}
	return "false"
}

// OpenSQLite opens (or creates) a SQLite database and applies PRAGMAs.
// Used for local development and tests.
func OpenSQLite(path string) (*gorm.DB, error) {
	// Fail early if parent directory does not exist (instead of sqlite "out of memory (14)" on Windows).
	if dir := filepath.Dir(path); dir != "." && path != ":memory:" {
		if _, err := os.Stat(dir); err != nil {
			return nil, err
		}
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	// PRAGMAs
	db.Exec("PRAGMA journal_mode=WAL;")
	db.Exec("PRAGMA synchronous=NORMAL;")
	db.Exec("PRAGMA busy_timeout=5000;")

	return db, nil
}

// AutoMigrate creates or updates the audit table.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&domain.ConsultaAudit{})
}
