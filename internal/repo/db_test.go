package repo

import (
	"path/filepath"
	"strings"
	"testing"

	"gorm.io/gorm"

	"github.com/padronws/go-cuit-backend/internal/config"
)

func TestOpenSQLite_ErrorOnBadPath(t *testing.T) {
	base := t.TempDir()
	bad := filepath.Join(base, "missing-dir", "db.sqlite")

	db, err := OpenSQLite(bad)
	if err == nil {
		t.Fatalf("expected error for %s", bad)
	}
	if db != nil {
		t.Fatalf("expected nil db on error")
	}
	// Accept any of the typical failure shapes:
	// - os.Stat: "no such file or directory" / "cannot find the path"
	// - SQLite:  "unable to open database file" / "out of memory (14)"
	lower := strings.ToLower(err.Error())
	if !(strings.Contains(lower, "no such file") ||
		strings.Contains(lower, "cannot find") ||
		strings.Contains(lower, "unable to open") ||
		strings.Contains(lower, "out of memory")) {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestOpenDB_SQLiteAndMigrate(t *testing.T) {
	cfg := config.DBConfig{
		Driver:     "sqlite",
		SQLitePath: filepath.Join(t.TempDir(), "audit_test.db"),
	}
	db, err := OpenDB(cfg)
	if err != nil {
		t.Fatalf("OpenDB: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	if err := AutoMigrate(db); err != nil {
		t.Fatalf("AutoMigrate: %v", err)
	}
	if !db.Migrator().HasTable("auditoria_consultas") {
		t.Fatal("auditoria_consultas table missing after migration")
	}
}

func TestOpenDB_UnsupportedDriver(t *testing.T) {
	if _, err := OpenDB(config.DBConfig{Driver: "oracle"}); err == nil {
		t.Fatal("expected error for unsupported driver")
	}
}

func TestSQLServerDSN(t *testing.T) {
	cfg := config.DBConfig{
		Driver:                 "sqlserver",
		Server:                 "db.example.com",
		Port:                   1433,
		Database:               "Padron",
		User:                   "sa",
		Password:               "p@ss/w:rd",
		Encrypt:                true,
		TrustServerCertificate: true,
	}
	dsn := sqlserverDSN(cfg)

	if !strings.HasPrefix(dsn, "sqlserver://") {
		t.Fatalf("dsn = %q", dsn)
	}
	for _, want := range []string{
		"db.example.com:1433",
		"database=Padron",
		"encrypt=true",
		"TrustServerCertificate=true",
	} {
		if !strings.Contains(dsn, want) {
			t.Errorf("dsn missing %q: %s", want, dsn)
		}
	}
	// Credentials must be URL-escaped, not raw.
	if strings.Contains(dsn, "p@ss/w:rd") {
		t.Errorf("password not escaped in dsn: %s", dsn)
	}
}

func TestSQLServerDSN_FlagsOff(t *testing.T) {
	dsn := sqlserverDSN(config.DBConfig{
		Server: "localhost", Port: 1433, Database: "x",
		Encrypt: false, TrustServerCertificate: false,
	})
	for _, want := range []string{"encrypt=false", "TrustServerCertificate=false"} {
		if !strings.Contains(dsn, want) {
			t.Errorf("dsn missing %q: %s", want, dsn)
		}
	}
}

// compile-time check: OpenSQLite keeps its signature (used by tests and tools)
var _ func(string) (*gorm.DB, error) = OpenSQLite
