// Package config provides application configuration loaded from environment
// variables with defaults and validation. It centralizes application settings
// such as server timeouts, logging, database connectivity, and the credentials
// used against the AFIP padrón web service.
package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"
)

// CORSConfig defines Cross-Origin Resource Sharing settings.
type CORSConfig struct {
	AllowedOrigins []string
}

// SecurityConfig defines security-related settings such as HSTS.
type SecurityConfig struct {
	EnableHSTS bool
	HSTSMaxAge time.Duration
}

// OTELConfig defines OpenTelemetry observability settings.
type OTELConfig struct {
	Enabled     bool    // OTEL_ENABLED
	Endpoint    string  // OTEL_EXPORTER_OTLP_ENDPOINT (e.g. "otel:4317")
	Insecure    bool    // OTEL_EXPORTER_OTLP_INSECURE (true if no TLS)
	ServiceName string  // OTEL_SERVICE_NAME (e.g. "go-cuit-backend")
	SampleRatio float64 // OTEL_TRACES_SAMPLER_ARG in [0..1]
}

// AFIPConfig holds the settings for the outbound padrón A5 lookup: the
// service URL, the pre-obtained WSAA token and sign, and the CUIT on whose
// behalf queries are issued. Token and sign carry no rotation logic; the
// process is restarted with fresh credentials when they expire.
type AFIPConfig struct {
	URL              string        // AFIP_URL
	Token            string        // CURRENTTOKEN / AFIP_TOKEN (pre-obtained WSAA token)
	Sign             string        // CURRENTSIGN / AFIP_SIGN (signature paired with the token)
	CUITRepresentada string        // AFIP_CUIT_REPRESENTADA (querying entity)
	Timeout          time.Duration // AFIP_TIMEOUT for the outbound HTTP call
}

// DBConfig holds persistence settings. Driver selects between the production
// SQL Server backend and the embedded SQLite backend used for local runs and
// tests. The Encrypt and TrustServerCertificate flags map directly onto the
// SQL Server connection string.
type DBConfig struct {
	Driver                 string // DB_DRIVER: "sqlserver" or "sqlite"
	Server                 string // DB_SERVER
	Port                   int    // DB_PORT
	Database               string // DB_DATABASE
	User                   string // DB_USER
	Password               string // DB_PASSWORD
	Encrypt                bool   // DB_ENCRYPT: TLS on the connection
	TrustServerCertificate bool   // DB_TRUST_SERVER_CERTIFICATE: accept self-signed
	SQLitePath             string // DB_PATH (sqlite driver only)
}

// Config holds all configuration values for the application.
type Config struct {
	// Server
	Port              string        // just the number
	ReadTimeout       time.Duration // e.g. 15s
	ReadHeaderTimeout time.Duration // e.g. 10s
	WriteTimeout      time.Duration // e.g. 30s
	IdleTimeout       time.Duration // e.g. 60s
	MaxHeaderBytes    int           // bytes
	GinMode           string        // debug|release|test

	// Logging
	LogLevel  string // debug|info|warn|error|fatal|panic
	LogPretty bool   // pretty console logs in dev

	// Upstream lookup service
	AFIP AFIPConfig

	// Persistence
	DB DBConfig

	// Web protection
	CORS     CORSConfig
	Security SecurityConfig

	// Observability
	OTEL OTELConfig
}

// defaultCUITRepresentada identifies the entity on whose behalf padrón
// queries are issued when AFIP_CUIT_REPRESENTADA is not set.
const defaultCUITRepresentada = "20144969724"

// MustLoad loads the configuration and panics if validation fails.
func MustLoad() Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}
	return cfg
}

// Load reads configuration from environment variables,
// applies defaults, normalizes values, and validates the result.
func Load() (Config, error) {
	cfg := Config{
		// Server
		Port:              getenv("PORT", "5000"),
		ReadTimeout:       getdur("READ_TIMEOUT", 15*time.Second),
		ReadHeaderTimeout: getdur("READ_HEADER_TIMEOUT", 10*time.Second),
		WriteTimeout:      getdur("WRITE_TIMEOUT", 30*time.Second),
		IdleTimeout:       getdur("IDLE_TIMEOUT", 60*time.Second),
		MaxHeaderBytes:    getint("MAX_HEADER_BYTES", 1<<20),
		GinMode:           strings.ToLower(getenv("GIN_MODE", "release")),

		// Logging
		LogLevel:  strings.ToLower(getenv("LOG_LEVEL", "info")),
		LogPretty: getbool("LOG_PRETTY", false),

		// Upstream
		AFIP: AFIPConfig{
			URL:              getenv("AFIP_URL", "https://aws.afip.gov.ar/sr-padron/webservices/personaServiceA5"),
			Token:            getenv("CURRENTTOKEN", os.Getenv("AFIP_TOKEN")),
			Sign:             getenv("CURRENTSIGN", os.Getenv("AFIP_SIGN")),
			CUITRepresentada: getenv("AFIP_CUIT_REPRESENTADA", defaultCUITRepresentada),
			Timeout:          getdur("AFIP_TIMEOUT", 30*time.Second),
		},

		// Persistence
		DB: DBConfig{
			Driver:                 strings.ToLower(getenv("DB_DRIVER", "sqlserver")),
			Server:                 getenv("DB_SERVER", "localhost"),
			Port:                   getint("DB_PORT", 1433),
			Database:               getenv("DB_DATABASE", ""),
			User:                   getenv("DB_USER", ""),
			Password:               getenv("DB_PASSWORD", ""),
			Encrypt:                getbool("DB_ENCRYPT", true),
			TrustServerCertificate: getbool("DB_TRUST_SERVER_CERTIFICATE", true),
			SQLitePath:             getenv("DB_PATH", "audit.db"),
		},

		// Web protection
		CORS: CORSConfig{
			AllowedOrigins: splitCSV(getenv("CORS_ALLOWED_ORIGINS", "")),
		},
		Security: SecurityConfig{
			EnableHSTS: getbool("ENABLE_HSTS", false),
			HSTSMaxAge: getdur("HSTS_MAX_AGE", 180*24*time.Hour),
		},

		// Observability (OpenTelemetry)
		OTEL: OTELConfig{
			Enabled:     getbool("OTEL_ENABLED", false),
			Endpoint:    getenv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317"),
			Insecure:    getbool("OTEL_EXPORTER_OTLP_INSECURE", true),
			ServiceName: getenv("OTEL_SERVICE_NAME", "go-cuit-backend"),
			SampleRatio: getfloat("OTEL_TRACES_SAMPLER_ARG", 1.0),
		},
	}

	// --- normalization ---
	if cfg.LogLevel == "warning" {
		cfg.LogLevel = "warn"
	}
	switch cfg.GinMode {
	case "debug", "release", "test":
	default:
		cfg.GinMode = "release"
	}

	// --- validation ---
	switch cfg.LogLevel {
	case "debug", "info", "warn", "error", "fatal", "panic":
	default:
		return cfg, errors.New("LOG_LEVEL must be one of: debug, info, warn, error, fatal, panic")
	}
	if strings.TrimSpace(cfg.Port) == "" {
		return cfg, errors.New("PORT must not be empty")
	}
	if cfg.ReadTimeout <= 0 || cfg.ReadHeaderTimeout <= 0 || cfg.WriteTimeout <= 0 || cfg.IdleTimeout <= 0 {
		return cfg, errors.New("timeouts must be positive durations")
	}
	if cfg.MaxHeaderBytes <= 0 {
		return cfg, errors.New("MAX_HEADER_BYTES must be > 0")
	}
	if strings.TrimSpace(cfg.AFIP.URL) == "" {
		return cfg, errors.New("AFIP_URL must not be empty")
	}
	if strings.TrimSpace(cfg.AFIP.Token) == "" {
		return cfg, errors.New("CURRENTTOKEN (or AFIP_TOKEN) must not be empty")
	}
	if strings.TrimSpace(cfg.AFIP.Sign) == "" {
		return cfg, errors.New("CURRENTSIGN (or AFIP_SIGN) must not be empty")
	}
	if strings.TrimSpace(cfg.AFIP.CUITRepresentada) == "" {
		return cfg, errors.New("AFIP_CUIT_REPRESENTADA must not be empty")
	}
	if cfg.AFIP.Timeout <= 0 {
		return cfg, errors.New("AFIP_TIMEOUT must be > 0")
	}
	switch cfg.DB.Driver {
	case "sqlserver":
		if strings.TrimSpace(cfg.DB.Database) == "" {
			return cfg, errors.New("DB_DATABASE must not be empty for the sqlserver driver")
		}
	case "sqlite":
		if strings.TrimSpace(cfg.DB.SQLitePath) == "" {
			return cfg, errors.New("DB_PATH must not be empty for the sqlite driver")
		}
	default:
		return cfg, errors.New("DB_DRIVER must be one of: sqlserver, sqlite")
	}
	if cfg.Security.HSTSMaxAge < 0 {
		return cfg, errors.New("HSTS_MAX_AGE must be >= 0")
	}
	if cfg.OTEL.SampleRatio < 0 || cfg.OTEL.SampleRatio > 1 {
		return cfg, errors.New("OTEL_TRACES_SAMPLER_ARG must be in [0,1]")
	}

	return cfg, nil
}

// ---- helpers (no external deps) ----

func getenv(k, def string) string {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		return v
	}
	return def
}

func getfloat(k string, def float64) float64 {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}

func getint(k string, def int) int {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func getbool(k string, def bool) bool {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "1", "true", "yes", "y", "on":
			return true
		case "0", "false", "no", "n", "off":
			return false
		}
	}
	return def
}

func getdur(k string, def time.Duration) time.Duration {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func splitCSV(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		t := strings.TrimSpace(p)
		if t != "" {
			out = append(out, t)
		}
	}
	return out
}
