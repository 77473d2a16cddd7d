package config

import (
	"reflect"
	"strings"
	"testing"
	"time"
)

// setRequired sets the minimum env for Load() to validate.
func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("CURRENTTOKEN", "tok")
	t.Setenv("CURRENTSIGN", "sign")
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DB_PATH", "audit_test.db")
}

// --- MustLoad ---

func TestMustLoad_PanicsOnInvalidConfig(t *testing.T) {
	setRequired(t)
	t.Setenv("LOG_LEVEL", "verbose") // invalid -> Load() error
	defer func() {
		if r := recover(); r == nil {
			t.Fatalf("MustLoad should panic on invalid config")
		}
	}()
	_ = MustLoad()
}

// --- Load success + normalization + parsing ---

func TestLoad_Success_DefaultsAndOverrides(t *testing.T) {
	setRequired(t)

	// Server timeouts / sizes (valid)
	t.Setenv("PORT", "8088")
	t.Setenv("READ_TIMEOUT", "2s")
	t.Setenv("READ_HEADER_TIMEOUT", "1s")
	t.Setenv("WRITE_TIMEOUT", "3s")
	t.Setenv("IDLE_TIMEOUT", "4s")
	t.Setenv("MAX_HEADER_BYTES", "8192")
	t.Setenv("GIN_MODE", "weird") // will normalize to "release"

	// Logging
	t.Setenv("LOG_LEVEL", "warning") // will normalize to "warn"
	t.Setenv("LOG_PRETTY", "yes")

	// Upstream
	t.Setenv("AFIP_URL", "https://example.invalid/personaServiceA5")
	t.Setenv("AFIP_CUIT_REPRESENTADA", "20999999999")
	t.Setenv("AFIP_TIMEOUT", "bogus") // parse failure -> default 30s

	// Web protection
	t.Setenv("CORS_ALLOWED_ORIGINS", " https://a.com , , http://b ")
	t.Setenv("ENABLE_HSTS", "TRUE")
	t.Setenv("HSTS_MAX_AGE", "24h")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Port != "8088" {
		t.Errorf("Port = %q", cfg.Port)
	}
	if cfg.ReadTimeout != 2*time.Second || cfg.WriteTimeout != 3*time.Second {
		t.Errorf("timeouts = %v/%v", cfg.ReadTimeout, cfg.WriteTimeout)
	}
	if cfg.MaxHeaderBytes != 8192 {
		t.Errorf("MaxHeaderBytes = %d", cfg.MaxHeaderBytes)
	}
	if cfg.GinMode != "release" {
		t.Errorf("GinMode = %q (should normalize)", cfg.GinMode)
	}
	if cfg.LogLevel != "warn" {
		t.Errorf("LogLevel = %q (should normalize)", cfg.LogLevel)
	}
	if !cfg.LogPretty {
		t.Errorf("LogPretty should parse 'yes' as true")
	}
	if cfg.AFIP.URL != "https://example.invalid/personaServiceA5" {
		t.Errorf("AFIP.URL = %q", cfg.AFIP.URL)
	}
	if cfg.AFIP.Token != "tok" || cfg.AFIP.Sign != "sign" {
		t.Errorf("AFIP credentials = %q/%q", cfg.AFIP.Token, cfg.AFIP.Sign)
	}
	if cfg.AFIP.CUITRepresentada != "20999999999" {
		t.Errorf("CUITRepresentada = %q", cfg.AFIP.CUITRepresentada)
	}
	if cfg.AFIP.Timeout != 30*time.Second {
		t.Errorf("AFIP.Timeout = %v (bad value should fall back)", cfg.AFIP.Timeout)
	}
	if cfg.DB.Driver != "sqlite" || cfg.DB.SQLitePath != "audit_test.db" {
		t.Errorf("DB = %+v", cfg.DB)
	}
	if want := []string{"https://a.com", "http://b"}; !reflect.DeepEqual(cfg.CORS.AllowedOrigins, want) {
		t.Errorf("AllowedOrigins = %v", cfg.CORS.AllowedOrigins)
	}
	if !cfg.Security.EnableHSTS || cfg.Security.HSTSMaxAge != 24*time.Hour {
		t.Errorf("Security = %+v", cfg.Security)
	}
}

func TestLoad_Defaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != "5000" {
		t.Errorf("default Port = %q, want 5000", cfg.Port)
	}
	if !strings.Contains(cfg.AFIP.URL, "aws.afip.gov.ar") {
		t.Errorf("default AFIP.URL = %q", cfg.AFIP.URL)
	}
	if cfg.AFIP.CUITRepresentada != defaultCUITRepresentada {
		t.Errorf("default CUITRepresentada = %q", cfg.AFIP.CUITRepresentada)
	}
	if cfg.OTEL.Enabled {
		t.Errorf("OTEL should default to disabled")
	}
	if !cfg.DB.Encrypt || !cfg.DB.TrustServerCertificate {
		t.Errorf("DB TLS flags should default to true: %+v", cfg.DB)
	}
}

func TestLoad_AlternateTokenVars(t *testing.T) {
	t.Setenv("AFIP_TOKEN", "tok-alt")
	t.Setenv("AFIP_SIGN", "sign-alt")
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DB_PATH", "x.db")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.AFIP.Token != "tok-alt" || cfg.AFIP.Sign != "sign-alt" {
		t.Fatalf("AFIP_* fallback vars not honored: %q/%q", cfg.AFIP.Token, cfg.AFIP.Sign)
	}
}

// --- validation failures ---

func TestLoad_ValidationErrors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want string
	}{
		{"bad_log_level", map[string]string{"LOG_LEVEL": "loud"}, "LOG_LEVEL"},
		{"missing_token", map[string]string{"CURRENTTOKEN": ""}, "CURRENTTOKEN"},
		{"missing_sign", map[string]string{"CURRENTSIGN": ""}, "CURRENTSIGN"},
		{"bad_driver", map[string]string{"DB_DRIVER": "oracle"}, "DB_DRIVER"},
		{"sqlserver_needs_db", map[string]string{"DB_DRIVER": "sqlserver"}, "DB_DATABASE"},
		{"bad_sample_ratio", map[string]string{"OTEL_TRACES_SAMPLER_ARG": "1.5"}, "OTEL_TRACES_SAMPLER_ARG"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			setRequired(t)
			for k, v := range tc.env {
				t.Setenv(k, v)
			}
			// t.Setenv cannot unset; empty means "use default", so force the
			// empty-required cases by clearing both variants.
			if tc.name == "missing_token" {
				t.Setenv("AFIP_TOKEN", "")
			}
			if tc.name == "missing_sign" {
				t.Setenv("AFIP_SIGN", "")
			}

			_, err := Load()
			if err == nil {
				t.Fatalf("expected error")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("err = %v, want mention of %s", err, tc.want)
			}
		})
	}
}
