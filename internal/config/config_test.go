package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"HTTP_ADDR", "DATA_PATH", "ALIASES_FILE", "CACHE_TTL", "DATE_DAY_FIRST", "CURRENCY", "DATABASE_URL", "RESERVATIONS_QUERY", "MAX_UPLOAD_MB", "ENABLE_PROFILER"} {
		t.Setenv(key, "")
	}

	cfg := Load("/opt/innsight/Reservations.xlsx")

	if cfg.HTTPAddr != ":8080" {
		t.Errorf("HTTPAddr = %s", cfg.HTTPAddr)
	}
	if cfg.DataPath != "/opt/innsight/Reservations.xlsx" {
		t.Errorf("DataPath = %s", cfg.DataPath)
	}
	if cfg.CacheTTL != 0 || cfg.DateDayFirst || cfg.Currency != "R$" {
		t.Errorf("Unexpected defaults %+v", cfg)
	}
	if cfg.UsePostgres() {
		t.Error("Postgres should be disabled without DATABASE_URL")
	}
	if cfg.MaxUploadBytes() != 20<<20 {
		t.Errorf("MaxUploadBytes = %d", cfg.MaxUploadBytes())
	}
	if cfg.EnableProfiler {
		t.Error("Profiler should be disabled by default")
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9000")
	t.Setenv("DATA_PATH", "s3://bucket/reservations.xlsx")
	t.Setenv("CACHE_TTL", "90")
	t.Setenv("DATE_DAY_FIRST", "true")
	t.Setenv("CURRENCY", "€")
	t.Setenv("DATABASE_URL", "postgres://localhost/innsight")
	t.Setenv("MAX_UPLOAD_MB", "5")
	t.Setenv("ENABLE_PROFILER", "yes")

	cfg := Load("ignored")

	if cfg.HTTPAddr != ":9000" || cfg.DataPath != "s3://bucket/reservations.xlsx" {
		t.Errorf("Unexpected addresses %+v", cfg)
	}
	if cfg.CacheTTL != 90*time.Second {
		t.Errorf("CacheTTL = %v", cfg.CacheTTL)
	}
	if !cfg.DateDayFirst || cfg.Currency != "€" || !cfg.UsePostgres() {
		t.Errorf("Unexpected values %+v", cfg)
	}
	if cfg.MaxUploadMB != 5 {
		t.Errorf("MaxUploadMB = %d", cfg.MaxUploadMB)
	}
	if !cfg.EnableProfiler {
		t.Error("ENABLE_PROFILER=yes should enable the profiler")
	}
}

func TestEnvHelpers(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  time.Duration
	}{
		{"duration", "10m", 10 * time.Minute},
		{"seconds", "30", 30 * time.Second},
		{"invalid", "soon", time.Hour},
		{"negative", "-5s", time.Hour},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("TEST_TTL", tt.value)
			if got := getEnvAsDurationOrDefault("TEST_TTL", time.Hour); got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}

	t.Setenv("TEST_BOOL", "maybe")
	if !getEnvAsBoolOrDefault("TEST_BOOL", true) {
		t.Error("Invalid bool should fall back to the default")
	}
	t.Setenv("TEST_INT", "-3")
	if getEnvAsIntOrDefault("TEST_INT", 7) != 7 {
		t.Error("Non-positive int should fall back to the default")
	}
}
