package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.TargetURL != "https://sih.gov.in/sih2025PS" {
		t.Errorf("TargetURL: got %q", cfg.TargetURL)
	}
	if cfg.SubmissionThreshold != 200 {
		t.Errorf("SubmissionThreshold: got %d, want 200", cfg.SubmissionThreshold)
	}
	if cfg.FilterCategory != "software" {
		t.Errorf("FilterCategory: got %q, want software", cfg.FilterCategory)
	}
	if cfg.MaxPages != 20 || cfg.MaxStalls != 3 {
		t.Errorf("MaxPages/MaxStalls: got %d/%d, want 20/3", cfg.MaxPages, cfg.MaxStalls)
	}
	if len(cfg.SubmissionTotals) != 2 || cfg.SubmissionTotals[0] != 500 || cfg.SubmissionTotals[1] != 1000 {
		t.Errorf("SubmissionTotals: got %v, want [500 1000]", cfg.SubmissionTotals)
	}
	if cfg.PostgresEnabled {
		t.Error("PostgresEnabled should default to false")
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("SUBMISSION_THRESHOLD", "150")
	t.Setenv("FILTER_CATEGORY", "Hardware")
	t.Setenv("SUBMISSION_TOTALS", "250, 750")
	t.Setenv("HEADLESS", "true")
	t.Setenv("SETTLE_DELAY_MS", "250")

	cfg := Load()

	if cfg.SubmissionThreshold != 150 {
		t.Errorf("SubmissionThreshold: got %d, want 150", cfg.SubmissionThreshold)
	}
	if cfg.FilterCategory != "Hardware" {
		t.Errorf("FilterCategory: got %q, want Hardware", cfg.FilterCategory)
	}
	if len(cfg.SubmissionTotals) != 2 || cfg.SubmissionTotals[1] != 750 {
		t.Errorf("SubmissionTotals: got %v, want [250 750]", cfg.SubmissionTotals)
	}
	if !cfg.Headless {
		t.Error("Headless should be true")
	}
	if cfg.SettleDelay() != 250*time.Millisecond {
		t.Errorf("SettleDelay: got %v, want 250ms", cfg.SettleDelay())
	}
}

func TestGetEnvFallbacks(t *testing.T) {
	t.Setenv("MAX_PAGES", "many")
	t.Setenv("HEADLESS", "maybe")
	t.Setenv("SUBMISSION_TOTALS", "500,x")

	if got := getEnvInt("MAX_PAGES", 20); got != 20 {
		t.Errorf("getEnvInt with bad value = %d; want 20", got)
	}
	if got := getEnvBool("HEADLESS", false); got {
		t.Error("getEnvBool with bad value should fall back to false")
	}
	if got := getEnvIntList("SUBMISSION_TOTALS", []int{1}); len(got) != 1 || got[0] != 1 {
		t.Errorf("getEnvIntList with bad element = %v; want [1]", got)
	}
}

func TestDSN(t *testing.T) {
	cfg := &Config{
		PostgresHost: "db", PostgresPort: "5433", PostgresUser: "u",
		PostgresPassword: "p", PostgresDB: "sih", PostgresSSLMode: "disable",
	}
	want := "host=db port=5433 user=u password=p dbname=sih sslmode=disable"
	if got := cfg.DSN(); got != want {
		t.Errorf("DSN() = %q; want %q", got, want)
	}
}
