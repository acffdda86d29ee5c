package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestNormalizeAndValidateDefaults(t *testing.T) {
	out, res := NormalizeAndValidate(Config{})

	if !res.OK() {
		t.Fatalf("empty config should validate, got errors: %v", res.Errors)
	}
	if out.App.OutputDir != "output" {
		t.Errorf("OutputDir = %q", out.App.OutputDir)
	}
	if out.Scraper.UserAgent != "Mozilla/5.0" {
		t.Errorf("UserAgent = %q", out.Scraper.UserAgent)
	}
	if out.Scraper.SearchWorkers != 5 {
		t.Errorf("SearchWorkers = %d", out.Scraper.SearchWorkers)
	}
	if out.Scraper.SearchPages != 10 {
		t.Errorf("SearchPages = %d", out.Scraper.SearchPages)
	}
	if out.Campaign.Mailbox != "INBOX" {
		t.Errorf("Mailbox = %q", out.Campaign.Mailbox)
	}
	if out.Campaign.SendsPerSecond != 0.5 {
		t.Errorf("SendsPerSecond = %v", out.Campaign.SendsPerSecond)
	}
}

func TestNormalizeAndValidateCampaignRules(t *testing.T) {
	var cfg Config
	cfg.Campaign.SMTPHost = "smtp.example.com"

	_, res := NormalizeAndValidate(cfg)
	if res.OK() {
		t.Fatal("smtp_host without port and username should fail validation")
	}
	if len(res.Errors) != 2 {
		t.Errorf("got %d errors, want 2: %v", len(res.Errors), res.Errors)
	}

	cfg.Campaign.SMTPPort = 587
	cfg.Campaign.Username = "sam@example.com"
	_, res = NormalizeAndValidate(cfg)
	if !res.OK() {
		t.Errorf("complete smtp config should validate, got %v", res.Errors)
	}
	if len(res.Warnings) == 0 {
		t.Error("empty campaign.from should warn")
	}
}

func TestFetchTimeout(t *testing.T) {
	var cfg Config
	if got := cfg.FetchTimeout(); got != 10*time.Second {
		t.Errorf("default FetchTimeout() = %v, want 10s", got)
	}
	cfg.Scraper.TimeoutSeconds = 3
	if got := cfg.FetchTimeout(); got != 3*time.Second {
		t.Errorf("FetchTimeout() = %v, want 3s", got)
	}
}

func TestSaveAtomicRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yml")

	var cfg Config
	cfg.App.OutputDir = "out"
	cfg.Scraper.TimeoutSeconds = 7

	if err := SaveAtomic(path, cfg); err != nil {
		t.Fatalf("SaveAtomic() error: %v", err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if got.App.OutputDir != "out" || got.Scraper.TimeoutSeconds != 7 {
		t.Errorf("round trip mismatch: %+v", got)
	}

	// Second save keeps the previous file as .bak.
	cfg.Scraper.TimeoutSeconds = 8
	if err := SaveAtomic(path, cfg); err != nil {
		t.Fatalf("second SaveAtomic() error: %v", err)
	}
	if _, err := os.Stat(path + ".bak"); err != nil {
		t.Errorf("backup file missing: %v", err)
	}
}

func TestSaveAtomicRejectsInvalid(t *testing.T) {
	var cfg Config
	cfg.Scraper.TimeoutSeconds = -1

	if err := SaveAtomic(filepath.Join(t.TempDir(), "config.yml"), cfg); err == nil {
		t.Error("invalid config should not save")
	}
}

func TestEnsureUserConfig(t *testing.T) {
	dataDir := t.TempDir()
	defaultPath := filepath.Join(dataDir, "default.yml")
	if err := os.WriteFile(defaultPath, []byte("app:\n  output_dir: out\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	userPath, err := EnsureUserConfig(dataDir, defaultPath)
	if err != nil {
		t.Fatalf("EnsureUserConfig() error: %v", err)
	}
	cfg, err := Load(userPath)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.App.OutputDir != "out" {
		t.Errorf("copied config OutputDir = %q", cfg.App.OutputDir)
	}

	// A user edit survives re-runs.
	if err := os.WriteFile(userPath, []byte("app:\n  output_dir: edited\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := EnsureUserConfig(dataDir, defaultPath); err != nil {
		t.Fatalf("second EnsureUserConfig() error: %v", err)
	}
	cfg, _ = Load(userPath)
	if cfg.App.OutputDir != "edited" {
		t.Error("EnsureUserConfig overwrote an existing user config")
	}
}
