package config

import (
	"strings"
	"testing"
	"time"
)

func mapGetenv(env map[string]string) func(string) string {
	return func(k string) string { return env[k] }
}

func TestLoadFromEnvDefaults(t *testing.T) {
	cfg, err := LoadFromEnv(mapGetenv(nil))
	if err != nil {
		t.Fatalf("LoadFromEnv: %v", err)
	}
	if cfg.Env != "dev" {
		t.Fatalf("expected dev env, got %q", cfg.Env)
	}
	if cfg.Addr != "127.0.0.1:8080" {
		t.Fatalf("unexpected addr %q", cfg.Addr)
	}
	if cfg.SessionTTL != 30*24*time.Hour {
		t.Fatalf("unexpected session ttl %v", cfg.SessionTTL)
	}
	if cfg.ScoreRegular != 1 || cfg.ScoreQualifiers != 2 || cfg.ScoreWorldCup != 3 || cfg.ScoreElite != 10 {
		t.Fatalf("unexpected scoring defaults %+v", cfg)
	}
	if cfg.RankingPageSize != 50 {
		t.Fatalf("unexpected page size %d", cfg.RankingPageSize)
	}
}

func TestLoadFromEnvScoringOverrides(t *testing.T) {
	cfg, err := LoadFromEnv(mapGetenv(map[string]string{
		"APP_SCORE_QUALIFIERS": "4",
		"APP_SCORE_ELITE":      "20",
	}))
	if err != nil {
		t.Fatalf("LoadFromEnv: %v", err)
	}
	if cfg.ScoreQualifiers != 4 || cfg.ScoreElite != 20 {
		t.Fatalf("overrides not applied: %+v", cfg)
	}
}

func TestLoadFromEnvRejectsBadMultiplier(t *testing.T) {
	_, err := LoadFromEnv(mapGetenv(map[string]string{"APP_SCORE_REGULAR": "one"}))
	if err == nil || !strings.Contains(err.Error(), "APP_SCORE_REGULAR") {
		t.Fatalf("expected APP_SCORE_REGULAR error, got %v", err)
	}
}

func TestLoadFromEnvRejectsBadEnv(t *testing.T) {
	_, err := LoadFromEnv(mapGetenv(map[string]string{"APP_ENV": "staging"}))
	if err == nil {
		t.Fatal("expected error for unknown env")
	}
}

func TestLoadFromEnvProdRequirements(t *testing.T) {
	_, err := LoadFromEnv(mapGetenv(map[string]string{
		"APP_ENV":        "prod",
		"APP_PUBLIC_URL": "https://footy.example.com",
		"APP_DB_DSN":     "postgres://localhost/footy",
	}))
	if err == nil || !strings.Contains(err.Error(), "APP_COOKIE_SECRET") {
		t.Fatalf("expected cookie secret error, got %v", err)
	}
}

func TestLoadFromEnvRejectsOversizedPage(t *testing.T) {
	_, err := LoadFromEnv(mapGetenv(map[string]string{"APP_RANKING_PAGE_SIZE": "500"}))
	if err == nil {
		t.Fatal("expected error for oversized page")
	}
}

func TestCookieSecureFollowsPublicURL(t *testing.T) {
	cfg, err := LoadFromEnv(mapGetenv(map[string]string{"APP_PUBLIC_URL": "https://footy.example.com"}))
	if err != nil {
		t.Fatalf("LoadFromEnv: %v", err)
	}
	if !cfg.CookieSecure() {
		t.Fatal("expected secure cookies behind https")
	}
}
