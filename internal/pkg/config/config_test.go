package config

import (
	"context"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
)

func TestLoadWithLookuper_Defaults(t *testing.T) {
	cfg, err := LoadWithLookuper(context.Background(), envconfig.MapLookuper(map[string]string{}))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Port != "5000" {
		t.Fatalf("expected port 5000, got %s", cfg.Port)
	}
	if cfg.RequestTimeout != 10*time.Second {
		t.Fatalf("expected 10s request timeout, got %s", cfg.RequestTimeout)
	}
	if cfg.Session.CacheTTL != time.Hour || !cfg.Session.CookieSecure {
		t.Fatalf("unexpected session config: %+v", cfg.Session)
	}
	if len(cfg.CORS.Origins) != 1 || cfg.CORS.Origins[0] != "http://localhost:3000" {
		t.Fatalf("unexpected cors origins: %v", cfg.CORS.Origins)
	}
	if cfg.FeaturedArtist != "MrObvious" {
		t.Fatalf("unexpected featured artist: %s", cfg.FeaturedArtist)
	}
	if cfg.NATS.URL != "" || cfg.NATS.SubjectPrefix != "zanith.activity" {
		t.Fatalf("unexpected nats config: %+v", cfg.NATS)
	}
	if !cfg.IsDevelopment() {
		t.Fatalf("expected development env by default")
	}
}

func TestLoadWithLookuper_Overrides(t *testing.T) {
	cfg, err := LoadWithLookuper(context.Background(), envconfig.MapLookuper(map[string]string{
		"PORT":             "8080",
		"ENV":              "production",
		"MONGO_URI":        "mongodb://db:27017",
		"CORS_ORIGINS":     "https://a.example,https://b.example",
		"MEDIA_API_SECRET": "shh",
		"PLAYBACK_WORKERS": "8",
		"COOKIE_SECURE":    "false",
		"NATS_URL":         "nats://broker:4222",
	}))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Port != "8080" || cfg.Mongo.URI != "mongodb://db:27017" {
		t.Fatalf("overrides not applied: %+v", cfg)
	}
	if len(cfg.CORS.Origins) != 2 {
		t.Fatalf("expected 2 cors origins, got %v", cfg.CORS.Origins)
	}
	if cfg.Media.APISecret != "shh" || cfg.Playback.Workers != 8 || cfg.Session.CookieSecure {
		t.Fatalf("unexpected nested config: %+v", cfg)
	}
	if cfg.NATS.URL != "nats://broker:4222" {
		t.Fatalf("expected nats url override, got %q", cfg.NATS.URL)
	}
	if cfg.IsDevelopment() {
		t.Fatalf("production env reported as development")
	}
}
