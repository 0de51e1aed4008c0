package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("GARDEROBA_SEGMENTER_URL", "http://localhost:5001")
	t.Setenv("GARDEROBA_CLASSIFIER_URL", "http://localhost:5002")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Server.Addr != ":8080" {
		t.Errorf("expected default addr :8080, got %q", cfg.Server.Addr)
	}
	if cfg.Vision.Timeout != 60*time.Second {
		t.Errorf("expected default vision timeout 60s, got %v", cfg.Vision.Timeout)
	}
	if cfg.Staging.TTL != 24*time.Hour {
		t.Errorf("expected default staging TTL 24h, got %v", cfg.Staging.TTL)
	}
	if cfg.Staging.ReapSchedule != "@hourly" {
		t.Errorf("expected default reap schedule @hourly, got %q", cfg.Staging.ReapSchedule)
	}
}

func TestLoadMissingVisionURLs(t *testing.T) {
	t.Setenv("GARDEROBA_SEGMENTER_URL", "")
	t.Setenv("GARDEROBA_CLASSIFIER_URL", "")

	if _, err := Load(""); err == nil {
		t.Error("expected error for missing vision URLs")
	}
}

func TestLoadInvalidDuration(t *testing.T) {
	t.Setenv("GARDEROBA_SEGMENTER_URL", "http://localhost:5001")
	t.Setenv("GARDEROBA_CLASSIFIER_URL", "http://localhost:5002")
	t.Setenv("GARDEROBA_STAGING_TTL", "soon")

	if _, err := Load(""); err == nil {
		t.Error("expected error for invalid staging TTL")
	}
}
