package config

import (
	"testing"
	"time"
)

func TestNewDefaults(t *testing.T) {
	cfg, err := New()
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if cfg.Port != 8080 || cfg.Addr() != ":8080" {
		t.Fatalf("unexpected port: %d", cfg.Port)
	}
	if cfg.BankAPIBaseURL != "http://localhost:3000" {
		t.Fatalf("unexpected base url: %s", cfg.BankAPIBaseURL)
	}
	if cfg.NavigationDelay != 2*time.Second {
		t.Fatalf("NavigationDelay = %v, want 2s", cfg.NavigationDelay)
	}
	if cfg.SessionBackend != SessionMemory {
		t.Fatalf("SessionBackend = %q, want memory", cfg.SessionBackend)
	}
}

func TestNewFirestoreRequiresProject(t *testing.T) {
	t.Setenv("SESSION_BACKEND", "firestore")
	t.Setenv("PROJECTID", "")

	if _, err := New(); err == nil {
		t.Fatal("expected error without PROJECTID")
	}
}

func TestNewRejectsUnknownBackend(t *testing.T) {
	t.Setenv("SESSION_BACKEND", "redis")

	if _, err := New(); err == nil {
		t.Fatal("expected error for unknown backend")
	}
}
