package config

import "testing"

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("SECRET_KEY", "k")
	t.Setenv("PORT", "")
	t.Setenv("MONGODB_URI", "")
	t.Setenv("MONGODB_DB", "")
	t.Setenv("STORE_BACKEND", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Port != "5001" {
		t.Errorf("Port = %q, want 5001", cfg.Port)
	}
	if cfg.MongoDB != "microblog" {
		t.Errorf("MongoDB = %q, want microblog", cfg.MongoDB)
	}
	if cfg.StoreBackend != "mongo" {
		t.Errorf("StoreBackend = %q, want mongo", cfg.StoreBackend)
	}
}

func TestLoad_RequiresSecret(t *testing.T) {
	t.Setenv("SECRET_KEY", "")

	if _, err := Load(); err == nil {
		t.Fatal("expected error when SECRET_KEY unset")
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("SECRET_KEY", "k")
	t.Setenv("PORT", "9000")
	t.Setenv("STORE_BACKEND", "memory")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Port != "9000" {
		t.Errorf("Port = %q, want 9000", cfg.Port)
	}
	if cfg.StoreBackend != "memory" {
		t.Errorf("StoreBackend = %q, want memory", cfg.StoreBackend)
	}
}
