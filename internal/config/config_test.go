package config

import "testing"

func TestLoadRequiresJWTSecret(t *testing.T) {
	t.Setenv("AUTH_JWT_SECRET", "")
	if _, err := Load(); err == nil {
		t.Fatal("expected error when AUTH_JWT_SECRET is unset")
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("AUTH_JWT_SECRET", "test-secret")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Auth.JWTSecret != "test-secret" {
		t.Errorf("secret = %q", cfg.Auth.JWTSecret)
	}
	if cfg.Auth.TokenTTLMinutes != 60 {
		t.Errorf("token ttl = %d, want 60", cfg.Auth.TokenTTLMinutes)
	}
	if cfg.App.Port != "8080" {
		t.Errorf("port = %q, want 8080", cfg.App.Port)
	}
	if cfg.Redis.TallyTTL().Seconds() != 15 {
		t.Errorf("tally ttl = %v, want 15s", cfg.Redis.TallyTTL())
	}
}
