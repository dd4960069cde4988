package config

import (
	"testing"
	"time"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("DATABASE_URL", "postgres://u:p@localhost/db")
	t.Setenv("JWT_ACCESS_SECRET", "access-secret")
	t.Setenv("JWT_REFRESH_SECRET", "refresh-secret")
	t.Setenv("ENCRYPTION_KEY", "master-key")
}

func TestLoad_Defaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.AccessTokenTTL != 15*time.Minute {
		t.Fatalf("AccessTokenTTL want 15m, got %v", cfg.AccessTokenTTL)
	}
	if cfg.RefreshTokenTTL != 7*24*time.Hour {
		t.Fatalf("RefreshTokenTTL want 7d, got %v", cfg.RefreshTokenTTL)
	}
	if cfg.BcryptCost != 12 {
		t.Fatalf("BcryptCost want 12, got %d", cfg.BcryptCost)
	}
	if cfg.PasswordHasher != "bcrypt" {
		t.Fatalf("PasswordHasher want bcrypt, got %s", cfg.PasswordHasher)
	}
	if cfg.TLSEnabled() {
		t.Fatal("TLS must be off without cert/key")
	}
}

func TestLoad_Overrides(t *testing.T) {
	setRequired(t)
	t.Setenv("JWT_ACCESS_EXPIRY", "2m")
	t.Setenv("JWT_REFRESH_EXPIRY", "3h")
	t.Setenv("REDIS_ADDRESS", "localhost:6379")
	t.Setenv("GRPC_ADDRESS", ":50051")
	t.Setenv("ALLOWED_ORIGINS", "https://app.example.com, https://admin.example.com")
	t.Setenv("ALLOW_CREDENTIALS", "false")
	t.Setenv("HTTPS_CERT_FILE", "cert.pem")
	t.Setenv("HTTPS_KEY_FILE", "key.pem")
	t.Setenv("PASSWORD_HASHER", "ARGON2ID")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.AccessTokenTTL != 2*time.Minute || cfg.RefreshTokenTTL != 3*time.Hour {
		t.Fatalf("ttl overrides ignored: %v / %v", cfg.AccessTokenTTL, cfg.RefreshTokenTTL)
	}
	if len(cfg.AllowedOrigins) != 2 || cfg.AllowedOrigins[1] != "https://admin.example.com" {
		t.Fatalf("origins: %v", cfg.AllowedOrigins)
	}
	if cfg.AllowCredentials {
		t.Fatal("ALLOW_CREDENTIALS=false ignored")
	}
	if !cfg.TLSEnabled() || cfg.PasswordHasher != "argon2id" || cfg.GRPCAddress != ":50051" {
		t.Fatalf("unexpected cfg: %+v", cfg)
	}
}

func TestLoad_MissingEncryptionKey(t *testing.T) {
	setRequired(t)
	t.Setenv("ENCRYPTION_KEY", "")

	if _, err := Load(); err == nil {
		t.Fatal("expected error due to missing ENCRYPTION_KEY, got nil")
	}
}

func TestLoad_SameSecrets(t *testing.T) {
	setRequired(t)
	t.Setenv("JWT_REFRESH_SECRET", "access-secret")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for identical access/refresh secrets")
	}
}

func TestParseDuration(t *testing.T) {
	cases := map[string]time.Duration{
		"15m": 15 * time.Minute,
		"7d":  7 * 24 * time.Hour,
		"1h":  time.Hour,
	}
	for in, want := range cases {
		got, err := parseDuration(in)
		if err != nil || got != want {
			t.Fatalf("%s: got %v err %v", in, got, err)
		}
	}
	if _, err := parseDuration("xd"); err == nil {
		t.Fatal("expected error for xd")
	}
}
