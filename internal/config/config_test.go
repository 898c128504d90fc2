package config

import (
	"testing"
	"time"

	gokeyring "github.com/zalando/go-keyring"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("STORE_BACKEND", "")
	t.Setenv("REQUEST_TIMEOUT_MS", "")

	cfg := Load()
	if cfg.StoreBackend != BackendSQLite {
		t.Errorf("StoreBackend: expected sqlite, got %q", cfg.StoreBackend)
	}
	if cfg.RequestTimeout != 5*time.Second {
		t.Errorf("RequestTimeout: expected 5s, got %v", cfg.RequestTimeout)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("STORE_BACKEND", "Postgres")
	t.Setenv("POSTGRES_DSN", "postgres://habit@localhost/habits?sslmode=disable")
	t.Setenv("REQUEST_TIMEOUT_MS", "250")
	t.Setenv("SHOW_TYPING", "true")
	t.Setenv("API_TOKENS", "abc:u1, def:u2,broken,:nouser")

	cfg := Load()
	if cfg.StoreBackend != BackendPostgres {
		t.Errorf("StoreBackend: expected postgres, got %q", cfg.StoreBackend)
	}
	if cfg.RequestTimeout != 250*time.Millisecond {
		t.Errorf("RequestTimeout: expected 250ms, got %v", cfg.RequestTimeout)
	}
	if !cfg.ShowTyping {
		t.Error("ShowTyping should be true")
	}
	if len(cfg.APITokens) != 2 || cfg.APITokens["abc"] != "u1" || cfg.APITokens["def"] != "u2" {
		t.Errorf("APITokens parsed wrong: %v", cfg.APITokens)
	}
}

func TestLoad_PostgresDSNFromKeyring(t *testing.T) {
	gokeyring.MockInit()
	t.Setenv("STORE_BACKEND", "postgres")
	t.Setenv("POSTGRES_DSN", "")

	if err := SetConnectionString("postgres://habit@db/habits"); err != nil {
		t.Fatalf("SetConnectionString: %v", err)
	}

	cfg := Load()
	if cfg.PostgresDSN != "postgres://habit@db/habits" {
		t.Errorf("expected DSN from keyring, got %q", cfg.PostgresDSN)
	}
}

func TestValidate(t *testing.T) {
	base := Config{StoreBackend: BackendSQLite, SQLitePath: "x.db", RequestTimeout: time.Second, Timezone: "UTC"}

	tests := []struct {
		name   string
		mutate func(c *Config)
		ok     bool
	}{
		{"valid", func(c *Config) {}, true},
		{"unknown backend", func(c *Config) { c.StoreBackend = "mysql" }, false},
		{"postgres without dsn", func(c *Config) { c.StoreBackend = BackendPostgres }, false},
		{"zero timeout", func(c *Config) { c.RequestTimeout = 0 }, false},
		{"bad timezone", func(c *Config) { c.Timezone = "Mars/Olympus" }, false},
		{"named timezone", func(c *Config) { c.Timezone = "Asia/Jakarta" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := base
			tt.mutate(&c)
			err := c.Validate()
			if tt.ok && err != nil {
				t.Errorf("expected valid, got %v", err)
			}
			if !tt.ok && err == nil {
				t.Error("expected error")
			}
		})
	}
}
