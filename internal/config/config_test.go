package config

import (
	"os"
	"path/filepath"
	"testing"
)

func env(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func TestFromEnvDefaults(t *testing.T) {
	c, err := FromEnv(env(nil))
	if err != nil {
		t.Fatal(err)
	}
	if c.Addr != ":8080" || c.RateLimit != 5 || c.RateBurst != 10 || c.StaticDir != "./static" || c.BatchWorkers != 0 {
		t.Errorf("defaults %+v", c)
	}
	if c.TLS() || c.AuthEnabled() {
		t.Errorf("TLS or auth enabled by default: %+v", c)
	}
}

func TestFromEnv(t *testing.T) {
	c, err := FromEnv(env(map[string]string{
		"TLS_CERT":               "server.crt",
		"TLS_KEY":                "server.key",
		"TOKEN_KEY":              "k",
		"OPERATOR_LOGIN":         "op",
		"OPERATOR_PASSWORD_HASH": "$2a$10$x",
		"RATE_LIMIT":             "0.5",
		"RATE_BURST":             "3",
		"BATCH_WORKERS":          "4",
	}))
	if err != nil {
		t.Fatal(err)
	}
	if c.Addr != ":443" || !c.TLS() || !c.AuthEnabled() || c.RateLimit != 0.5 || c.RateBurst != 3 || c.BatchWorkers != 4 {
		t.Errorf("unexpected %+v", c)
	}
}

func TestFromEnvErrors(t *testing.T) {
	for _, m := range []map[string]string{
		{"RATE_LIMIT": "fast"},
		{"RATE_BURST": "1.5"},
		{"BATCH_WORKERS": "many"},
		{"TLS_CERT": "only.crt"},
		{"TOKEN_KEY": "k"},
	} {
		if _, err := FromEnv(env(m)); err == nil {
			t.Errorf("%v: expected error", m)
		}
	}
}

func TestLoadDotEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.env")
	if err := os.WriteFile(path, []byte("CANOPY_TEST_ONLY=1\nADDR=:9999\n"), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("ADDR", "")
	os.Unsetenv("ADDR")
	t.Cleanup(func() { os.Unsetenv("CANOPY_TEST_ONLY") })

	c, err := Load(path, filepath.Join(t.TempDir(), "missing.env"))
	if err != nil {
		t.Fatal(err)
	}
	if c.Addr != ":9999" {
		t.Errorf("Addr = %q, want :9999 from the env file", c.Addr)
	}
}
