// ABOUTME: Tests for YAML config loading, env expansion, and validation
// ABOUTME: The signing secret is mandatory and must meet the minimum length

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

const validSecret = "config-test-signing-secret-32-b!"

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "taskd.yaml")
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	return path
}

func TestLoad_Valid(t *testing.T) {
	path := writeConfig(t, `
server:
  http_addr: "0.0.0.0:9000"
database:
  path: "/tmp/test-tasks.db"
auth:
  jwt_secret: "`+validSecret+`"
  token_ttl: "12h"
cors:
  allowed_origins:
    - "http://localhost:5173"
logging:
  level: "debug"
  format: "json"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Server.HTTPAddr != "0.0.0.0:9000" {
		t.Errorf("HTTPAddr = %q", cfg.Server.HTTPAddr)
	}
	if cfg.Database.Path != "/tmp/test-tasks.db" {
		t.Errorf("Database.Path = %q", cfg.Database.Path)
	}
	if cfg.Auth.TokenTTL != 12*time.Hour {
		t.Errorf("TokenTTL = %v, want 12h", cfg.Auth.TokenTTL)
	}
	if len(cfg.CORS.AllowedOrigins) != 1 || cfg.CORS.AllowedOrigins[0] != "http://localhost:5173" {
		t.Errorf("AllowedOrigins = %v", cfg.CORS.AllowedOrigins)
	}
	if cfg.Logging.Level != "debug" || cfg.Logging.Format != "json" {
		t.Errorf("Logging = %+v", cfg.Logging)
	}
}

func TestLoad_Defaults(t *testing.T) {
	path := writeConfig(t, `
auth:
  jwt_secret: "`+validSecret+`"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Server.HTTPAddr != "127.0.0.1:4000" {
		t.Errorf("default HTTPAddr = %q", cfg.Server.HTTPAddr)
	}
	if cfg.Auth.TokenTTL != 24*time.Hour {
		t.Errorf("default TokenTTL = %v, want 24h", cfg.Auth.TokenTTL)
	}
	if cfg.Logging.Level != "info" || cfg.Logging.Format != "text" {
		t.Errorf("default Logging = %+v", cfg.Logging)
	}
}

func TestLoad_EnvExpansion(t *testing.T) {
	t.Setenv("TASKD_TEST_SECRET", validSecret)

	path := writeConfig(t, `
auth:
  jwt_secret: "${TASKD_TEST_SECRET}"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Auth.JWTSecret != validSecret {
		t.Errorf("JWTSecret = %q, want expanded env value", cfg.Auth.JWTSecret)
	}
}

func TestLoad_MissingSecret(t *testing.T) {
	path := writeConfig(t, `
server:
  http_addr: "127.0.0.1:4000"
`)

	_, err := Load(path)
	if err == nil {
		t.Fatal("Load should fail without jwt_secret")
	}
	if !strings.Contains(err.Error(), "jwt_secret") {
		t.Errorf("error = %v, want mention of jwt_secret", err)
	}
}

func TestLoad_ShortSecret(t *testing.T) {
	path := writeConfig(t, `
auth:
  jwt_secret: "too-short"
`)

	if _, err := Load(path); err == nil {
		t.Fatal("Load should reject a short jwt_secret")
	}
}

func TestLoad_InvalidTokenTTL(t *testing.T) {
	path := writeConfig(t, `
auth:
  jwt_secret: "`+validSecret+`"
  token_ttl: "soon"
`)

	if _, err := Load(path); err == nil {
		t.Fatal("Load should reject an unparsable token_ttl")
	}
}

func TestLoad_NegativeTokenTTL(t *testing.T) {
	path := writeConfig(t, `
auth:
  jwt_secret: "`+validSecret+`"
  token_ttl: "-1h"
`)

	if _, err := Load(path); err == nil {
		t.Fatal("Load should reject a non-positive token_ttl")
	}
}

func TestLoad_InvalidLoggingLevel(t *testing.T) {
	path := writeConfig(t, `
auth:
  jwt_secret: "`+validSecret+`"
logging:
  level: "verbose"
`)

	if _, err := Load(path); err == nil {
		t.Fatal("Load should reject an unknown logging level")
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("Load should fail for a missing file")
	}
}
