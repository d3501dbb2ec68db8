package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestInit(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "deploy.yml")
	if err := os.WriteFile(p, []byte(`mysql:
  db_name: "accounts"
  ip: "127.0.0.1"
  port: 3306
  username: ""
  password: ""
  max_open_conns: 32

redis:
  ip: "127.0.0.1"
  port: 6379
  password: ""
  db: 0

jwt:
  access_expiration: 10
  refresh_expiration: 20
  access_token_secret: "test_secret"
  refresh_token_secret: "test_secret"
  issuer: "test_issuer"

session:
  store_prefix: "auth_session:"
  claims_prefix: "auth_claims:"
  name: "auth_session_id"
  path: "/"
  domain: ""
  max_age: 604800
  secure: false
  http_only: true
  same_site: "Strict"

password:
  iterations: 20000

verification:
  code_length: 8
  ttl_seconds: 300

mail:
  host: "smtp.example.com"
  port: 587
  address: "noreply@example.com"
  name: "Accounts"
`), 0600); err != nil {
		t.Fatalf("write config file: %v", err)
	}

	Init(p)
	if got := GetJWTConfig().Issuer; got != "test_issuer" {
		t.Fatalf("issuer mismatch: got=%q", got)
	}
	if got := GetMySQLConf().MaxOpenConns; got != 32 {
		t.Fatalf("max_open_conns mismatch: got=%d", got)
	}
	if got := GetSessionConf().ClaimsPrefix; got != "auth_claims:" {
		t.Fatalf("claims_prefix mismatch: got=%q", got)
	}
	if got := GetPasswordConf().Iterations; got != 20000 {
		t.Fatalf("iterations mismatch: got=%d", got)
	}
	if got := GetVerificationConf().TTLSeconds; got != 300 {
		t.Fatalf("ttl mismatch: got=%d", got)
	}
	if got := GetMailConf().Host; got != "smtp.example.com" {
		t.Fatalf("mail host mismatch: got=%q", got)
	}
}

func TestInit_ReplacesPreviousConfig(t *testing.T) {
	dir := t.TempDir()
	first := filepath.Join(dir, "first.yml")
	second := filepath.Join(dir, "second.yml")
	if err := os.WriteFile(first, []byte("password:\n  iterations: 30000\n"), 0600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(second, []byte("jwt:\n  issuer: \"x\"\n"), 0600); err != nil {
		t.Fatal(err)
	}

	Init(first)
	Init(second)
	if got := GetPasswordConf().Iterations; got != 0 {
		t.Fatalf("stale iterations: got=%d", got)
	}
}
