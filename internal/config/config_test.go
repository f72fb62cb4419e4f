package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(RoleOrder)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Listen.GRPCPort != "50052" {
		t.Errorf("GRPCPort = %q, want 50052", cfg.Listen.GRPCPort)
	}
	if cfg.UserAddr != "localhost:50051" {
		t.Errorf("UserAddr = %q", cfg.UserAddr)
	}
	if cfg.Timeouts.GetUser != 2*time.Second || cfg.Timeouts.ListOrders != 3*time.Second {
		t.Errorf("unexpected timeouts: %+v", cfg.Timeouts)
	}
	if cfg.Ready.Attempts != 20 || cfg.Ready.Interval != 200*time.Millisecond {
		t.Errorf("unexpected gate: %+v", cfg.Ready)
	}
	if !cfg.HTTPEnabled() {
		t.Error("HTTP should be enabled by default")
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("USERSVC_ADDR", "users:9000")
	t.Setenv("CELERIX_GRPC_PORT", "6000")
	t.Setenv("CELERIX_HTTP_PORT", "off")
	t.Setenv("CELERIX_READY_INTERVAL", "50ms")
	t.Setenv("CELERIX_MAX_WORKERS", "4")

	cfg, err := Load(RoleReport)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.UserAddr != "users:9000" {
		t.Errorf("UserAddr = %q", cfg.UserAddr)
	}
	if cfg.Listen.GRPCPort != "6000" {
		t.Errorf("GRPCPort = %q", cfg.Listen.GRPCPort)
	}
	if cfg.HTTPEnabled() {
		t.Error("HTTP should be disabled")
	}
	if cfg.Ready.Interval != 50*time.Millisecond {
		t.Errorf("Interval = %v", cfg.Ready.Interval)
	}
	if cfg.MaxWorkers != 4 {
		t.Errorf("MaxWorkers = %d", cfg.MaxWorkers)
	}
}

func TestLoad_YAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "celerix.yaml")
	body := `
env: production
max_workers: 32
order_addr: orders.internal:50052
services:
  user:
    grpc_port: "7051"
timeouts:
  get_user: 750ms
ready:
  attempts: 3
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("CELERIX_CONFIG_PATH", path)

	cfg, err := Load(RoleUser)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Env != "production" || cfg.MaxWorkers != 32 {
		t.Errorf("unexpected top-level values: env=%q workers=%d", cfg.Env, cfg.MaxWorkers)
	}
	if cfg.Listen.GRPCPort != "7051" || cfg.Listen.HTTPPort != "8081" {
		t.Errorf("unexpected listen: %+v", cfg.Listen)
	}
	if cfg.OrderAddr != "orders.internal:50052" {
		t.Errorf("OrderAddr = %q", cfg.OrderAddr)
	}
	if cfg.Timeouts.GetUser != 750*time.Millisecond {
		t.Errorf("GetUser timeout = %v", cfg.Timeouts.GetUser)
	}
	if cfg.Timeouts.ListUsers != 3*time.Second {
		t.Errorf("ListUsers timeout should keep default, got %v", cfg.Timeouts.ListUsers)
	}
	if cfg.Ready.Attempts != 3 || cfg.Ready.Interval != 200*time.Millisecond {
		t.Errorf("unexpected gate: %+v", cfg.Ready)
	}
}

func TestLoad_Invalid(t *testing.T) {
	t.Setenv("CELERIX_MAX_WORKERS", "zero")
	if _, err := Load(RoleUser); err == nil {
		t.Fatal("expected error for non-numeric worker count")
	}

	t.Setenv("CELERIX_MAX_WORKERS", "0")
	if _, err := Load(RoleUser); err == nil {
		t.Fatal("expected error for zero workers")
	}

	t.Setenv("CELERIX_MAX_WORKERS", "")
	if _, err := Load(Role("billing")); err == nil {
		t.Fatal("expected error for unknown role")
	}
}

func TestLoad_TimeoutEnv(t *testing.T) {
	env := map[string]time.Duration{
		"CELERIX_TIMEOUT_GET_USER":    1 * time.Second,
		"CELERIX_TIMEOUT_LIST_USERS":  2 * time.Second,
		"CELERIX_TIMEOUT_WRITE_USER":  3 * time.Second,
		"CELERIX_TIMEOUT_GET_ORDER":   4 * time.Second,
		"CELERIX_TIMEOUT_LIST_ORDERS": 5 * time.Second,
		"CELERIX_TIMEOUT_WRITE_ORDER": 6 * time.Second,
		"CELERIX_TIMEOUT_REPORT":      7 * time.Second,
	}
	for k, v := range env {
		t.Setenv(k, v.String())
	}

	cfg, err := Load(RoleReport)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	got := map[string]time.Duration{
		"CELERIX_TIMEOUT_GET_USER":    cfg.Timeouts.GetUser,
		"CELERIX_TIMEOUT_LIST_USERS":  cfg.Timeouts.ListUsers,
		"CELERIX_TIMEOUT_WRITE_USER":  cfg.Timeouts.WriteUser,
		"CELERIX_TIMEOUT_GET_ORDER":   cfg.Timeouts.GetOrder,
		"CELERIX_TIMEOUT_LIST_ORDERS": cfg.Timeouts.ListOrders,
		"CELERIX_TIMEOUT_WRITE_ORDER": cfg.Timeouts.WriteOrder,
		"CELERIX_TIMEOUT_REPORT":      cfg.Timeouts.Report,
	}
	for k, want := range env {
		if got[k] != want {
			t.Errorf("%s: got %v, want %v", k, got[k], want)
		}
	}
}

func TestLoad_TimeoutEnvInvalid(t *testing.T) {
	t.Setenv("CELERIX_TIMEOUT_REPORT", "soon")
	if _, err := Load(RoleReport); err == nil {
		t.Fatal("expected error for unparsable timeout")
	}
}
