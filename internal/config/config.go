// Package config loads daemon configuration from defaults, an optional YAML
// file, and environment variables, in increasing order of precedence.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/celerix-dev/celerix-commerce/pkg/sdk"
)

// Role names one of the three daemons.
type Role string

const (
	RoleUser   Role = "user"
	RoleOrder  Role = "order"
	RoleReport Role = "report"
)

// Listen holds the ports one daemon binds.
type Listen struct {
	GRPCPort string `yaml:"grpc_port"`
	// HTTPPort serves the management API; "off" disables it.
	HTTPPort string `yaml:"http_port"`
}

// Config holds all configuration for a daemon.
type Config struct {
	Env  string `yaml:"env"`
	Role Role   `yaml:"-"`

	// Listen is resolved for Role from Services.
	Listen   Listen          `yaml:"-"`
	Services map[Role]Listen `yaml:"services"`

	MaxWorkers int `yaml:"max_workers"`

	// Upstream addresses, read once at startup.
	UserAddr   string `yaml:"user_addr"`
	OrderAddr  string `yaml:"order_addr"`
	ReportAddr string `yaml:"report_addr"`

	Timeouts sdk.Timeouts `yaml:"timeouts"`
	Ready    sdk.Gate     `yaml:"ready"`

	NATSURL     string `yaml:"nats_url"`
	OTelEnabled bool   `yaml:"otel_enabled"`
}

func defaultConfig() *Config {
	return &Config{
		Env: "development",
		Services: map[Role]Listen{
			RoleUser:   {GRPCPort: "50051", HTTPPort: "8081"},
			RoleOrder:  {GRPCPort: "50052", HTTPPort: "8082"},
			RoleReport: {GRPCPort: "50053", HTTPPort: "8083"},
		},
		MaxWorkers: 10,
		UserAddr:   "localhost:50051",
		OrderAddr:  "localhost:50052",
		ReportAddr: "localhost:50053",
		Timeouts:   sdk.DefaultTimeouts(),
		Ready:      sdk.DefaultGate(),
	}
}

// Load reads the configuration for role.
func Load(role Role) (*Config, error) {
	cfg := defaultConfig()
	cfg.Role = role

	if path := strings.TrimSpace(os.Getenv("CELERIX_CONFIG_PATH")); path != "" {
		if err := cfg.mergeFile(path); err != nil {
			return nil, err
		}
	}
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) mergeFile(path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	// Unmarshal over the defaults so absent keys keep their default value.
	services := c.Services
	c.Services = nil
	if err := yaml.Unmarshal(b, c); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	for role, l := range c.Services {
		d := services[role]
		if l.GRPCPort != "" {
			d.GRPCPort = l.GRPCPort
		}
		if l.HTTPPort != "" {
			d.HTTPPort = l.HTTPPort
		}
		services[role] = d
	}
	c.Services = services
	return nil
}

func (c *Config) applyEnv() error {
	c.Env = getEnv("LOG_MODE", c.Env)
	c.UserAddr = getEnv("USERSVC_ADDR", c.UserAddr)
	c.OrderAddr = getEnv("ORDERSVC_ADDR", c.OrderAddr)
	c.ReportAddr = getEnv("REPORTSVC_ADDR", c.ReportAddr)
	c.NATSURL = getEnv("CELERIX_NATS_URL", c.NATSURL)
	if v := getEnv("OTEL_ENABLED", ""); v != "" {
		c.OTelEnabled = parseBool(v)
	}

	l := c.Services[c.Role]
	l.GRPCPort = getEnv("CELERIX_GRPC_PORT", l.GRPCPort)
	l.HTTPPort = getEnv("CELERIX_HTTP_PORT", l.HTTPPort)
	c.Listen = l

	var err error
	if c.MaxWorkers, err = envInt("CELERIX_MAX_WORKERS", c.MaxWorkers); err != nil {
		return err
	}
	if c.Ready.Attempts, err = envInt("CELERIX_READY_ATTEMPTS", c.Ready.Attempts); err != nil {
		return err
	}
	if c.Ready.Interval, err = envDuration("CELERIX_READY_INTERVAL", c.Ready.Interval); err != nil {
		return err
	}
	if c.Ready.ProbeTimeout, err = envDuration("CELERIX_READY_PROBE_TIMEOUT", c.Ready.ProbeTimeout); err != nil {
		return err
	}
	for _, t := range []struct {
		key string
		dst *time.Duration
	}{
		{"CELERIX_TIMEOUT_GET_USER", &c.Timeouts.GetUser},
		{"CELERIX_TIMEOUT_LIST_USERS", &c.Timeouts.ListUsers},
		{"CELERIX_TIMEOUT_WRITE_USER", &c.Timeouts.WriteUser},
		{"CELERIX_TIMEOUT_GET_ORDER", &c.Timeouts.GetOrder},
		{"CELERIX_TIMEOUT_LIST_ORDERS", &c.Timeouts.ListOrders},
		{"CELERIX_TIMEOUT_WRITE_ORDER", &c.Timeouts.WriteOrder},
		{"CELERIX_TIMEOUT_REPORT", &c.Timeouts.Report},
	} {
		if *t.dst, err = envDuration(t.key, *t.dst); err != nil {
			return err
		}
	}
	return nil
}

func (c *Config) validate() error {
	switch c.Role {
	case RoleUser, RoleOrder, RoleReport:
	default:
		return fmt.Errorf("unknown role %q", c.Role)
	}
	if strings.TrimSpace(c.Listen.GRPCPort) == "" {
		return fmt.Errorf("%s: grpc port is required", c.Role)
	}
	if c.MaxWorkers <= 0 {
		return fmt.Errorf("max workers must be positive, got %d", c.MaxWorkers)
	}
	if c.Ready.Attempts <= 0 {
		return fmt.Errorf("ready attempts must be positive, got %d", c.Ready.Attempts)
	}
	return nil
}

// HTTPEnabled reports whether the management API should be served.
func (c *Config) HTTPEnabled() bool {
	p := strings.TrimSpace(strings.ToLower(c.Listen.HTTPPort))
	return p != "" && p != "off"
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, def int) (int, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return i, nil
}

func envDuration(key string, def time.Duration) (time.Duration, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}

func parseBool(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "t", "true", "y", "yes", "on":
		return true
	default:
		return false
	}
}
