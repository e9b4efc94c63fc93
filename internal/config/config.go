// internal/config/config.go
// Centralised loader for connector configuration.  It populates AppConfig
// from (in precedence order):
//  1. Environment variables prefixed with CONNECTOR_
//  2. Optional JSON/YAML config file path (flag or CONNECTOR_CONFIG env var)
//  3. Built-in defaults
//
// REDIS_URL is deliberately read unprefixed: it addresses the shared cache,
// not this node, and every connector in the cluster points at the same value.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/viper"
)

// DefaultPath is consulted when neither the -config flag nor the
// CONNECTOR_CONFIG env var names a file.
const DefaultPath = "app_config.json"

// AppConfig is the process-wide configuration bundle.  It is immutable after
// Load returns; everything that needs it receives it by value inside
// AppState.
type AppConfig struct {
    ServiceID   string `mapstructure:"service_id"`
    ServiceName string `mapstructure:"service_name"`

    HTTPHost string `mapstructure:"http_host"`
    HTTPPort int    `mapstructure:"http_port"`

    GRPCHost string `mapstructure:"grpc_host"`
    GRPCPort int    `mapstructure:"grpc_port"`

    RefreshTTLSecs int `mapstructure:"refresh_ttl_secs"`

    ConsulHost string `mapstructure:"consul_host"`
    ConsulPort int    `mapstructure:"consul_port"`

    // RedisURL comes from the REDIS_URL env var, never from the file.
    RedisURL string `mapstructure:"-"`
}

// HTTPAddr returns the host:port the HTTP server binds.
func (c AppConfig) HTTPAddr() string { return fmt.Sprintf("%s:%d", c.HTTPHost, c.HTTPPort) }

// GRPCAddr returns the host:port the gRPC server binds.
func (c AppConfig) GRPCAddr() string { return fmt.Sprintf("%s:%d", c.GRPCHost, c.GRPCPort) }

// ConsulBaseURL returns the directory's HTTP API base.
func (c AppConfig) ConsulBaseURL() string {
    return fmt.Sprintf("http://%s:%d", c.ConsulHost, c.ConsulPort)
}

// Load reads the config file at path (falling back to CONNECTOR_CONFIG, then
// DefaultPath) and merges CONNECTOR_-prefixed environment variables on top.
// A missing file is only tolerated when every required field arrives from
// the environment.
func Load(path string) (AppConfig, error) {
    v := viper.New()

    v.SetDefault("http_host", "0.0.0.0")
    v.SetDefault("http_port", 8080)
    v.SetDefault("grpc_host", "0.0.0.0")
    v.SetDefault("grpc_port", 50051)
    v.SetDefault("refresh_ttl_secs", 30)
    v.SetDefault("consul_host", "127.0.0.1")
    v.SetDefault("consul_port", 8500)

    v.SetEnvPrefix("CONNECTOR")
    v.AutomaticEnv()
    // AutomaticEnv only covers keys viper already knows; the required keys
    // without a default are bound explicitly so env alone can supply them.
    _ = v.BindEnv("service_id")
    _ = v.BindEnv("service_name")

    if path == "" {
        path = os.Getenv("CONNECTOR_CONFIG")
    }
    if path == "" {
        path = DefaultPath
    }
    v.SetConfigFile(path)
    if err := v.ReadInConfig(); err != nil {
        // A missing file is tolerated: env vars may still carry everything
        // required, and validate() catches the gaps either way.
        if !errors.Is(err, fs.ErrNotExist) {
            return AppConfig{}, fmt.Errorf("config: read %s: %w", path, err)
        }
    }

    var cfg AppConfig
    if err := v.Unmarshal(&cfg); err != nil {
        return AppConfig{}, fmt.Errorf("config: unmarshal: %w", err)
    }
    cfg.RedisURL = os.Getenv("REDIS_URL")

    if err := cfg.validate(); err != nil {
        return AppConfig{}, err
    }
    return cfg, nil
}

func (c AppConfig) validate() error {
    switch {
    case c.ServiceID == "":
        return fmt.Errorf("config: service_id is required")
    case c.ServiceName == "":
        return fmt.Errorf("config: service_name is required")
    case c.RedisURL == "":
        return fmt.Errorf("config: REDIS_URL is required")
    case c.HTTPPort <= 0 || c.HTTPPort > 65535:
        return fmt.Errorf("config: http_port %d out of range", c.HTTPPort)
    case c.GRPCPort <= 0 || c.GRPCPort > 65535:
        return fmt.Errorf("config: grpc_port %d out of range", c.GRPCPort)
    case c.RefreshTTLSecs <= 0:
        return fmt.Errorf("config: refresh_ttl_secs must be positive")
    }
    return nil
}
