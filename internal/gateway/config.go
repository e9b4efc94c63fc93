// internal/gateway/config.go
// Server-level knobs for the two listeners, derived from AppConfig.  Kept
// separate from internal/config so the supervisor's timeouts can be tuned in
// tests without round-tripping through viper.
package gateway

import (
	"time"

	"github.com/meshline/connector/internal/config"
)

// Config parameterises the supervisor's HTTP and gRPC servers.
type Config struct {
    HTTPAddr string // host:port for WebSocket, /check and /metrics
    GRPCAddr string // host:port for the dispatch endpoint

    // ReadHeaderTimeout bounds the upgrade handshake; no global read/write
    // timeouts are set because they would sever long-lived WebSockets.
    ReadHeaderTimeout time.Duration

    // ShutdownTimeout bounds the HTTP drain once shutdown begins.
    ShutdownTimeout time.Duration
}

// ConfigFromApp derives listener config from the loaded AppConfig.
func ConfigFromApp(app config.AppConfig) Config {
    return Config{
        HTTPAddr:          app.HTTPAddr(),
        GRPCAddr:          app.GRPCAddr(),
        ReadHeaderTimeout: 5 * time.Second,
        ShutdownTimeout:   10 * time.Second,
    }
}
