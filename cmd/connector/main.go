// cmd/connector/main.go
// Binary entrypoint for the connector node.  It terminates user WebSocket
// sessions, routes their requests to the backend fleet discovered through
// the service directory, and accepts push deliveries over gRPC for fan-out
// to connected users.  The process is configured via a JSON config file plus
// environment variables with sane defaults for local testing.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/meshline/connector/internal/cache"
	"github.com/meshline/connector/internal/config"
	"github.com/meshline/connector/internal/gateway"
	"github.com/meshline/connector/internal/logging"
	"github.com/meshline/connector/internal/metrics"
	"github.com/meshline/connector/internal/registry"
	"github.com/meshline/connector/internal/router"
	"github.com/meshline/connector/internal/state"
	"github.com/meshline/connector/pkg/version"
)

// ringReplicas is the virtual-replica count per upstream instance.
const ringReplicas = 100

func main() {
    opts := parseFlags()
    if opts.showVersion {
        fmt.Println(version.String())
        return
    }

    // Best-effort .env load before anything reads the environment; a missing
    // file is the normal case outside local development.
    _ = godotenv.Load()

    logger, err := newLogger(opts.dev)
    if err != nil {
        fmt.Fprintln(os.Stderr, "failed to build logger:", err)
        os.Exit(1)
    }
    logging.Set(logger)
    defer func() { _ = logger.Sync() }()

    metrics.Register()

    log := logging.Sugar()
    log.Infow("connector starting", "version", version.String())

    ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
    defer stop()

    if err := run(ctx, opts); err != nil {
        log.Errorw("connector exited with error", "err", err)
        os.Exit(1)
    }
    log.Infow("connector stopped")
}

func newLogger(dev bool) (*zap.Logger, error) {
    if dev {
        return zap.NewDevelopment()
    }
    return zap.NewProduction()
}

func run(ctx context.Context, opts cliOptions) error {
    log := logging.Sugar()

    cfg, err := config.Load(opts.configPath)
    if err != nil {
        return err
    }
    log.Infow("configuration loaded",
        "service_id", cfg.ServiceID, "service_name", cfg.ServiceName,
        "http_addr", cfg.HTTPAddr(), "grpc_addr", cfg.GRPCAddr())

    c, err := cache.NewFromURL(cfg.RedisURL)
    if err != nil {
        return fmt.Errorf("cache: %w", err)
    }
    defer func() { _ = c.Close() }()
    if err := c.Ping(ctx); err != nil {
        return fmt.Errorf("cache: initial ping: %w", err)
    }
    log.Debugw("cache connected")

    refresh := time.Duration(cfg.RefreshTTLSecs) * time.Second
    users, err := newUpstream(ctx, cfg, router.UserService, refresh)
    if err != nil {
        return err
    }
    channels, err := newUpstream(ctx, cfg, router.ChannelService, refresh)
    if err != nil {
        return err
    }
    messages, err := newUpstream(ctx, cfg, router.MessageService, refresh)
    if err != nil {
        return err
    }
    log.Debugw("upstream registries initialized")

    st := state.New(cfg, c, users, channels, messages)
    handler := router.New(users, channels, messages)
    registrar := registry.NewRegistrar(cfg.ConsulBaseURL())

    sup := gateway.NewSupervisor(gateway.ConfigFromApp(cfg), st, handler, registrar)
    return sup.Run(ctx)
}

// newUpstream builds the store and discovery client for one backend
// service, runs the initial refresh (fatal on failure), and leaves the
// periodic refresh loop running until ctx ends.
func newUpstream(ctx context.Context, cfg config.AppConfig, name string, interval time.Duration) (registry.Store[*grpc.ClientConn], error) {
    store := registry.NewStore[*grpc.ClientConn](ringReplicas, nil)
    client := registry.New(cfg.ConsulBaseURL(), name, store)
    client.OnRefresh = func(count int) {
        metrics.RegistryPoolSize.WithLabelValues(name).Set(float64(count))
    }
    if err := client.SpawnRefresh(ctx, interval, dialUpstream); err != nil {
        return nil, fmt.Errorf("registry %s: initial refresh: %w", name, err)
    }
    return store, nil
}

// dialUpstream attaches a shared gRPC channel to one discovered instance.
// grpc.NewClient connects lazily, so discovery stays fast and a dead
// backend only surfaces on first use.
func dialUpstream(_ context.Context, inst registry.ServiceInstance) (*grpc.ClientConn, error) {
    return grpc.NewClient(inst.Address, grpc.WithTransportCredentials(insecure.NewCredentials()))
}
