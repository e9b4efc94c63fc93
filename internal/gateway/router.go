// internal/gateway/router.go
// Supervisor wiring together the HTTP listener (listener.go) and the gRPC
// server (server.go) so cmd/connector can start/stop both through a single
// façade.  Both servers share one shutdown signal: when ctx is cancelled
// they stop accepting, drain, and Run returns the first error either
// produced.
package gateway

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"google.golang.org/grpc"

	"github.com/meshline/connector/internal/logging"
	"github.com/meshline/connector/internal/registry"
	"github.com/meshline/connector/internal/session"
	"github.com/meshline/connector/internal/state"
)

// Supervisor runs the connector's two servers under one shutdown signal.
// The zero value is not usable; construct via NewSupervisor.
type Supervisor struct {
    cfg       Config
    st        *state.AppState
    handler   session.Handler
    registrar *registry.Registrar
}

// NewSupervisor bundles the servers' dependencies.  registrar may be nil in
// tests to skip directory self-registration.
func NewSupervisor(cfg Config, st *state.AppState, handler session.Handler, registrar *registry.Registrar) *Supervisor {
    return &Supervisor{cfg: cfg, st: st, handler: handler, registrar: registrar}
}

// Run blocks until both servers have returned.  Startup failures (bind, the
// initial directory registration) surface immediately; afterwards Run waits
// for ctx cancellation or a server error, shuts both servers down
// gracefully, and returns the first error observed.
func (s *Supervisor) Run(ctx context.Context) error {
    httpSrv := newHTTPServer(ctx, s.cfg, s.st, s.handler)
    grpcSrv := newGRPCServer(s.st)

    grpcLis, err := net.Listen("tcp", s.cfg.GRPCAddr)
    if err != nil {
        return fmt.Errorf("gateway: bind grpc %s: %w", s.cfg.GRPCAddr, err)
    }

    errCh := make(chan error, 2)
    go func() {
        logging.Sugar().Infow("http server listening", "addr", s.cfg.HTTPAddr)
        if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
            errCh <- fmt.Errorf("gateway: http server: %w", err)
            return
        }
        errCh <- nil
    }()
    go func() {
        logging.Sugar().Infow("grpc server listening", "addr", s.cfg.GRPCAddr)
        if err := grpcSrv.Serve(grpcLis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
            errCh <- fmt.Errorf("gateway: grpc server: %w", err)
            return
        }
        errCh <- nil
    }()

    // Announce the dispatch endpoint in the directory once it is bound.  The
    // TTL check stays alive through the heartbeat the registrar spawns; its
    // cadence derives from the same refresh TTL.
    if s.registrar != nil {
        app := s.st.Config()
        reg := registry.Registration{
            ID:      app.ServiceID,
            Name:    app.ServiceName,
            Address: app.GRPCHost,
            Port:    app.GRPCPort,
            TTL:     time.Duration(app.RefreshTTLSecs) * time.Second,
        }
        if err := s.registrar.Register(ctx, reg); err != nil {
            s.stop(httpSrv, grpcSrv)
            s.await(errCh)
            return fmt.Errorf("gateway: self-registration: %w", err)
        }
    }

    var firstErr error
    stopped := false
    ctxDone := ctx.Done()
    for done := 0; done < 2; {
        select {
        case <-ctxDone:
            ctxDone = nil
            logging.Sugar().Infow("shutdown signal received, draining servers")
            if !stopped {
                stopped = true
                s.stop(httpSrv, grpcSrv)
            }
        case err := <-errCh:
            done++
            if err != nil && firstErr == nil {
                firstErr = err
            }
            if !stopped {
                stopped = true
                s.stop(httpSrv, grpcSrv)
            }
        }
    }
    return firstErr
}

// stop asks both servers to drain; it returns without waiting (Run's loop
// collects the results through errCh).
func (s *Supervisor) stop(httpSrv *http.Server, grpcSrv *grpc.Server) {
    go func() {
        shutCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
        defer cancel()
        _ = httpSrv.Shutdown(shutCtx)
    }()
    go grpcSrv.GracefulStop()
}

// await drains both server goroutines during an aborted startup.
func (s *Supervisor) await(errCh <-chan error) {
    for i := 0; i < 2; i++ {
        <-errCh
    }
}
