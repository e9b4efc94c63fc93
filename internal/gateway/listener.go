// internal/gateway/listener.go
// HTTP listener that exposes:
//   - /ws/{user_id} – WebSocket upgrade; the path parameter is the
//     already-authenticated user identity
//   - /check        – liveness, 200 iff the cache answers PING
//   - /metrics      – Prometheus scrape endpoint
//
// The listener is purposely separate from the gRPC server so that
// deployments can route user traffic and backend push traffic through
// different ports or ALBs.
package gateway

import (
	"context"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/meshline/connector/internal/logging"
	"github.com/meshline/connector/internal/metrics"
	"github.com/meshline/connector/internal/session"
	"github.com/meshline/connector/internal/state"
)

// newHTTPServer builds the HTTP side of the supervisor.  ctx is the shared
// shutdown context; sessions capture it so queue sends and in-flight
// upstream calls observe process shutdown.
func newHTTPServer(ctx context.Context, cfg Config, st *state.AppState, handler session.Handler) *http.Server {
    deps := session.Deps{
        Cache:       st.Cache(),
        Directory:   st.Directory(),
        Handler:     handler,
        ServiceName: st.Config().ServiceName,
        ServiceID:   st.Config().ServiceID,
    }

    mux := http.NewServeMux()
    mux.HandleFunc("GET /ws/{user_id}", func(w http.ResponseWriter, r *http.Request) {
        session.Serve(ctx, w, r, deps, r.PathValue("user_id"))
    })
    mux.HandleFunc("GET /check", func(w http.ResponseWriter, r *http.Request) {
        if err := st.Cache().Ping(r.Context()); err != nil {
            logging.Sugar().Warnw("health check failed", "err", err)
            w.WriteHeader(http.StatusInternalServerError)
            return
        }
        w.WriteHeader(http.StatusOK)
    })
    metrics.Register()
    mux.Handle("GET /metrics", promhttp.Handler())

    return &http.Server{
        Addr:              cfg.HTTPAddr,
        Handler:           requestLogger(mux),
        ReadHeaderTimeout: cfg.ReadHeaderTimeout,
    }
}

// requestLogger logs every request's method and path at debug level.
func requestLogger(next http.Handler) http.Handler {
    return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        logging.Sugar().Debugw("http request", "method", r.Method, "path", r.URL.Path)
        next.ServeHTTP(w, r)
    })
}
