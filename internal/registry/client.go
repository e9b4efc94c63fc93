// internal/registry/client.go
package registry

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/sourcegraph/conc/pool"

	"github.com/meshline/connector/internal/logging"
)

// DefaultRefreshInterval is the cadence of the periodic discovery loop.
const DefaultRefreshInterval = 30 * time.Second

// Error is the single error kind every network call in this package returns:
// HTTP transport failures, non-2xx responses and JSON decode failures all
// collapse to this type so callers can match on it without caring which leg
// failed.
type Error struct {
    Op  string
    Err error
}

func (e *Error) Error() string { return fmt.Sprintf("registry: %s: %v", e.Op, e.Err) }
func (e *Error) Unwrap() error { return e.Err }

func wrapErr(op string, err error) error {
    if err == nil {
        return nil
    }
    return &Error{Op: op, Err: err}
}

// Transformer turns one raw directory instance into the resource attached to
// its ServiceRecord — almost always a reusable *grpc.ClientConn. A
// Transformer failure for one instance must not fail the whole refresh: the
// record is simply omitted from that generation (the pool shrinks until the
// next refresh succeeds for that instance).
type Transformer[T any] func(ctx context.Context, inst ServiceInstance) (T, error)

// healthEntry mirrors the subset of Consul's
// GET /v1/health/service/<name>?passing=true response this client needs.
type healthEntry struct {
    Service struct {
        ID      string `json:"ID"`
        Service string `json:"Service"`
        Address string `json:"Address"`
        Port    int    `json:"Port"`
    } `json:"Service"`
}

// Client discovers healthy instances of one named backend service and keeps
// Store in sync on a timer. It has no knowledge of what T is beyond what the
// Transformer produces.
type Client[T any] struct {
    baseURL     string
    serviceName string
    httpClient  *http.Client
    store       Store[T]

    // OnRefresh, when set, observes the record count after every successful
    // refresh (used to keep per-service pool gauges current).
    OnRefresh func(count int)
}

// New returns a Client targeting consulBaseURL (e.g. "http://127.0.0.1:8500")
// for the named service, populating store on every Refresh.
func New[T any](consulBaseURL, serviceName string, store Store[T]) *Client[T] {
    return &Client[T]{
        baseURL:     consulBaseURL,
        serviceName: serviceName,
        httpClient:  &http.Client{Timeout: 10 * time.Second},
        store:       store,
    }
}

// Refresh performs one discovery pass: list healthy instances, run transform
// concurrently over each, and atomically replace the store's contents.
// A failed HTTP fetch or JSON decode surfaces a *Error to the caller; the
// caller (SpawnRefresh's loop) decides whether that is fatal or just logged.
func (c *Client[T]) Refresh(ctx context.Context, transform Transformer[T]) error {
    entries, err := c.listHealthy(ctx)
    if err != nil {
        return err
    }

    p := pool.NewWithResults[*ServiceRecord[T]]().WithContext(ctx)
    for _, e := range entries {
        e := e
        p.Go(func(ctx context.Context) (*ServiceRecord[T], error) {
            inst := ServiceInstance{
                ID:      e.Service.ID,
                Name:    e.Service.Service,
                Address: fmt.Sprintf("%s:%d", e.Service.Address, e.Service.Port),
            }
            extra, err := transform(ctx, inst)
            if err != nil {
                logging.Sugar().Warnw("registry transformer failed, omitting instance",
                    "service", c.serviceName, "instance", inst.ID, "err", err)
                return nil, nil //nolint:nilerr // omission, not batch failure
            }
            return &ServiceRecord[T]{Instance: inst, Extra: extra}, nil
        })
    }
    results, _ := p.Wait() // a pool.WithContext pool never returns an error here: Go never returns one

    records := make([]ServiceRecord[T], 0, len(results))
    for _, r := range results {
        if r != nil {
            records = append(records, *r)
        }
    }
    c.store.Update(records)
    if c.OnRefresh != nil {
        c.OnRefresh(len(records))
    }
    return nil
}

func (c *Client[T]) listHealthy(ctx context.Context) ([]healthEntry, error) {
    url := fmt.Sprintf("%s/v1/health/service/%s?passing=true", c.baseURL, c.serviceName)
    req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
    if err != nil {
        return nil, wrapErr("build request", err)
    }

    resp, err := c.httpClient.Do(req)
    if err != nil {
        return nil, wrapErr("http get", err)
    }
    defer resp.Body.Close()

    if resp.StatusCode < 200 || resp.StatusCode >= 300 {
        return nil, wrapErr("http get", fmt.Errorf("unexpected status %d", resp.StatusCode))
    }

    var entries []healthEntry
    if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil {
        return nil, wrapErr("decode response", err)
    }
    return entries, nil
}

// SpawnRefresh runs Refresh once immediately (so the caller can treat the
// first failure as fatal at startup), then loops at interval until
// ctx is cancelled. Failures after the first call are logged and swallowed;
// the loop always continues on schedule.
func (c *Client[T]) SpawnRefresh(ctx context.Context, interval time.Duration, transform Transformer[T]) error {
    if interval <= 0 {
        interval = DefaultRefreshInterval
    }
    if err := c.Refresh(ctx, transform); err != nil {
        return err
    }

    go func() {
        ticker := time.NewTicker(interval)
        defer ticker.Stop()
        for {
            select {
            case <-ctx.Done():
                return
            case <-ticker.C:
                if err := c.Refresh(ctx, transform); err != nil {
                    logging.Sugar().Warnw("registry refresh failed, retrying next tick",
                        "service", c.serviceName, "err", err)
                }
            }
        }
    }()
    return nil
}

// Registration is the payload this node submits to Consul to announce
// itself, including a TTL-based health check.
type Registration struct {
    ID      string
    Name    string
    Address string
    Port    int
    TTL     time.Duration
}

type checkBody struct {
    TTL     string `json:"TTL"`
    CheckID string `json:"CheckID"`
    Name    string `json:"Name"`
}

type registerBody struct {
    ID      string    `json:"ID"`
    Name    string    `json:"Name"`
    Address string    `json:"Address"`
    Port    int       `json:"Port"`
    Check   checkBody `json:"Check"`
}

// Registrar owns this node's own self-registration and TTL heartbeat against
// Consul. It shares no Store — self-registration never needs to resolve a
// hash key, only to keep one health check alive.
type Registrar struct {
    baseURL    string
    httpClient *http.Client
}

// NewRegistrar returns a Registrar pointed at consulBaseURL.
func NewRegistrar(consulBaseURL string) *Registrar {
    return &Registrar{
        baseURL:    consulBaseURL,
        httpClient: &http.Client{Timeout: 10 * time.Second},
    }
}

func checkID(serviceID string) string { return "service:" + serviceID }

// Register PUTs this node's service entry with a TTL check, and on success
// spawns a heartbeat goroutine that refreshes the check every ttl/2 until ctx
// is cancelled. Every PUT is retried up to twice with exponential backoff. A
// non-2xx response that outlasts those retries on the initial call is fatal
// to the caller; heartbeat failures are logged and the loop keeps its fixed
// ttl/2 cadence indefinitely.
func (r *Registrar) Register(ctx context.Context, reg Registration) error {
    ttl := reg.TTL
    if ttl <= 0 {
        ttl = 30 * time.Second
    }
    body := registerBody{
        ID:      reg.ID,
        Name:    reg.Name,
        Address: reg.Address,
        Port:    reg.Port,
        Check: checkBody{
            TTL:     fmt.Sprintf("%ds", int(ttl.Seconds())),
            CheckID: checkID(reg.ID),
            Name:    reg.Name + " TTL check",
        },
    }

    if err := r.put(ctx, "/v1/agent/service/register", body); err != nil {
        return wrapErr("register", err)
    }

    go r.heartbeat(ctx, checkID(reg.ID), ttl/2)
    return nil
}

func (r *Registrar) heartbeat(ctx context.Context, cid string, interval time.Duration) {
    if interval <= 0 {
        interval = 15 * time.Second
    }
    ticker := time.NewTicker(interval)
    defer ticker.Stop()
    for {
        select {
        case <-ctx.Done():
            return
        case <-ticker.C:
            status := struct {
                Status string `json:"Status"`
            }{Status: "passing"}
            url := fmt.Sprintf("/v1/agent/check/update/%s", cid)
            if err := r.put(ctx, url, status); err != nil {
                logging.Sugar().Warnw("consul heartbeat failed", "check_id", cid, "err", err)
            }
        }
    }
}

func (r *Registrar) put(ctx context.Context, path string, body any) error {
    b, err := json.Marshal(body)
    if err != nil {
        return err
    }

    op := func() error {
        req, err := http.NewRequestWithContext(ctx, http.MethodPut, r.baseURL+path, bytes.NewReader(b))
        if err != nil {
            return backoff.Permanent(err)
        }
        req.Header.Set("Content-Type", "application/json")

        resp, err := r.httpClient.Do(req)
        if err != nil {
            return err
        }
        defer resp.Body.Close()
        if resp.StatusCode < 200 || resp.StatusCode >= 300 {
            return fmt.Errorf("unexpected status %d", resp.StatusCode)
        }
        return nil
    }

    bo := backoff.WithMaxRetries(backoff.NewExponentialBackOff(), 2)
    return backoff.Retry(op, backoff.WithContext(bo, ctx))
}
