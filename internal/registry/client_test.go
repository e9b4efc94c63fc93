package registry

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
)

func healthPayload(ids ...string) string {
    type svc struct {
        ID      string
        Service string
        Address string
        Port    int
    }
    entries := make([]map[string]svc, 0, len(ids))
    for i, id := range ids {
        entries = append(entries, map[string]svc{
            "Service": {ID: id, Service: "user-service", Address: "10.0.0." + fmt.Sprint(i+1), Port: 9000 + i},
        })
    }
    b, _ := json.Marshal(entries)
    return string(b)
}

func TestRefreshPopulatesStore(t *testing.T) {
    idA, idB := uuid.NewString(), uuid.NewString()
    srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        if r.URL.Path != "/v1/health/service/user-service" || r.URL.Query().Get("passing") != "true" {
            t.Errorf("unexpected request %s %s", r.Method, r.URL)
            http.NotFound(w, r)
            return
        }
        fmt.Fprint(w, healthPayload(idA, idB))
    }))
    defer srv.Close()

    store := NewStore[string](10, nil)
    c := New(srv.URL, "user-service", store)

    err := c.Refresh(context.Background(), func(_ context.Context, inst ServiceInstance) (string, error) {
        return "attached-" + inst.ID, nil
    })
    if err != nil {
        t.Fatalf("refresh: %v", err)
    }

    records := store.List()
    if len(records) != 2 {
        t.Fatalf("store holds %d records, want 2", len(records))
    }
    for _, rec := range records {
        if rec.Extra != "attached-"+rec.Instance.ID {
            t.Fatalf("record %q carries extra %q", rec.Instance.ID, rec.Extra)
        }
    }
}

func TestRefreshOmitsFailedTransformers(t *testing.T) {
    idGood, idBad := uuid.NewString(), uuid.NewString()
    srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
        fmt.Fprint(w, healthPayload(idGood, idBad))
    }))
    defer srv.Close()

    store := NewStore[string](10, nil)
    c := New(srv.URL, "user-service", store)

    err := c.Refresh(context.Background(), func(_ context.Context, inst ServiceInstance) (string, error) {
        if inst.ID == idBad {
            return "", errors.New("backend unreachable")
        }
        return "ok", nil
    })
    if err != nil {
        t.Fatalf("refresh must not fail because one transformer did: %v", err)
    }

    records := store.List()
    if len(records) != 1 || records[0].Instance.ID != idGood {
        t.Fatalf("expected only the healthy record, got %+v", records)
    }
}

func TestRefreshSurfacesHTTPFailure(t *testing.T) {
    srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
        w.WriteHeader(http.StatusInternalServerError)
    }))
    defer srv.Close()

    c := New(srv.URL, "user-service", NewStore[string](10, nil))
    err := c.Refresh(context.Background(), func(_ context.Context, _ ServiceInstance) (string, error) {
        return "", nil
    })
    var regErr *Error
    if !errors.As(err, &regErr) {
        t.Fatalf("expected *Error, got %v", err)
    }
}

func TestRegisterSpawnsHeartbeat(t *testing.T) {
    var mu sync.Mutex
    var registered registerBody
    heartbeats := 0

    srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        mu.Lock()
        defer mu.Unlock()
        switch {
        case r.Method == http.MethodPut && r.URL.Path == "/v1/agent/service/register":
            _ = json.NewDecoder(r.Body).Decode(&registered)
        case r.Method == http.MethodPut && r.URL.Path == "/v1/agent/check/update/service:node-1":
            var body struct {
                Status string `json:"Status"`
            }
            _ = json.NewDecoder(r.Body).Decode(&body)
            if body.Status != "passing" {
                t.Errorf("heartbeat status = %q", body.Status)
            }
            heartbeats++
        default:
            t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
            http.NotFound(w, r)
        }
    }))
    defer srv.Close()

    ctx, cancel := context.WithCancel(context.Background())
    defer cancel()

    r := NewRegistrar(srv.URL)
    err := r.Register(ctx, Registration{
        ID:      "node-1",
        Name:    "connector",
        Address: "10.0.0.9",
        Port:    50051,
        TTL:     100 * time.Millisecond,
    })
    if err != nil {
        t.Fatalf("register: %v", err)
    }

    mu.Lock()
    if registered.ID != "node-1" || registered.Check.CheckID != "service:node-1" {
        t.Fatalf("registration body %+v", registered)
    }
    mu.Unlock()

    deadline := time.Now().Add(2 * time.Second)
    for {
        mu.Lock()
        n := heartbeats
        mu.Unlock()
        if n >= 2 {
            break
        }
        if time.Now().After(deadline) {
            t.Fatalf("saw %d heartbeats, want at least 2", n)
        }
        time.Sleep(10 * time.Millisecond)
    }
}

func TestRegisterFailureIsFatal(t *testing.T) {
    srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
        w.WriteHeader(http.StatusForbidden)
    }))
    defer srv.Close()

    r := NewRegistrar(srv.URL)
    err := r.Register(context.Background(), Registration{ID: "node-1", Name: "connector", TTL: time.Second})
    var regErr *Error
    if !errors.As(err, &regErr) {
        t.Fatalf("expected *Error from rejected registration, got %v", err)
    }
}
