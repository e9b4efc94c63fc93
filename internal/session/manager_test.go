package session

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"

	"github.com/meshline/connector/internal/cache"
	"github.com/meshline/connector/internal/protocol"
)

// echoHandler is a stand-in for the request router: text frames come back as
// CreateMessageRsp carrying the payload, control frames follow the usual
// table.
type echoHandler struct{}

func (echoHandler) HandleFrame(ctx context.Context, userID string, q *Queue, frameType int, payload []byte) (Flow, error) {
    switch frameType {
    case websocket.PingMessage:
        if err := q.Send(ctx, protocol.Pong{}); err != nil {
            return FlowBreak, err
        }
        return FlowContinue, nil
    case websocket.PongMessage:
        return FlowContinue, nil
    case websocket.CloseMessage:
        return FlowBreak, nil
    case websocket.BinaryMessage:
        return FlowBreak, errors.New("binary messages are not supported")
    case websocket.TextMessage:
        if err := q.Send(ctx, protocol.CreateMessageRsp{MessageID: string(payload)}); err != nil {
            return FlowBreak, err
        }
        return FlowContinue, nil
    }
    return FlowBreak, nil
}

type testEnv struct {
    mr    *miniredis.Miniredis
    deps  Deps
    srv   *httptest.Server
    wsURL string
}

func newTestEnv(t *testing.T) *testEnv {
    t.Helper()
    mr := miniredis.RunT(t)
    cli := redis.NewClient(&redis.Options{Addr: mr.Addr()})
    t.Cleanup(func() { _ = cli.Close() })

    deps := Deps{
        Cache:       cache.New(cli),
        Directory:   NewDirectory(),
        Handler:     echoHandler{},
        ServiceName: "connector",
        ServiceID:   "node-1",
    }

    mux := http.NewServeMux()
    mux.HandleFunc("GET /ws/{user_id}", func(w http.ResponseWriter, r *http.Request) {
        Serve(context.Background(), w, r, deps, r.PathValue("user_id"))
    })
    srv := httptest.NewServer(mux)
    t.Cleanup(srv.Close)

    return &testEnv{
        mr:    mr,
        deps:  deps,
        srv:   srv,
        wsURL: "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/",
    }
}

// dial connects and completes the server's initial-ping handshake with an
// explicit pong so no data frame is consumed by it.
func (e *testEnv) dial(t *testing.T, userID string) *websocket.Conn {
    t.Helper()
    conn, _, err := websocket.DefaultDialer.Dial(e.wsURL+userID, nil)
    if err != nil {
        t.Fatalf("dial: %v", err)
    }
    if err := conn.WriteMessage(websocket.PongMessage, nil); err != nil {
        t.Fatalf("handshake pong: %v", err)
    }
    return conn
}

func waitFor(t *testing.T, what string, cond func() bool) {
    t.Helper()
    deadline := time.Now().Add(2 * time.Second)
    for time.Now().Before(deadline) {
        if cond() {
            return
        }
        time.Sleep(5 * time.Millisecond)
    }
    t.Fatalf("timed out waiting for %s", what)
}

func readEnvelope(t *testing.T, conn *websocket.Conn) (string, json.RawMessage) {
    t.Helper()
    _ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
    _, frame, err := conn.ReadMessage()
    if err != nil {
        t.Fatalf("read frame: %v", err)
    }
    var env struct {
        Type string          `json:"type"`
        Data json.RawMessage `json:"data"`
    }
    if err := json.Unmarshal(frame, &env); err != nil {
        t.Fatalf("decode envelope %q: %v", frame, err)
    }
    return env.Type, env.Data
}

func TestSessionRegistersAndEchoesAndCleansUp(t *testing.T) {
    env := newTestEnv(t)
    conn := env.dial(t, "u1")
    defer conn.Close()

    waitFor(t, "directory entry", func() bool {
        _, ok := env.deps.Directory.Lookup("u1")
        return ok
    })

    claim := env.mr.HGet(OnlineUsersKey, "u1")
    if claim != "connector:node-1" {
        t.Fatalf("cache claim = %q, want connector:node-1", claim)
    }

    if err := conn.WriteMessage(websocket.TextMessage, []byte("m-42")); err != nil {
        t.Fatalf("write: %v", err)
    }
    typ, data := readEnvelope(t, conn)
    if typ != protocol.TagCreateMessage {
        t.Fatalf("response type = %q, want %q", typ, protocol.TagCreateMessage)
    }
    var rsp protocol.CreateMessageRsp
    if err := json.Unmarshal(data, &rsp); err != nil || rsp.MessageID != "m-42" {
        t.Fatalf("response payload = %s (err %v), want message_id m-42", data, err)
    }

    // A push enqueued straight onto the directory queue reaches the socket.
    q, _ := env.deps.Directory.Lookup("u1")
    if err := q.Send(context.Background(), protocol.DispatchMessage{MessageID: "d1", Content: "hi", Timestamp: 123}); err != nil {
        t.Fatalf("enqueue dispatch: %v", err)
    }
    typ, data = readEnvelope(t, conn)
    if typ != protocol.TagDispatchMessage {
        t.Fatalf("push type = %q, want %q", typ, protocol.TagDispatchMessage)
    }
    var push protocol.DispatchMessage
    if err := json.Unmarshal(data, &push); err != nil || push.MessageID != "d1" || push.Timestamp != 123 {
        t.Fatalf("push payload = %s (err %v)", data, err)
    }

    // Clean close tears down the directory entry and the cache claim.
    _ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
    waitFor(t, "directory cleanup", func() bool {
        _, ok := env.deps.Directory.Lookup("u1")
        return !ok
    })
    waitFor(t, "cache claim cleanup", func() bool {
        return !env.mr.Exists(OnlineUsersKey) || env.mr.HGet(OnlineUsersKey, "u1") == ""
    })
}

func TestSessionEchoesPingAsPong(t *testing.T) {
    env := newTestEnv(t)
    conn := env.dial(t, "u1")
    defer conn.Close()

    waitFor(t, "directory entry", func() bool {
        _, ok := env.deps.Directory.Lookup("u1")
        return ok
    })

    pong := make(chan struct{}, 1)
    conn.SetPongHandler(func(string) error {
        select {
        case pong <- struct{}{}:
        default:
        }
        return nil
    })
    if err := conn.WriteMessage(websocket.PingMessage, []byte("x")); err != nil {
        t.Fatalf("write ping: %v", err)
    }
    // Pong handlers only run while a read is in flight; drive one with a
    // deadline.
    _ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
    go func() { _, _, _ = conn.ReadMessage() }()

    select {
    case <-pong:
    case <-time.After(2 * time.Second):
        t.Fatal("no pong received")
    }
}

func TestSecondConnectionAbortsCleanly(t *testing.T) {
    env := newTestEnv(t)
    first := env.dial(t, "u1")
    defer first.Close()

    waitFor(t, "directory entry", func() bool {
        _, ok := env.deps.Directory.Lookup("u1")
        return ok
    })
    firstQueue, _ := env.deps.Directory.Lookup("u1")

    // The claim is already held, so the server drops the second connection
    // right after its handshake.
    second := env.dial(t, "u1")
    defer second.Close()
    _ = second.SetReadDeadline(time.Now().Add(2 * time.Second))
    if _, _, err := second.ReadMessage(); err == nil {
        t.Fatal("second session should have been closed by the server")
    }

    // The first session is unaffected: same queue, claim intact, echo works.
    q, ok := env.deps.Directory.Lookup("u1")
    if !ok || q != firstQueue {
        t.Fatal("first session's directory entry was disturbed")
    }
    if got := env.mr.HGet(OnlineUsersKey, "u1"); got != "connector:node-1" {
        t.Fatalf("cache claim = %q after rejected connect", got)
    }
    if err := first.WriteMessage(websocket.TextMessage, []byte("still-alive")); err != nil {
        t.Fatalf("write on first session: %v", err)
    }
    if typ, _ := readEnvelope(t, first); typ != protocol.TagCreateMessage {
        t.Fatalf("first session echo type = %q", typ)
    }
}

func TestBinaryFrameEndsSession(t *testing.T) {
    env := newTestEnv(t)
    conn := env.dial(t, "u1")
    defer conn.Close()

    waitFor(t, "directory entry", func() bool {
        _, ok := env.deps.Directory.Lookup("u1")
        return ok
    })

    if err := conn.WriteMessage(websocket.BinaryMessage, []byte{0xde, 0xad}); err != nil {
        t.Fatalf("write binary: %v", err)
    }
    waitFor(t, "session teardown", func() bool {
        _, ok := env.deps.Directory.Lookup("u1")
        return !ok
    })
}
