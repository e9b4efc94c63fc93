// internal/session/manager.go
package session

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/meshline/connector/internal/cache"
	"github.com/meshline/connector/internal/logging"
	"github.com/meshline/connector/internal/protocol"
	"github.com/meshline/connector/internal/util"
)

// OnlineUsersKey is the cache hash mapping user_id to the
// "<service_name>:<service_id>" of the connector node holding its session.
const OnlineUsersKey = "user:connector"

// handshakePing is the fixed sentinel payload of the initial Ping.  It is
// sent exactly once, before the online claim; any reply frame completes the
// handshake.
var handshakePing = []byte{0x01, 0x02, 0x03}

const (
    writeTimeout   = 10 * time.Second
    cleanupTimeout = 5 * time.Second
)

// Flow is the verdict a Handler returns for one inbound frame: keep the
// session alive or break out of the recv loop.
type Flow int

const (
    FlowContinue Flow = iota
    FlowBreak
)

// Handler consumes one inbound WebSocket frame on behalf of a session.
// frameType is a gorilla/websocket message type constant; payload is nil for
// control frames.  On FlowBreak a non-nil error is logged by the recv loop;
// a nil error is a clean close.
type Handler interface {
    HandleFrame(ctx context.Context, userID string, q *Queue, frameType int, payload []byte) (Flow, error)
}

// Deps carries everything a session needs beyond its own socket.  The
// gateway builds one per process from AppState and hands it to every
// upgrade.
type Deps struct {
    Cache       *cache.Cache
    Directory   *Directory
    Handler     Handler
    ServiceName string
    ServiceID   string
}

var upgrader = websocket.Upgrader{
    ReadBufferSize:  4096,
    WriteBufferSize: 4096,
    // Identity is established upstream and arrives as a path parameter;
    // origin policy is not this layer's concern.
    CheckOrigin: func(*http.Request) bool { return true },
}

// Serve upgrades the request to a WebSocket and runs the session to
// completion.  It only returns once the connection has fully torn down.
func Serve(ctx context.Context, w http.ResponseWriter, r *http.Request, deps Deps, userID string) {
    conn, err := upgrader.Upgrade(w, r, nil)
    if err != nil {
        logging.Sugar().Debugw("websocket upgrade failed", "user_id", userID, "err", err)
        return
    }
    m := &manager{deps: deps, userID: userID, sessionID: util.MustNew()}
    m.run(ctx, conn)
}

type manager struct {
    deps      Deps
    userID    string
    sessionID string
}

func (m *manager) run(ctx context.Context, conn *websocket.Conn) {
    defer conn.Close()
    log := logging.Sugar().With("user_id", m.userID, "session_id", m.sessionID)
    log.Debugw("websocket connection established")

    if err := m.handshake(conn); err != nil {
        log.Debugw("initial ping failed, closing", "err", err)
        return
    }

    // Claim the user in the shared cache before any local registration: at
    // most one connector node may hold a given user, and a lost claim means
    // some node (possibly a dead one, until operations clears it) already
    // does.
    claim := m.deps.ServiceName + ":" + m.deps.ServiceID
    won, err := m.deps.Cache.HashSet(ctx, OnlineUsersKey, m.userID, claim)
    if err != nil {
        log.Errorw("online claim failed, closing", "err", err)
        return
    }
    if !won {
        log.Warnw("user already claimed by a connector node, rejecting session")
        return
    }

    q := NewQueue()
    if !m.deps.Directory.Insert(m.userID, q) {
        // A live session for this user already exists on this node.  First
        // writer wins: release the cache claim this attempt took and abort
        // without touching the existing entry.
        log.Warnw("user already online on this node, rejecting session")
        m.releaseClaim(log)
        return
    }

    m.installControlHandlers(ctx, conn, q)

    sendDone := make(chan struct{})
    recvDone := make(chan struct{})
    go func() {
        defer close(sendDone)
        m.sendLoop(conn, q, log)
    }()
    go func() {
        defer close(recvDone)
        m.recvLoop(ctx, conn, q, log)
    }()

    // Whichever half exits first starts teardown of the other.
    select {
    case <-sendDone:
        log.Debugw("send half completed first")
    case <-recvDone:
        log.Debugw("recv half completed first")
    }

    // Ordered teardown: directory entry, cache claim, then the queue so the
    // send half drains and exits.  Closing the socket last unblocks a recv
    // half still parked in a read.
    m.deps.Directory.Remove(m.userID)
    m.releaseClaim(log)
    q.Close()
    <-sendDone
    conn.Close()
    <-recvDone

    log.Debugw("websocket connection exiting")
}

func (m *manager) releaseClaim(log *zap.SugaredLogger) {
    ctx, cancel := context.WithTimeout(context.Background(), cleanupTimeout)
    defer cancel()
    if _, err := m.deps.Cache.HashDelete(ctx, OnlineUsersKey, m.userID); err != nil {
        log.Warnw("failed to release online claim", "user_id", m.userID, "err", err)
    }
}

// errHandshakeReply marks receipt of any control frame during the handshake
// window; a data frame also completes the handshake and is discarded.
var errHandshakeReply = errors.New("session: handshake reply")

func (m *manager) handshake(conn *websocket.Conn) error {
    if err := conn.WriteMessage(websocket.PingMessage, handshakePing); err != nil {
        return err
    }
    restorePing := conn.PingHandler()
    restorePong := conn.PongHandler()
    conn.SetPingHandler(func(string) error { return errHandshakeReply })
    conn.SetPongHandler(func(string) error { return errHandshakeReply })
    defer conn.SetPingHandler(restorePing)
    defer conn.SetPongHandler(restorePong)

    if _, _, err := conn.ReadMessage(); err != nil && !errors.Is(err, errHandshakeReply) {
        return err
    }
    return nil
}

// breakError carries a Handler's FlowBreak verdict out of a control-frame
// callback, which can only signal through the read path's error return.
type breakError struct{ err error }

func (e *breakError) Error() string {
    if e.err == nil {
        return "session: clean close"
    }
    return e.err.Error()
}

// installControlHandlers routes Ping/Pong control frames through the same
// Handler table as data frames.  gorilla surfaces control frames via
// callbacks inside ReadMessage rather than as returned messages, so the
// handler's Ping and Pong rows are reached from here at runtime.
func (m *manager) installControlHandlers(ctx context.Context, conn *websocket.Conn, q *Queue) {
    conn.SetPingHandler(func(string) error {
        flow, err := m.deps.Handler.HandleFrame(ctx, m.userID, q, websocket.PingMessage, nil)
        if flow == FlowBreak {
            return &breakError{err: err}
        }
        return nil
    })
    conn.SetPongHandler(func(string) error {
        flow, err := m.deps.Handler.HandleFrame(ctx, m.userID, q, websocket.PongMessage, nil)
        if flow == FlowBreak {
            return &breakError{err: err}
        }
        return nil
    })
}

func (m *manager) sendLoop(conn *websocket.Conn, q *Queue, log *zap.SugaredLogger) {
    for {
        msg, ok := q.Recv()
        if !ok {
            log.Debugw("send half exiting, queue closed")
            return
        }
        if err := writeServiceMessage(conn, msg); err != nil {
            // Assume the client is gone; the recv half is torn down by the
            // supervisor select.
            log.Debugw("websocket send error, disconnecting", "err", err)
            return
        }
    }
}

// writeServiceMessage converts one ServiceMessage to its wire frame and
// writes it.  Pong is the only variant that leaves as a control frame;
// everything else is the JSON envelope from the response codec.  An encode
// failure skips the frame and keeps the session alive.
func writeServiceMessage(conn *websocket.Conn, msg protocol.ServiceMessage) error {
    _ = conn.SetWriteDeadline(time.Now().Add(writeTimeout))
    if _, isPong := msg.(protocol.Pong); isPong {
        return conn.WriteMessage(websocket.PongMessage, nil)
    }
    frame, err := protocol.EncodeResponse(msg)
    if err != nil {
        logging.Sugar().Errorw("failed to encode outbound frame", "type", msg.Tag(), "err", err)
        return nil
    }
    return conn.WriteMessage(websocket.TextMessage, frame)
}

func (m *manager) recvLoop(ctx context.Context, conn *websocket.Conn, q *Queue, log *zap.SugaredLogger) {
    for {
        frameType, payload, err := conn.ReadMessage()
        if err != nil {
            var brk *breakError
            switch {
            case errors.As(err, &brk):
                if brk.err != nil {
                    log.Errorw("error handling control frame", "err", brk.err)
                }
            case websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway, websocket.CloseNoStatusReceived):
                // Peer-initiated close ends the session cleanly.
                flow, herr := m.deps.Handler.HandleFrame(ctx, m.userID, q, websocket.CloseMessage, nil)
                if flow == FlowBreak && herr != nil {
                    log.Errorw("error handling close frame", "err", herr)
                }
            default:
                log.Debugw("websocket receive error", "err", err)
            }
            return
        }

        flow, err := m.deps.Handler.HandleFrame(ctx, m.userID, q, frameType, payload)
        if flow == FlowBreak {
            if err != nil {
                log.Errorw("error handling websocket message", "err", err)
            }
            return
        }
    }
}
