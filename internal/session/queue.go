// internal/session/queue.go
// Package session owns the per-user WebSocket lifecycle: the bounded
// outbound queue, the online directory, and the manager that runs a
// connection's send/recv halves to ordered teardown.
package session

import (
	"context"
	"errors"
	"sync"

	"github.com/meshline/connector/internal/protocol"
)

// QueueCapacity bounds every session's outbound queue.  The queue is the
// single pressure point for slow clients: once it fills, senders (the
// request router and the dispatch endpoint) block until the send half
// drains a slot or the session tears down.
const QueueCapacity = 64

// ErrQueueClosed is returned by Send once the owning session has entered
// teardown.
var ErrQueueClosed = errors.New("session: queue closed")

// Queue is a bounded FIFO of ServiceMessage with a single consumer (the
// session's send half) and any number of producers.
type Queue struct {
    ch        chan protocol.ServiceMessage
    closed    chan struct{}
    closeOnce sync.Once
}

// NewQueue returns an open queue of capacity QueueCapacity.
func NewQueue() *Queue {
    return &Queue{
        ch:     make(chan protocol.ServiceMessage, QueueCapacity),
        closed: make(chan struct{}),
    }
}

// Send enqueues msg, blocking while the queue is full.  It returns
// ErrQueueClosed if the queue closed before or while waiting, and ctx.Err()
// if the caller's context ends first.
func (q *Queue) Send(ctx context.Context, msg protocol.ServiceMessage) error {
    select {
    case <-q.closed:
        return ErrQueueClosed
    default:
    }
    select {
    case q.ch <- msg:
        return nil
    case <-q.closed:
        return ErrQueueClosed
    case <-ctx.Done():
        return ctx.Err()
    }
}

// Recv blocks until a message is available, returning ok=false only once the
// queue is closed and fully drained.  Messages enqueued before Close are
// still delivered, in order.
func (q *Queue) Recv() (protocol.ServiceMessage, bool) {
    select {
    case m := <-q.ch:
        return m, true
    case <-q.closed:
        select {
        case m := <-q.ch:
            return m, true
        default:
            return nil, false
        }
    }
}

// Close marks the queue closed.  Idempotent; pending Sends unblock with
// ErrQueueClosed, the consumer drains what was already enqueued.
func (q *Queue) Close() {
    q.closeOnce.Do(func() { close(q.closed) })
}
