package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/meshline/connector/internal/protocol"
)

func TestQueueDeliversInOrder(t *testing.T) {
    q := NewQueue()
    ctx := context.Background()

    for i := 0; i < 10; i++ {
        if err := q.Send(ctx, protocol.CreateMessageRsp{MessageID: string(rune('a' + i))}); err != nil {
            t.Fatalf("send %d: %v", i, err)
        }
    }
    for i := 0; i < 10; i++ {
        msg, ok := q.Recv()
        if !ok {
            t.Fatalf("recv %d: queue reported closed", i)
        }
        rsp := msg.(protocol.CreateMessageRsp)
        if want := string(rune('a' + i)); rsp.MessageID != want {
            t.Fatalf("recv %d: got %q, want %q", i, rsp.MessageID, want)
        }
    }
}

func TestQueueSendBlocksWhenFull(t *testing.T) {
    q := NewQueue()
    ctx := context.Background()

    for i := 0; i < QueueCapacity; i++ {
        if err := q.Send(ctx, protocol.Pong{}); err != nil {
            t.Fatalf("fill %d: %v", i, err)
        }
    }

    unblocked := make(chan error, 1)
    go func() {
        unblocked <- q.Send(ctx, protocol.Pong{})
    }()

    select {
    case err := <-unblocked:
        t.Fatalf("send on a full queue returned early: %v", err)
    case <-time.After(50 * time.Millisecond):
    }

    // Draining one slot releases the blocked sender.
    if _, ok := q.Recv(); !ok {
        t.Fatal("recv on full queue failed")
    }
    select {
    case err := <-unblocked:
        if err != nil {
            t.Fatalf("blocked send failed after drain: %v", err)
        }
    case <-time.After(time.Second):
        t.Fatal("send did not unblock after a slot freed")
    }
}

func TestQueueCloseUnblocksSenderAndDrainsReceiver(t *testing.T) {
    q := NewQueue()
    ctx := context.Background()

    for i := 0; i < QueueCapacity; i++ {
        if err := q.Send(ctx, protocol.Pong{}); err != nil {
            t.Fatalf("fill %d: %v", i, err)
        }
    }

    unblocked := make(chan error, 1)
    go func() {
        unblocked <- q.Send(ctx, protocol.Pong{})
    }()

    q.Close()
    select {
    case err := <-unblocked:
        if !errors.Is(err, ErrQueueClosed) {
            t.Fatalf("blocked send after close: got %v, want ErrQueueClosed", err)
        }
    case <-time.After(time.Second):
        t.Fatal("send did not unblock on close")
    }

    // Everything enqueued before the close is still delivered.
    for i := 0; i < QueueCapacity; i++ {
        if _, ok := q.Recv(); !ok {
            t.Fatalf("drain %d: queue reported empty early", i)
        }
    }
    if _, ok := q.Recv(); ok {
        t.Fatal("recv after drain should report closed")
    }

    if err := q.Send(ctx, protocol.Pong{}); !errors.Is(err, ErrQueueClosed) {
        t.Fatalf("send after close: got %v, want ErrQueueClosed", err)
    }
}

func TestQueueSendHonorsContext(t *testing.T) {
    q := NewQueue()
    ctx := context.Background()
    for i := 0; i < QueueCapacity; i++ {
        if err := q.Send(ctx, protocol.Pong{}); err != nil {
            t.Fatalf("fill %d: %v", i, err)
        }
    }

    cancelCtx, cancel := context.WithTimeout(ctx, 20*time.Millisecond)
    defer cancel()
    if err := q.Send(cancelCtx, protocol.Pong{}); !errors.Is(err, context.DeadlineExceeded) {
        t.Fatalf("send with expired context: got %v, want deadline exceeded", err)
    }
}
