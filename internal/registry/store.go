// internal/registry/store.go
package registry

import (
	"sync"

	"github.com/meshline/connector/internal/hashring"
)

// Store is the capability set every registry implementation offers: pick one
// record by routing key, list all records, atomically replace the whole set,
// or clear it. Implementations must make Update appear atomic to concurrent
// readers — a reader's Pick must never observe a ring built from one
// generation of records and a map built from another.
type Store[T any] interface {
    Pick(key string) (ServiceRecord[T], bool)
    List() []ServiceRecord[T]
    Update(records []ServiceRecord[T])
    Clear()
}

// hashringStore is the default Store: a consistent-hash ring over instance
// IDs plus a side map from instance ID to its full record. Reads are frequent
// (every inbound request); writes are rare (once per refresh interval), so a
// sync.RWMutex is the right primitive rather than a channel-based design.
type hashringStore[T any] struct {
    replicas int
    hasher   hashring.Hasher

    mu      sync.RWMutex
    ring    *hashring.Ring
    records map[string]ServiceRecord[T]
}

// NewStore returns a Store backed by a consistent-hash ring with the given
// virtual-replica count per instance. A nil hasher falls back to
// hashring.DefaultHasher (xxHash64, seed 0).
func NewStore[T any](replicas int, hasher hashring.Hasher) Store[T] {
    if replicas < 1 {
        replicas = 1
    }
    return &hashringStore[T]{
        replicas: replicas,
        hasher:   hasher,
        ring:     hashring.New(replicas, hasher),
        records:  make(map[string]ServiceRecord[T]),
    }
}

func (s *hashringStore[T]) Pick(key string) (ServiceRecord[T], bool) {
    s.mu.RLock()
    defer s.mu.RUnlock()

    id, ok := s.ring.GetNode(key)
    if !ok {
        var zero ServiceRecord[T]
        return zero, false
    }
    rec, ok := s.records[id]
    return rec, ok
}

func (s *hashringStore[T]) List() []ServiceRecord[T] {
    s.mu.RLock()
    defer s.mu.RUnlock()

    out := make([]ServiceRecord[T], 0, len(s.records))
    for _, rec := range s.records {
        out = append(out, rec)
    }
    return out
}

// Update builds a fresh ring and map off to the side, then swaps both under
// the write lock in one critical section — a reader taking the read lock
// either sees the old generation in full or the new one in full, never a mix.
func (s *hashringStore[T]) Update(records []ServiceRecord[T]) {
    ring := hashring.New(s.replicas, s.hasher)
    m := make(map[string]ServiceRecord[T], len(records))
    for _, rec := range records {
        ring.AddNode(rec.Instance.ID)
        m[rec.Instance.ID] = rec
    }

    s.mu.Lock()
    s.ring = ring
    s.records = m
    s.mu.Unlock()
}

func (s *hashringStore[T]) Clear() {
    s.mu.Lock()
    s.ring = hashring.New(s.replicas, s.hasher)
    s.records = make(map[string]ServiceRecord[T])
    s.mu.Unlock()
}
