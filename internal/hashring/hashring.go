// internal/hashring/hashring.go
// Package hashring implements a consistent-hash ring with virtual replicas
// over a pluggable 64-bit hasher. It is the routing primitive behind every
// per-service upstream pool: RegistryStore picks an instance for a request
// key by walking this ring, not by round-robin or random choice, so that a
// given key keeps mapping to the same instance across refreshes as long as
// that instance stays in the ring.
package hashring

import (
	"sort"
	"strconv"
	"sync"

	"github.com/cespare/xxhash/v2"
)

// Hasher maps an arbitrary string to a 64-bit hash. The default is xxHash64
// with seed 0; callers may plug in another for testing determinism or to
// avoid adversarial collisions.
type Hasher func(s string) uint64

// DefaultHasher is xxHash64, seed 0.
func DefaultHasher(s string) uint64 {
    return xxhash.Sum64String(s)
}

// Ring is a consistent-hash ring with virtual replicas. The zero value is not
// usable; construct with New.
//
// Every method takes the ring's own mutex, so single calls are safe for
// concurrent use. Swapping a whole generation of nodes atomically is left to
// callers (see internal/registry.Store, which builds a fresh Ring and swaps it
// in under a sync.RWMutex so that a reader never observes a partially rebuilt
// ring).
type Ring struct {
    replicas int
    hasher   Hasher

    mu      sync.Mutex // guards hashes and owners in every method, reads included
    hashes  []uint64          // sorted ascending
    owners  map[uint64]string // virtual hash -> real node name
}

// New returns an empty ring with the given replica count per node. A
// non-positive replicas is clamped to 1.
func New(replicas int, hasher Hasher) *Ring {
    if replicas < 1 {
        replicas = 1
    }
    if hasher == nil {
        hasher = DefaultHasher
    }
    return &Ring{
        replicas: replicas,
        hasher:   hasher,
        owners:   make(map[uint64]string),
    }
}

// AddNode inserts replicas virtual hashes of the form "name#i" for i in
// [0,replicas) and keeps the ring sorted. If two real nodes collide on the
// same virtual hash, the most recently added node wins — real collisions in a
// 64-bit space are negligible and this tie-break is simply the accepted
// behavior, not a bug to guard against.
func (r *Ring) AddNode(name string) {
    r.mu.Lock()
    defer r.mu.Unlock()

    for i := 0; i < r.replicas; i++ {
        h := r.hasher(name + "#" + strconv.Itoa(i))
        if _, exists := r.owners[h]; !exists {
            r.hashes = append(r.hashes, h)
        }
        r.owners[h] = name
    }
    sort.Slice(r.hashes, func(i, j int) bool { return r.hashes[i] < r.hashes[j] })
}

// RemoveNode deletes the replicas virtual hashes belonging to name, if
// present, preserving sort order of what remains.
func (r *Ring) RemoveNode(name string) {
    r.mu.Lock()
    defer r.mu.Unlock()

    for i := 0; i < r.replicas; i++ {
        h := r.hasher(name + "#" + strconv.Itoa(i))
        if owner, ok := r.owners[h]; ok && owner == name {
            delete(r.owners, h)
        }
    }
    r.rebuildSortedLocked()
}

func (r *Ring) rebuildSortedLocked() {
    hashes := make([]uint64, 0, len(r.owners))
    for h := range r.owners {
        hashes = append(hashes, h)
    }
    sort.Slice(hashes, func(i, j int) bool { return hashes[i] < hashes[j] })
    r.hashes = hashes
}

// GetNode returns the name of the node owning key: the owner of the least
// virtual hash >= hash(key), wrapping around to the smallest hash if key's
// hash is greater than every entry. An empty ring returns ("", false).
func (r *Ring) GetNode(key string) (string, bool) {
    r.mu.Lock()
    defer r.mu.Unlock()

    if len(r.hashes) == 0 {
        return "", false
    }
    h := r.hasher(key)
    idx := sort.Search(len(r.hashes), func(i int) bool { return r.hashes[i] >= h })
    if idx == len(r.hashes) {
        idx = 0
    }
    return r.owners[r.hashes[idx]], true
}

// Clear empties the ring.
func (r *Ring) Clear() {
    r.mu.Lock()
    defer r.mu.Unlock()
    r.hashes = nil
    r.owners = make(map[uint64]string)
}

// Len returns the number of distinct virtual hashes currently in the ring
// (i.e. replicas * distinct real nodes, minus any collisions).
func (r *Ring) Len() int {
    r.mu.Lock()
    defer r.mu.Unlock()
    return len(r.hashes)
}
