// internal/session/directory.go
package session

import (
	"sync"

	"github.com/meshline/connector/internal/metrics"
)

// Directory is the node-local map of online users to their outbound queues.
// Insertions are first-writer-wins per user_id; removal happens exactly
// once, by the session that owns the entry, during teardown.  The dispatch
// endpoint and the request router both resolve targets through here.
type Directory struct {
    mu    sync.RWMutex
    users map[string]*Queue
}

// NewDirectory returns an empty directory.
func NewDirectory() *Directory {
    return &Directory{users: make(map[string]*Queue)}
}

// Insert installs q under userID unless an entry already exists.  It returns
// false without overwriting on conflict — a second concurrent connect for
// the same user must not displace the live session's queue.
func (d *Directory) Insert(userID string, q *Queue) bool {
    d.mu.Lock()
    defer d.mu.Unlock()
    if _, exists := d.users[userID]; exists {
        return false
    }
    d.users[userID] = q
    metrics.ActiveSessions.Set(float64(len(d.users)))
    return true
}

// Lookup returns the outbound queue for userID, if one is registered.
func (d *Directory) Lookup(userID string) (*Queue, bool) {
    d.mu.RLock()
    defer d.mu.RUnlock()
    q, ok := d.users[userID]
    return q, ok
}

// Remove deletes userID's entry, reporting whether one existed.
func (d *Directory) Remove(userID string) bool {
    d.mu.Lock()
    defer d.mu.Unlock()
    if _, exists := d.users[userID]; !exists {
        return false
    }
    delete(d.users, userID)
    metrics.ActiveSessions.Set(float64(len(d.users)))
    return true
}

// Len returns the number of online users on this node.
func (d *Directory) Len() int {
    d.mu.RLock()
    defer d.mu.RUnlock()
    return len(d.users)
}
