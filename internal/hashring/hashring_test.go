package hashring

import (
	"strconv"
	"testing"
)

func TestEmptyRingReturnsNoNode(t *testing.T) {
    r := New(10, nil)
    if _, ok := r.GetNode("anything"); ok {
        t.Fatal("expected no node from an empty ring")
    }
}

func TestAddNodeThenRemoveNodeIsIdentity(t *testing.T) {
    r := New(5, nil)
    before := r.Len()
    r.AddNode("svc-a")
    if r.Len() != before+5 {
        t.Fatalf("expected %d virtual hashes after add, got %d", before+5, r.Len())
    }
    r.RemoveNode("svc-a")
    if r.Len() != before {
        t.Fatalf("add then remove should be identity, got len=%d", r.Len())
    }
}

func TestSortedHashesStrictlyOrdered(t *testing.T) {
    r := New(8, nil)
    for _, n := range []string{"a", "b", "c", "d"} {
        r.AddNode(n)
    }
    r.mu.Lock()
    for i := 1; i < len(r.hashes); i++ {
        if r.hashes[i-1] >= r.hashes[i] {
            t.Fatalf("hashes not strictly ordered at %d: %d >= %d", i, r.hashes[i-1], r.hashes[i])
        }
    }
    r.mu.Unlock()
}

func TestGetNodeDeterministicWithoutMutation(t *testing.T) {
    r := New(16, nil)
    for _, n := range []string{"svc-1", "svc-2", "svc-3"} {
        r.AddNode(n)
    }
    for i := 0; i < 50; i++ {
        key := "key-" + strconv.Itoa(i)
        a, _ := r.GetNode(key)
        b, _ := r.GetNode(key)
        if a != b {
            t.Fatalf("two consecutive lookups for %q diverged: %q vs %q", key, a, b)
        }
    }
}

func TestReplicaCountPerNode(t *testing.T) {
    r := New(20, nil)
    r.AddNode("only-node")
    if r.Len() != 20 {
        t.Fatalf("expected 20 virtual entries for one node with 20 replicas, got %d", r.Len())
    }
}

func TestRemovedInstancesStopBeingReturned(t *testing.T) {
    r := New(12, nil)
    r.AddNode("alpha")
    r.AddNode("beta")
    r.RemoveNode("beta")
    for i := 0; i < 100; i++ {
        n, ok := r.GetNode("key-" + strconv.Itoa(i))
        if !ok {
            t.Fatal("expected a node")
        }
        if n == "beta" {
            t.Fatal("removed node beta was still returned")
        }
    }
}

func TestClear(t *testing.T) {
    r := New(4, nil)
    r.AddNode("x")
    r.Clear()
    if r.Len() != 0 {
        t.Fatalf("expected empty ring after Clear, got len=%d", r.Len())
    }
    if _, ok := r.GetNode("x"); ok {
        t.Fatal("expected no node after Clear")
    }
}
