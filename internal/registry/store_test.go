package registry

import (
	"strconv"
	"sync"
	"testing"
)

func record(id string) ServiceRecord[string] {
    return ServiceRecord[string]{
        Instance: ServiceInstance{ID: id, Name: "svc", Address: id + ":9000"},
        Extra:    "conn-" + id,
    }
}

func TestEmptyStorePicksNothing(t *testing.T) {
    s := NewStore[string](10, nil)
    if _, ok := s.Pick("any"); ok {
        t.Fatal("empty store must not pick")
    }
    if got := len(s.List()); got != 0 {
        t.Fatalf("empty store listed %d records", got)
    }
}

func TestUpdateReplacesWholeGeneration(t *testing.T) {
    s := NewStore[string](10, nil)
    s.Update([]ServiceRecord[string]{record("a"), record("b")})

    if got := len(s.List()); got != 2 {
        t.Fatalf("listed %d records, want 2", got)
    }
    rec, ok := s.Pick("some-key")
    if !ok {
        t.Fatal("pick on populated store failed")
    }
    if rec.Instance.ID != "a" && rec.Instance.ID != "b" {
        t.Fatalf("picked unknown instance %q", rec.Instance.ID)
    }

    // Stale records become unreachable after the swap.
    s.Update([]ServiceRecord[string]{record("c")})
    for _, key := range []string{"k1", "k2", "k3", "k4"} {
        rec, ok := s.Pick(key)
        if !ok || rec.Instance.ID != "c" {
            t.Fatalf("pick(%q) after swap = %v/%v, want instance c", key, rec.Instance.ID, ok)
        }
    }
}

func TestPickIsStickyBetweenUpdates(t *testing.T) {
    s := NewStore[string](50, nil)
    s.Update([]ServiceRecord[string]{record("a"), record("b"), record("c")})

    first, ok := s.Pick("user-42")
    if !ok {
        t.Fatal("pick failed")
    }
    for i := 0; i < 10; i++ {
        again, _ := s.Pick("user-42")
        if again.Instance.ID != first.Instance.ID {
            t.Fatalf("pick changed from %q to %q with no mutation", first.Instance.ID, again.Instance.ID)
        }
    }
}

func TestClearEmptiesStore(t *testing.T) {
    s := NewStore[string](10, nil)
    s.Update([]ServiceRecord[string]{record("a")})
    s.Clear()
    if _, ok := s.Pick("k"); ok {
        t.Fatal("pick after clear should miss")
    }
}

func TestConcurrentReadersNeverSeePartialState(t *testing.T) {
    s := NewStore[string](20, nil)
    gens := [][]ServiceRecord[string]{
        {record("a"), record("b")},
        {record("c"), record("d"), record("e")},
        {record("f")},
    }
    valid := map[string]bool{"a": true, "b": true, "c": true, "d": true, "e": true, "f": true}
    s.Update(gens[0])

    var wg sync.WaitGroup
    stop := make(chan struct{})
    for i := 0; i < 4; i++ {
        wg.Add(1)
        go func(i int) {
            defer wg.Done()
            for j := 0; ; j++ {
                select {
                case <-stop:
                    return
                default:
                }
                rec, ok := s.Pick("key-" + strconv.Itoa(i*1000+j))
                if ok && !valid[rec.Instance.ID] {
                    t.Errorf("picked record %q from no known generation", rec.Instance.ID)
                    return
                }
            }
        }(i)
    }
    for i := 0; i < 200; i++ {
        s.Update(gens[i%len(gens)])
    }
    close(stop)
    wg.Wait()
}
