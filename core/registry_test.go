package core

import (
	"errors"
	"sync"
	"testing"
)

func TestIdentityAllocStartsAtGenerationOne(t *testing.T) {
	m := NewIdentityManager[bufferMarker]()
	h := m.Alloc()
	if h.IsZero() {
		t.Fatal("Alloc returned zero handle")
	}
	if h.Generation() != 1 {
		t.Errorf("first generation = %d, want 1", h.Generation())
	}
	if h.Index() != 0 {
		t.Errorf("first index = %d, want 0", h.Index())
	}
}

func TestIdentityRecyclesWithBumpedGeneration(t *testing.T) {
	m := NewIdentityManager[bufferMarker]()
	a := m.Alloc()
	m.Release(a)
	b := m.Alloc()

	if b.Index() != a.Index() {
		t.Errorf("recycled index = %d, want %d", b.Index(), a.Index())
	}
	if b.Generation() != a.Generation()+1 {
		t.Errorf("recycled generation = %d, want %d", b.Generation(), a.Generation()+1)
	}
}

func TestStorageStaleHandleDoesNotResolve(t *testing.T) {
	s := NewStorage[int, bufferMarker](0)
	old := NewHandle[bufferMarker](3, 1)
	s.Insert(old, 42)

	if v, ok := s.Get(old); !ok || v != 42 {
		t.Fatalf("Get(old) = %v, %v", v, ok)
	}

	// Recycle the slot under a newer generation.
	s.Remove(old)
	fresh := NewHandle[bufferMarker](3, 2)
	s.Insert(fresh, 99)

	if _, ok := s.Get(old); ok {
		t.Error("stale handle resolved after recycle")
	}
	if v, ok := s.Get(fresh); !ok || v != 99 {
		t.Errorf("Get(fresh) = %v, %v", v, ok)
	}
}

func TestRegistryLifecycle(t *testing.T) {
	r := NewRegistry[string, textureMarker]()

	h := r.Register("shadow-map")
	if h.IsZero() {
		t.Fatal("Register returned zero handle")
	}

	got, err := r.Get(h)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got != "shadow-map" {
		t.Errorf("Get = %q", got)
	}

	if _, err := r.Unregister(h); err != nil {
		t.Fatalf("Unregister failed: %v", err)
	}

	if _, err := r.Get(h); err == nil {
		t.Error("Get after Unregister should fail")
	}
}

func TestRegistryDoubleFreeReportsGenerationMismatch(t *testing.T) {
	r := NewRegistry[string, textureMarker]()
	h := r.Register("a")
	if _, err := r.Unregister(h); err != nil {
		t.Fatalf("first Unregister failed: %v", err)
	}
	// Reuse the slot so the stale handle targets a recycled slot.
	r.Register("b")

	_, err := r.Unregister(h)
	if !errors.Is(err, ErrGenerationMismatch) {
		t.Errorf("double free error = %v, want ErrGenerationMismatch", err)
	}
}

func TestRegistryZeroHandle(t *testing.T) {
	r := NewRegistry[string, samplerMarker]()
	var zero Handle[samplerMarker]
	if _, err := r.Get(zero); !errors.Is(err, ErrInvalidHandle) {
		t.Errorf("Get(zero) = %v, want ErrInvalidHandle", err)
	}
}

func TestRegistryConcurrentRegisterUnregister(t *testing.T) {
	r := NewRegistry[int, bufferMarker]()

	const workers = 8
	const perWorker = 200

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(seed int) {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				h := r.Register(seed*perWorker + i)
				if v, err := r.Get(h); err != nil || v != seed*perWorker+i {
					t.Errorf("Get = %v, %v", v, err)
					return
				}
				if _, err := r.Unregister(h); err != nil {
					t.Errorf("Unregister: %v", err)
					return
				}
			}
		}(w)
	}
	wg.Wait()

	if n := r.Count(); n != 0 {
		t.Errorf("Count after churn = %d, want 0", n)
	}
}

func TestRawHandlePackUnpack(t *testing.T) {
	raw := Pack(7, 13)
	index, gen := raw.Unpack()
	if index != 7 || gen != 13 {
		t.Errorf("Unpack = (%d,%d), want (7,13)", index, gen)
	}
	if raw.IsZero() {
		t.Error("non-zero handle reported zero")
	}
	if !Pack(0, 0).IsZero() {
		t.Error("zero handle not reported zero")
	}
}
