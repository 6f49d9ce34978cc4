package starlark

import (
	"testing"
)

func TestThreadPool_GetPut(t *testing.T) {
	pool := NewThreadPool(2)

	if pool.Size() != 0 {
		t.Errorf("expected empty pool, got size %d", pool.Size())
	}

	thread := pool.Get("check")
	if thread == nil {
		t.Fatal("expected a thread")
	}
	if thread.Name != "check" {
		t.Errorf("expected thread name 'check', got %q", thread.Name)
	}

	pool.Put(thread)
	if pool.Size() != 1 {
		t.Errorf("expected pool size 1, got %d", pool.Size())
	}

	// A pooled thread is reused and renamed
	reused := pool.Get("other")
	if reused != thread {
		t.Error("expected the pooled thread to be reused")
	}
	if reused.Name != "other" {
		t.Errorf("expected thread name 'other', got %q", reused.Name)
	}
}

func TestThreadPool_MaxSize(t *testing.T) {
	pool := NewThreadPool(1)

	a := pool.Get("a")
	b := pool.Get("b")

	pool.Put(a)
	pool.Put(b) // discarded, pool is full

	if pool.Size() != 1 {
		t.Errorf("expected pool size 1, got %d", pool.Size())
	}
}

func TestThreadPool_DefaultSize(t *testing.T) {
	pool := NewThreadPool(0)
	if cap(pool.free) != 10 {
		t.Errorf("expected default capacity 10, got %d", cap(pool.free))
	}
}
