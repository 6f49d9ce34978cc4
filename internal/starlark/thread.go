package starlark

import (
	"go.starlark.net/starlark"
)

const defaultPoolSize = 10

// ThreadPool recycles Starlark threads across check calls. Threads are
// not safe for concurrent use, so each call borrows one for its
// duration. The channel capacity bounds how many idle threads are kept.
type ThreadPool struct {
	free chan *starlark.Thread
}

// NewThreadPool creates a pool holding at most size idle threads.
// Sizes below one fall back to the default.
func NewThreadPool(size int) *ThreadPool {
	if size <= 0 {
		size = defaultPoolSize
	}
	return &ThreadPool{free: make(chan *starlark.Thread, size)}
}

// Get hands out a pooled thread, minting a fresh one when the pool is
// drained. The name shows up in Starlark backtraces.
func (p *ThreadPool) Get(name string) *starlark.Thread {
	select {
	case th := <-p.free:
		th.Name = name
		return th
	default:
	}
	return &starlark.Thread{
		Name: name,
		// print() from rule code is discarded
		Print: func(_ *starlark.Thread, _ string) {},
	}
}

// Put hands a thread back for reuse. A full pool discards it.
func (p *ThreadPool) Put(th *starlark.Thread) {
	th.Name = ""
	select {
	case p.free <- th:
	default:
	}
}

// Size reports how many threads are parked in the pool.
func (p *ThreadPool) Size() int {
	return len(p.free)
}
