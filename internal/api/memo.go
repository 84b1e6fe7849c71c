package api

import (
	"context"
	"strconv"
	"sync"

	"golang.org/x/sync/singleflight"
)

// Memo caches successful per-entity payloads for the life of a run.
// Concurrent calls for the same id share one in-flight request; failures are
// never stored, so a later call retries.
type Memo[T any] struct {
	mu    sync.Mutex
	items map[int]T
	group singleflight.Group
}

// NewMemo creates an empty memo.
func NewMemo[T any]() *Memo[T] {
	return &Memo[T]{items: make(map[int]T)}
}

// Do returns the memoised value for id or calls fetch once to obtain it.
// The shared fetch runs detached from any one caller's cancellation, so a
// caller that gives up does not fail the others waiting on the same id; each
// caller still returns as soon as its own ctx is done.
func (m *Memo[T]) Do(ctx context.Context, id int, fetch func(context.Context) (T, error)) (T, error) {
	if v, ok := m.Get(id); ok {
		return v, nil
	}

	ch := m.group.DoChan(strconv.Itoa(id), func() (any, error) {
		if v, ok := m.Get(id); ok {
			return v, nil
		}
		v, err := fetch(context.WithoutCancel(ctx))
		if err != nil {
			return v, err
		}
		m.mu.Lock()
		m.items[id] = v
		m.mu.Unlock()
		return v, nil
	})

	var zero T
	select {
	case <-ctx.Done():
		return zero, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return zero, res.Err
		}
		return res.Val.(T), nil
	}
}

// Get returns a memoised value.
func (m *Memo[T]) Get(id int) (T, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.items[id]
	return v, ok
}

// Len returns the number of memoised values.
func (m *Memo[T]) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.items)
}

// Forget drops id from the memo.
func (m *Memo[T]) Forget(id int) {
	m.mu.Lock()
	delete(m.items, id)
	m.mu.Unlock()
}
