package resilience

import "sync"

// Group deduplicates concurrent calls that share a key. Callers that
// arrive while a call is in flight wait for it and receive its result.
type Group[T any] struct {
	mu    sync.Mutex
	calls map[string]*flight[T]
}

type flight[T any] struct {
	wg  sync.WaitGroup
	val T
	err error
}

// Do reports shared=true when the result came from another caller's run.
func (g *Group[T]) Do(key string, fn func() (T, error)) (val T, err error, shared bool) {
	g.mu.Lock()
	if g.calls == nil {
		g.calls = make(map[string]*flight[T])
	}
	if c, ok := g.calls[key]; ok {
		g.mu.Unlock()
		c.wg.Wait()
		return c.val, c.err, true
	}

	c := &flight[T]{}
	c.wg.Add(1)
	g.calls[key] = c
	g.mu.Unlock()

	defer func() {
		g.mu.Lock()
		delete(g.calls, key)
		g.mu.Unlock()
		c.wg.Done()
	}()

	c.val, c.err = fn()
	return c.val, c.err, false
}

// SingleFlight is the untyped form used by caches holding mixed values.
type SingleFlight = Group[any]
