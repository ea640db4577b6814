package resilience

import "sync"

// SingleFlight collapses concurrent calls sharing a key into a single
// execution. The stat provider clients key on the request path, so a
// burst of identical fetches reaches the upstream once.
//
// The zero value is ready to use.
type SingleFlight struct {
	mu       sync.Mutex
	inflight map[string]*flightResult
}

type flightResult struct {
	done chan struct{}
	val  any
	err  error
}

// Do runs fn once per key at a time. Callers arriving while an
// identical call is in flight block until it finishes and receive its
// result; shared reports whether the result came from another caller's
// execution.
func (f *SingleFlight) Do(key string, fn func() (any, error)) (val any, err error, shared bool) {
	f.mu.Lock()
	if existing, ok := f.inflight[key]; ok {
		f.mu.Unlock()
		<-existing.done
		return existing.val, existing.err, true
	}
	if f.inflight == nil {
		f.inflight = make(map[string]*flightResult)
	}
	result := &flightResult{done: make(chan struct{})}
	f.inflight[key] = result
	f.mu.Unlock()

	result.val, result.err = fn()
	close(result.done)

	f.mu.Lock()
	delete(f.inflight, key)
	f.mu.Unlock()

	return result.val, result.err, false
}
