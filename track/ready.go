package track

import (
	"context"
	"sync"
)

// Ready is resolved once, when a dependency (e.g. the audio context) can
// be used. Waiters block until then or until their context ends.
type Ready struct {
	once sync.Once
	done chan struct{}
	err  error
}

func NewReady() *Ready { return &Ready{done: make(chan struct{})} }

// Resolve marks the dependency ready, or failed when err is not nil. Only
// the first call has an effect.
func (r *Ready) Resolve(err error) {
	r.once.Do(func() {
		r.err = err
		close(r.done)
	})
}

func (r *Ready) Done() <-chan struct{} { return r.done }

func (r *Ready) Wait(ctx context.Context) error {
	select {
	case <-r.done:
		return r.err
	case <-ctx.Done():
		return ctx.Err()
	}
}
