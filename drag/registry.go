package drag

import (
	"github.com/jsphweid/timegrid/util"
)

// Registry keeps one handler per entity id. A handler is created the first
// time its id is referenced and disposed when the entity goes away.
type Registry[H any] struct {
	handlers map[string]H
	create   func(id string) (H, error)
	dispose  func(id string, h H)
}

func NewRegistry[H any](create func(id string) (H, error), dispose func(id string, h H)) *Registry[H] {
	return &Registry[H]{
		handlers: make(map[string]H),
		create:   create,
		dispose:  dispose,
	}
}

func (r *Registry[H]) Get(id string) (H, error) {
	if h, ok := r.handlers[id]; ok {
		return h, nil
	}
	h, err := r.create(id)
	if err != nil {
		var zero H
		return zero, err
	}
	r.handlers[id] = h
	log.WithField("id", id).Debug("handler created")
	return h, nil
}

func (r *Registry[H]) Lookup(id string) (H, bool) {
	h, ok := r.handlers[id]
	return h, ok
}

func (r *Registry[H]) Remove(id string) {
	h, ok := r.handlers[id]
	if !ok {
		return
	}
	delete(r.handlers, id)
	if r.dispose != nil {
		r.dispose(id, h)
	}
	log.WithField("id", id).Debug("handler disposed")
}

// Sync disposes every handler whose id is not in ids.
func (r *Registry[H]) Sync(ids []string) {
	keep := make(map[string]bool, len(ids))
	for _, id := range ids {
		keep[id] = true
	}
	for _, id := range util.SortedKeys(r.handlers) {
		if !keep[id] {
			r.Remove(id)
		}
	}
}

func (r *Registry[H]) Len() int { return len(r.handlers) }

// Each visits handlers in id order.
func (r *Registry[H]) Each(fn func(id string, h H)) {
	for _, id := range util.SortedKeys(r.handlers) {
		fn(id, r.handlers[id])
	}
}
