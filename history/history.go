// Package history keeps bounded undo and redo stacks of snapshots.
package history

const DefaultMaxUndo = 64

type History[T any] struct {
	undo, redo []T
	max        int
	clone      func(T) T
}

// New returns a history holding at most size entries per stack. clone copies
// a snapshot so that later edits cannot reach into the stacks.
func New[T any](size int, clone func(T) T) *History[T] {
	if size <= 0 {
		size = DefaultMaxUndo
	}
	return &History[T]{max: size, clone: clone}
}

// Push records the state before a change and clears the redo stack.
func (h *History[T]) Push(before T) {
	h.undo = h.limit(append(h.undo, h.clone(before)))
	h.redo = h.redo[:0]
}

// Undo returns the state to restore, saving current for Redo.
func (h *History[T]) Undo(current T) (T, bool) {
	if len(h.undo) == 0 {
		var zero T
		return zero, false
	}
	prev := h.undo[len(h.undo)-1]
	h.undo = h.undo[:len(h.undo)-1]
	h.redo = h.limit(append(h.redo, h.clone(current)))
	return prev, true
}

func (h *History[T]) Redo(current T) (T, bool) {
	if len(h.redo) == 0 {
		var zero T
		return zero, false
	}
	next := h.redo[len(h.redo)-1]
	h.redo = h.redo[:len(h.redo)-1]
	h.undo = h.limit(append(h.undo, h.clone(current)))
	return next, true
}

func (h *History[T]) CanUndo() bool { return len(h.undo) > 0 }
func (h *History[T]) CanRedo() bool { return len(h.redo) > 0 }
func (h *History[T]) Len() int      { return len(h.undo) }

func (h *History[T]) limit(stack []T) []T {
	if len(stack) > h.max {
		copy(stack, stack[len(stack)-h.max:])
		stack = stack[:h.max]
	}
	return stack
}
