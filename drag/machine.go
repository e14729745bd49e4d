// Package drag runs pointer-driven move and resize sessions for track
// blocks and piano-roll notes. A surface holds at most one session; a
// pointer-down during an active session is ignored until it resolves.
package drag

import (
	"github.com/jsphweid/timegrid/logging"
	"github.com/jsphweid/timegrid/model"
)

var log = logging.For("drag")

type State int

const (
	Idle State = iota
	Dragging
	Resizing
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Dragging:
		return "dragging"
	case Resizing:
		return "resizing"
	default:
		return "unknown"
	}
}

type Kind int

const (
	Move Kind = iota
	ResizeLeft
	ResizeRight
)

func (k Kind) String() string {
	switch k {
	case Move:
		return "move"
	case ResizeLeft:
		return "resize-left"
	case ResizeRight:
		return "resize-right"
	default:
		return "unknown"
	}
}

// Session lives from pointer-down to pointer-up. Pointer positions are in
// content space: client coordinates plus the scroll offset.
type Session[ID comparable] struct {
	Kind         Kind
	TargetID     ID
	StartPointer model.Position
	StartTarget  model.Position
	LastSnapped  model.Position
	LastPointer  model.Position
}

// Machine owns the single active session of a surface.
type Machine[ID comparable] struct {
	session *Session[ID]
	scroll  model.Position
}

func (m *Machine[ID]) State() State {
	switch {
	case m.session == nil:
		return Idle
	case m.session.Kind == Move:
		return Dragging
	default:
		return Resizing
	}
}

func (m *Machine[ID]) Active() bool { return m.session != nil }

// Session returns a copy of the active session.
func (m *Machine[ID]) Session() (Session[ID], bool) {
	if m.session == nil {
		return Session[ID]{}, false
	}
	return *m.session, true
}

// SetScroll records the scroll offset of the viewport containing the
// surface.
func (m *Machine[ID]) SetScroll(x, y float64) {
	m.scroll = model.Position{X: x, Y: y}
}

func (m *Machine[ID]) pointer(ev model.PointerEvent) model.Position {
	return ev.Client().Add(m.scroll)
}

func (m *Machine[ID]) begin(s Session[ID]) bool {
	if m.session != nil {
		return false
	}
	m.session = &s
	log.WithField("target", s.TargetID).Debugf("%v session started", s.Kind)
	return true
}

func (m *Machine[ID]) end() Session[ID] {
	s := *m.session
	m.session = nil
	return s
}

// drop discards the session of a target that disappeared mid-drag.
func (m *Machine[ID]) drop() error {
	s := m.end()
	log.WithField("target", s.TargetID).Debug("target gone, dropping session")
	return model.StaleSession(s.TargetID)
}
