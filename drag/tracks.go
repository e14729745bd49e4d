package drag

import (
	"github.com/jsphweid/timegrid/model"
	"github.com/jsphweid/timegrid/snap"
)

// TrackLookup reads a track block from the caller's current collection.
type TrackLookup func(id string) (model.TrackBlock, bool)

// Tracks moves track blocks on the timeline. x snaps to the subdivision
// grid and y to the track lanes.
type Tracks struct {
	Machine[string]

	grid   snap.Grid
	lookup TrackLookup

	// OnPositionChange is called on every move with isDragEnd false and once
	// on pointer-up with isDragEnd true.
	OnPositionChange func(id string, pos model.Position, isDragEnd bool)
	// OnClick is called instead of a drag end when the pointer did not move.
	OnClick func(id string)
	// OnSuppressSelection toggles text selection while a drag is active.
	OnSuppressSelection func(suppress bool)
}

func NewTracks(grid snap.Grid, lookup TrackLookup) (*Tracks, error) {
	if err := grid.Validate(); err != nil {
		return nil, err
	}
	return &Tracks{grid: grid, lookup: lookup}, nil
}

// SetGrid replaces the snapping grid, e.g. after a meter change.
func (t *Tracks) SetGrid(grid snap.Grid) error {
	if err := grid.Validate(); err != nil {
		return err
	}
	t.grid = grid
	return nil
}

// Handle dispatches a pointer event. The target of a down event is the
// track id under the pointer.
func (t *Tracks) Handle(ev model.PointerEvent) error {
	switch ev.Type {
	case model.PointerDown:
		return t.Down(ev.Target, ev)
	case model.PointerMove:
		return t.Move(ev)
	case model.PointerUp:
		return t.Up(ev)
	case model.PointerLeave:
		return t.Leave()
	}
	return nil
}

func (t *Tracks) Down(id string, ev model.PointerEvent) error {
	if t.Active() {
		log.WithField("target", id).Debug("pointer-down ignored, session already active")
		return nil
	}
	b, ok := t.lookup(id)
	if !ok {
		return model.StaleSession(id)
	}
	p := t.pointer(ev)
	t.begin(Session[string]{
		Kind:         Move,
		TargetID:     id,
		StartPointer: p,
		StartTarget:  b.Position,
		LastSnapped:  b.Position,
		LastPointer:  p,
	})
	t.suppress(true)
	return nil
}

func (t *Tracks) Move(ev model.PointerEvent) error {
	if !t.Active() {
		return nil
	}
	if _, ok := t.lookup(t.session.TargetID); !ok {
		t.suppress(false)
		return t.drop()
	}
	pos, err := t.track(t.pointer(ev))
	if err != nil {
		return err
	}
	if t.OnPositionChange != nil {
		t.OnPositionChange(t.session.TargetID, pos, false)
	}
	return nil
}

func (t *Tracks) Up(ev model.PointerEvent) error {
	if !t.Active() {
		return nil
	}
	return t.finish(t.pointer(ev))
}

// Leave resolves an active session at the last known pointer. It is wired
// to the global pointer-up and mouse-leave listeners so that losing pointer
// capture never leaves the surface stuck.
func (t *Tracks) Leave() error {
	if !t.Active() {
		return nil
	}
	return t.finish(t.session.LastPointer)
}

// Nudge moves a block to the neighbouring grid line, as for an arrow key.
// It is ignored while a drag is active.
func (t *Tracks) Nudge(id string, forward bool) error {
	if t.Active() {
		return nil
	}
	b, ok := t.lookup(id)
	if !ok {
		return model.StaleSession(id)
	}
	pos := model.Position{X: t.grid.Next(b.Position.X, forward), Y: b.Position.Y}
	if pos != b.Position && t.OnPositionChange != nil {
		t.OnPositionChange(id, pos, true)
	}
	return nil
}

func (t *Tracks) track(p model.Position) (model.Position, error) {
	s := t.session
	s.LastPointer = p
	raw := s.StartTarget.Add(p.Sub(s.StartPointer))
	pos, err := t.grid.Position(raw)
	if err != nil {
		return model.Position{}, err
	}
	s.LastSnapped = pos
	return pos, nil
}

func (t *Tracks) finish(p model.Position) error {
	if _, ok := t.lookup(t.session.TargetID); !ok {
		t.suppress(false)
		return t.drop()
	}
	if _, err := t.track(p); err != nil {
		t.end()
		t.suppress(false)
		return err
	}
	s := t.end()
	t.suppress(false)

	if s.LastPointer == s.StartPointer {
		if t.OnClick != nil {
			t.OnClick(s.TargetID)
		}
		return nil
	}
	if t.OnPositionChange != nil {
		t.OnPositionChange(s.TargetID, s.LastSnapped, true)
	}
	return nil
}

func (t *Tracks) suppress(on bool) {
	if t.OnSuppressSelection != nil {
		t.OnSuppressSelection(on)
	}
}
