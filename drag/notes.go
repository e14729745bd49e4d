package drag

import (
	"math"

	"github.com/jsphweid/timegrid/constants"
	"github.com/jsphweid/timegrid/model"
	"github.com/jsphweid/timegrid/snap"
	"github.com/jsphweid/timegrid/util"
)

// ResizeHandlePx is the width of the grab zone at each end of a note.
const ResizeHandlePx = 6.0

// NoteSource is the read-only view of one track's notes.
type NoteSource interface {
	Note(id int) (model.Note, bool)
	Notes() []model.Note
}

// NoteGrid is the piano-roll cell size: one column is a sixteenth, one row
// a MIDI pitch.
type NoteGrid struct {
	ColumnWidth float64
	RowHeight   float64
}

func DefaultNoteGrid(ts model.TimeSignature) (NoteGrid, error) {
	w, err := snap.Sixteenth.Width(ts)
	if err != nil {
		return NoteGrid{}, err
	}
	return NoteGrid{ColumnWidth: w, RowHeight: constants.NoteRowHeightPx}, nil
}

func (g NoteGrid) Validate() error {
	if g.ColumnWidth <= 0 || g.RowHeight <= 0 {
		return model.InvalidParameter("note grid %vx%v must be positive", g.ColumnWidth, g.RowHeight)
	}
	return nil
}

func (g NoteGrid) origin(n model.Note) model.Position {
	return model.Position{X: float64(n.Column) * g.ColumnWidth, Y: float64(n.Row) * g.RowHeight}
}

// Cell returns the grid cell under p.
func (g NoteGrid) Cell(p model.Position) model.NotePos {
	row, _ := snap.PitchRow(p.Y, g.RowHeight)
	col := int(math.Floor(p.X / g.ColumnWidth))
	return model.NotePos{Row: row, Column: util.Max(col, 0)}
}

// column snaps x to the nearest column boundary.
func (g NoteGrid) column(x float64) (int, error) {
	px, err := snap.Snap(x, g.ColumnWidth)
	if err != nil {
		return 0, err
	}
	return int(math.Round(px / g.ColumnWidth)), nil
}

// Notes is the piano-roll surface of one track.
type Notes struct {
	Machine[int]

	trackID string
	grid    NoteGrid
	source  NoteSource

	start   model.Note
	current model.Note

	// OnPreview receives the note as it would be committed, on every move.
	OnPreview func(noteID int, n model.Note)
	// OnNoteMove is called on pointer-up when row or column changed.
	OnNoteMove func(trackID string, noteID int, oldPos, newPos model.NotePos)
	// OnNoteResize is called on pointer-up when column or length changed.
	OnNoteResize func(trackID string, noteID int, oldLength, newLength, oldStart, newStart int)
	// OnClick is called when a note is pressed and released in place.
	OnClick func(noteID int)
	// OnGridClick is called when the pointer goes down on an empty cell.
	OnGridClick func(trackID string, pos model.NotePos)
	// OnSuppressSelection toggles text selection while a session is active.
	OnSuppressSelection func(suppress bool)
}

func NewNotes(trackID string, grid NoteGrid, source NoteSource) (*Notes, error) {
	if err := grid.Validate(); err != nil {
		return nil, err
	}
	return &Notes{trackID: trackID, grid: grid, source: source}, nil
}

func (n *Notes) TrackID() string { return n.trackID }

func (n *Notes) SetGrid(grid NoteGrid) error {
	if err := grid.Validate(); err != nil {
		return err
	}
	n.grid = grid
	return nil
}

// HitTest finds the note under p and whether p is on one of its resize
// handles. Later notes are on top.
func (n *Notes) HitTest(p model.Position) (model.Note, Kind, bool) {
	notes := n.source.Notes()
	for i := len(notes) - 1; i >= 0; i-- {
		note := notes[i]
		o := n.grid.origin(note)
		w := float64(note.Length) * n.grid.ColumnWidth
		if p.X < o.X || p.X >= o.X+w || p.Y < o.Y || p.Y >= o.Y+n.grid.RowHeight {
			continue
		}
		handle := math.Min(ResizeHandlePx, w/3)
		switch {
		case p.X >= o.X+w-handle:
			return note, ResizeRight, true
		case p.X < o.X+handle:
			return note, ResizeLeft, true
		default:
			return note, Move, true
		}
	}
	return model.Note{}, Move, false
}

func (n *Notes) Handle(ev model.PointerEvent) error {
	switch ev.Type {
	case model.PointerDown:
		return n.Down(ev)
	case model.PointerMove:
		return n.Move(ev)
	case model.PointerUp:
		return n.Up(ev)
	case model.PointerLeave:
		return n.Leave()
	}
	return nil
}

// Down starts a move or resize on the note under the pointer, or reports a
// grid click on an empty cell.
func (n *Notes) Down(ev model.PointerEvent) error {
	if n.Active() {
		log.WithField("track", n.trackID).Debug("pointer-down ignored, session already active")
		return nil
	}
	p := n.pointer(ev)
	note, kind, ok := n.HitTest(p)
	if !ok {
		if n.OnGridClick != nil {
			n.OnGridClick(n.trackID, n.grid.Cell(p))
		}
		return nil
	}
	return n.Begin(note.ID, kind, ev)
}

// Begin starts a session on a known note, bypassing hit testing.
func (n *Notes) Begin(noteID int, kind Kind, ev model.PointerEvent) error {
	note, ok := n.source.Note(noteID)
	if !ok {
		return model.StaleSession(noteID)
	}
	p := n.pointer(ev)
	o := n.grid.origin(note)
	if !n.begin(Session[int]{
		Kind:         kind,
		TargetID:     noteID,
		StartPointer: p,
		StartTarget:  o,
		LastSnapped:  o,
		LastPointer:  p,
	}) {
		return nil
	}
	n.start, n.current = note, note
	n.suppress(true)
	return nil
}

func (n *Notes) Move(ev model.PointerEvent) error {
	if !n.Active() {
		return nil
	}
	if _, ok := n.source.Note(n.session.TargetID); !ok {
		n.suppress(false)
		return n.drop()
	}
	if err := n.track(n.pointer(ev)); err != nil {
		return err
	}
	if n.OnPreview != nil {
		n.OnPreview(n.session.TargetID, n.current)
	}
	return nil
}

func (n *Notes) Up(ev model.PointerEvent) error {
	if !n.Active() {
		return nil
	}
	return n.finish(n.pointer(ev))
}

// Leave resolves an active session at the last known pointer.
func (n *Notes) Leave() error {
	if !n.Active() {
		return nil
	}
	return n.finish(n.session.LastPointer)
}

// Abandon ends an active session without committing it, for surfaces
// whose track is going away.
func (n *Notes) Abandon() {
	if !n.Active() {
		return
	}
	n.suppress(false)
	_ = n.drop()
}

func (n *Notes) track(p model.Position) error {
	s := n.session
	s.LastPointer = p
	next := n.start

	switch s.Kind {
	case Move:
		raw := s.StartTarget.Add(p.Sub(s.StartPointer))
		col, err := n.grid.column(raw.X)
		if err != nil {
			return err
		}
		row, err := snap.PitchRow(raw.Y, n.grid.RowHeight)
		if err != nil {
			return err
		}
		next.Column, next.Row = col, row
	case ResizeRight:
		col, err := n.grid.column(p.X)
		if err != nil {
			return err
		}
		next.Length = util.Max(1, col-n.start.Column)
	case ResizeLeft:
		col, err := n.grid.column(p.X)
		if err != nil {
			return err
		}
		end := n.start.End()
		next.Column = util.Max(0, util.Min(col, end-1))
		next.Length = end - next.Column
	}

	n.current = next
	s.LastSnapped = n.grid.origin(next)
	return nil
}

func (n *Notes) finish(p model.Position) error {
	n.suppress(false)
	if _, ok := n.source.Note(n.session.TargetID); !ok {
		return n.drop()
	}
	if err := n.track(p); err != nil {
		n.end()
		return err
	}
	s := n.end()
	before, after := n.start, n.current

	if s.LastPointer == s.StartPointer {
		if n.OnClick != nil {
			n.OnClick(s.TargetID)
		}
		return nil
	}

	switch s.Kind {
	case Move:
		if before.Pos() != after.Pos() && n.OnNoteMove != nil {
			n.OnNoteMove(n.trackID, s.TargetID, before.Pos(), after.Pos())
		}
	default:
		changed := before.Length != after.Length || before.Column != after.Column
		if changed && n.OnNoteResize != nil {
			n.OnNoteResize(n.trackID, s.TargetID, before.Length, after.Length, before.Column, after.Column)
		}
	}
	return nil
}

func (n *Notes) suppress(on bool) {
	if n.OnSuppressSelection != nil {
		n.OnSuppressSelection(on)
	}
}
