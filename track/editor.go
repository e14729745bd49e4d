package track

import (
	"errors"
	"fmt"

	"github.com/Southclaws/fault"
	"github.com/Southclaws/fault/fmsg"
	"github.com/jsphweid/timegrid/constants"
	"github.com/jsphweid/timegrid/diff"
	"github.com/jsphweid/timegrid/history"
	"github.com/jsphweid/timegrid/logging"
	"github.com/jsphweid/timegrid/model"
	"github.com/jsphweid/timegrid/util"
)

var log = logging.For("track")

// ErrOccupied is returned when an edit would put two notes of a track on
// the same row and column.
var ErrOccupied = errors.New("cell occupied")

func cloneNotes(notes []model.Note) []model.Note {
	return append([]model.Note(nil), notes...)
}

// Editor owns the notes of one track. Every committed edit is published to
// the diff feed and can be undone.
type Editor struct {
	trackID string
	notes   []model.Note
	nextID  int
	feed    *diff.Feed
	history *history.History[[]model.Note]

	// DefaultLength is the length, in columns, of notes created by a click.
	DefaultLength int
}

func NewEditor(trackID string, feed *diff.Feed) *Editor {
	return &Editor{
		trackID:       trackID,
		nextID:        1,
		feed:          feed,
		history:       history.New(history.DefaultMaxUndo, cloneNotes),
		DefaultLength: 1,
	}
}

func (e *Editor) TrackID() string { return e.trackID }

func (e *Editor) Note(id int) (model.Note, bool) {
	i := e.index(id)
	if i < 0 {
		return model.Note{}, false
	}
	return e.notes[i], true
}

func (e *Editor) Notes() []model.Note { return cloneNotes(e.notes) }

func (e *Editor) index(id int) int {
	for i, n := range e.notes {
		if n.ID == id {
			return i
		}
	}
	return -1
}

// Overlapping finds a note in pos.Row that starts within the overlap
// tolerance of pos.Column.
func (e *Editor) Overlapping(pos model.NotePos) (model.Note, bool) {
	for _, n := range e.notes {
		if n.Row != pos.Row {
			continue
		}
		if util.Max(n.Column-pos.Column, pos.Column-n.Column) < constants.OverlapToleranceColumns {
			return n, true
		}
	}
	return model.Note{}, false
}

func (e *Editor) occupied(id int, pos model.NotePos) bool {
	for _, n := range e.notes {
		if n.ID != id && n.Pos() == pos {
			return true
		}
	}
	return false
}

// AddNoteAt creates a note at pos unless one already starts there. The
// returned bool reports whether a note was created.
func (e *Editor) AddNoteAt(pos model.NotePos) (model.Note, bool, error) {
	if n, ok := e.Overlapping(pos); ok {
		log.WithField("track", e.trackID).Debugf("click on %v hits existing note %d", pos, n.ID)
		return n, false, nil
	}
	n := model.Note{
		ID:       e.nextID,
		Row:      pos.Row,
		Column:   pos.Column,
		Length:   util.Max(1, e.DefaultLength),
		Velocity: constants.DefaultVelocity,
		TrackID:  e.trackID,
	}
	if err := n.Validate(); err != nil {
		return model.Note{}, false, model.InvalidParameter("%v", err)
	}
	e.nextID++
	next := append(e.Notes(), n)
	e.commit(next)
	return n, true, nil
}

func (e *Editor) MoveNote(id int, pos model.NotePos) error {
	return e.update(id, func(n *model.Note) error {
		if e.occupied(id, pos) {
			return fault.Wrap(ErrOccupied, fmsg.With(fmt.Sprintf("row %d column %d", pos.Row, pos.Column)))
		}
		n.Row, n.Column = pos.Row, pos.Column
		return nil
	})
}

func (e *Editor) ResizeNote(id, column, length int) error {
	return e.update(id, func(n *model.Note) error {
		if column != n.Column && e.occupied(id, model.NotePos{Row: n.Row, Column: column}) {
			return fault.Wrap(ErrOccupied, fmsg.With(fmt.Sprintf("row %d column %d", n.Row, column)))
		}
		n.Column, n.Length = column, length
		return nil
	})
}

func (e *Editor) SetVelocity(id, velocity int) error {
	return e.update(id, func(n *model.Note) error {
		n.Velocity = velocity
		return nil
	})
}

func (e *Editor) DeleteNote(id int) error {
	i := e.index(id)
	if i < 0 {
		return model.StaleSession(id)
	}
	next := e.Notes()
	next = append(next[:i], next[i+1:]...)
	e.commit(next)
	return nil
}

// Load replaces all notes, e.g. after importing a file. Notes are
// renumbered from 1 and assigned to this track.
func (e *Editor) Load(notes []model.Note) error {
	next := make([]model.Note, 0, len(notes))
	seen := make(map[model.NotePos]bool, len(notes))
	for i, n := range notes {
		n.ID = i + 1
		n.TrackID = e.trackID
		if err := n.Validate(); err != nil {
			return model.InvalidParameter("%v", err)
		}
		if seen[n.Pos()] {
			return fault.Wrap(ErrOccupied, fmsg.With(fmt.Sprintf("duplicate note at row %d column %d", n.Row, n.Column)))
		}
		seen[n.Pos()] = true
		next = append(next, n)
	}
	e.nextID = len(next) + 1
	e.commit(next)
	return nil
}

func (e *Editor) Undo() bool {
	prev, ok := e.history.Undo(e.notes)
	if !ok {
		return false
	}
	e.restore(prev)
	return true
}

func (e *Editor) Redo() bool {
	next, ok := e.history.Redo(e.notes)
	if !ok {
		return false
	}
	e.restore(next)
	return true
}

func (e *Editor) CanUndo() bool { return e.history.CanUndo() }
func (e *Editor) CanRedo() bool { return e.history.CanRedo() }

func (e *Editor) update(id int, fn func(n *model.Note) error) error {
	i := e.index(id)
	if i < 0 {
		return model.StaleSession(id)
	}
	next := e.Notes()
	if err := fn(&next[i]); err != nil {
		return err
	}
	if err := next[i].Validate(); err != nil {
		return model.InvalidParameter("%v", err)
	}
	e.commit(next)
	return nil
}

// commit stores next, records the previous state and publishes the diff.
// Edits that change nothing leave no history entry.
func (e *Editor) commit(next []model.Note) {
	if len(diff.Notes(e.notes, next)) == 0 && sameVelocities(e.notes, next) {
		return
	}
	e.history.Push(e.notes)
	e.notes = next
	e.publish()
}

func (e *Editor) restore(notes []model.Note) {
	e.notes = notes
	for _, n := range notes {
		e.nextID = util.Max(e.nextID, n.ID+1)
	}
	e.publish()
}

func (e *Editor) publish() {
	if e.feed != nil {
		e.feed.Publish(e.trackID, e.notes)
	}
}

func sameVelocities(a, b []model.Note) bool {
	velocities := make(map[int]int, len(a))
	for _, n := range a {
		velocities[n.ID] = n.Velocity
	}
	for _, n := range b {
		if v, ok := velocities[n.ID]; ok && v != n.Velocity {
			return false
		}
	}
	return true
}
