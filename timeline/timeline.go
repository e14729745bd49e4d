// Package timeline ties the track blocks of an arrangement to their drag
// surfaces, piano rolls and note editors.
package timeline

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jsphweid/timegrid/constants"
	"github.com/jsphweid/timegrid/diff"
	"github.com/jsphweid/timegrid/drag"
	"github.com/jsphweid/timegrid/gridlines"
	"github.com/jsphweid/timegrid/logging"
	"github.com/jsphweid/timegrid/model"
	"github.com/jsphweid/timegrid/musictime"
	"github.com/jsphweid/timegrid/snap"
	"github.com/jsphweid/timegrid/track"
	"github.com/jsphweid/timegrid/util"
)

var log = logging.For("timeline")

type Timeline struct {
	tempo   model.TempoMeter
	blocks  map[string]model.TrackBlock
	order   []string
	editors map[string]*track.Editor

	feed   *diff.Feed
	tracks *drag.Tracks
	rolls  *drag.Registry[*drag.Notes]
	audio  *track.Ready
	grid   *gridlines.Renderer

	// OnAction receives what a click on a track asks the view to do.
	OnAction func(id string, a track.Action)
	// OnNoteClick is called when a note is pressed and released in place.
	OnNoteClick func(trackID string, noteID int)
	// OnGridLines receives recomputed gridlines. It runs on the debounce
	// timer goroutine.
	OnGridLines func(lines []model.GridLine)
}

// New returns an empty timeline. Gridline recomputes wait for debounce
// after the last viewport or length change.
func New(tempo model.TempoMeter, debounce time.Duration) (*Timeline, error) {
	if err := tempo.Validate(); err != nil {
		return nil, err
	}
	grid, err := snap.TrackGrid(tempo.TimeSignature)
	if err != nil {
		return nil, err
	}
	t := &Timeline{
		tempo:   tempo,
		blocks:  make(map[string]model.TrackBlock),
		editors: make(map[string]*track.Editor),
		feed:    diff.NewFeed(),
		audio:   track.NewReady(),
	}
	t.tracks, err = drag.NewTracks(grid, t.Track)
	if err != nil {
		return nil, err
	}
	t.grid, err = gridlines.NewRenderer(1, tempo.TimeSignature, gridlines.Viewport{}, debounce, func(lines []model.GridLine) {
		if t.OnGridLines != nil {
			t.OnGridLines(lines)
		}
	})
	if err != nil {
		return nil, err
	}
	t.tracks.OnPositionChange = t.place
	t.tracks.OnClick = func(id string) { t.Click(id, model.Position{}) }
	t.rolls = drag.NewRegistry(t.newPianoRoll, func(id string, n *drag.Notes) {
		if n.Active() {
			log.WithField("track", id).Debug("piano roll closed mid-session")
		}
		n.Abandon()
	})
	return t, nil
}

func (t *Timeline) Tempo() model.TempoMeter { return t.tempo }
func (t *Timeline) Feed() *diff.Feed        { return t.feed }
func (t *Timeline) Surface() *drag.Tracks   { return t.tracks }

// AddTrack places a new block at the start of the next free lane. MIDI and
// drum tracks get a note editor.
func (t *Timeline) AddTrack(v model.Variant, durationSeconds float64) model.TrackBlock {
	b := model.TrackBlock{
		ID:              uuid.NewString(),
		Position:        model.Position{Y: float64(len(t.order)) * constants.TrackHeightPx},
		DurationSeconds: durationSeconds,
		Variant:         v,
	}
	t.blocks[b.ID] = b
	t.order = append(t.order, b.ID)
	if v != model.Audio {
		t.editors[b.ID] = track.NewEditor(b.ID, t.feed)
	}
	log.WithField("track", b.ID).Infof("added %v track", v)
	t.refreshGrid()
	return b
}

func (t *Timeline) RemoveTrack(id string) error {
	if _, ok := t.blocks[id]; !ok {
		return model.StaleSession(id)
	}
	delete(t.blocks, id)
	delete(t.editors, id)
	for i, o := range t.order {
		if o == id {
			t.order = append(t.order[:i], t.order[i+1:]...)
			break
		}
	}
	t.rolls.Sync(t.order)
	t.feed.Forget(id)
	t.refreshGrid()
	log.WithField("track", id).Info("removed track")
	return nil
}

func (t *Timeline) Track(id string) (model.TrackBlock, bool) {
	b, ok := t.blocks[id]
	return b, ok
}

// Tracks returns the blocks in the order they were added.
func (t *Timeline) Tracks() []model.TrackBlock {
	res := make([]model.TrackBlock, 0, len(t.order))
	for _, id := range t.order {
		res = append(res, t.blocks[id])
	}
	return res
}

func (t *Timeline) Editor(id string) (*track.Editor, bool) {
	e, ok := t.editors[id]
	return e, ok
}

// Width is the right edge of the furthest block. Blocks without a duration
// do not extend the timeline.
func (t *Timeline) Width() (float64, error) {
	var res float64
	for _, b := range t.blocks {
		w, err := musictime.BlockWidth(b, t.tempo)
		if err != nil {
			return 0, err
		}
		if !w.Full {
			res = util.Max(res, b.Position.X+w.Px)
		}
	}
	return res, nil
}

// Measures is the number of measures needed to show every block, at least
// one.
func (t *Timeline) Measures() (int, error) {
	w, err := t.Width()
	if err != nil {
		return 0, err
	}
	n := int(w / constants.MeasureWidthPx)
	if float64(n)*constants.MeasureWidthPx < w {
		n++
	}
	return util.Max(n, 1), nil
}

// SetTempo changes tempo and meter. Snapping grids follow the new meter;
// block positions stay where they are.
func (t *Timeline) SetTempo(tempo model.TempoMeter) error {
	if err := tempo.Validate(); err != nil {
		return err
	}
	grid, err := snap.TrackGrid(tempo.TimeSignature)
	if err != nil {
		return err
	}
	noteGrid, err := drag.DefaultNoteGrid(tempo.TimeSignature)
	if err != nil {
		return err
	}
	if err := t.tracks.SetGrid(grid); err != nil {
		return err
	}
	t.rolls.Each(func(_ string, n *drag.Notes) {
		// noteGrid was validated above
		_ = n.SetGrid(noteGrid)
	})
	t.tempo = tempo
	t.refreshGrid()
	return nil
}

// SetViewport schedules a gridline recompute for the visible window.
func (t *Timeline) SetViewport(vp gridlines.Viewport) {
	t.grid.Resize(vp)
	t.tracks.SetScroll(vp.ScrollX, 0)
}

// GridLines returns the gridlines of the last recompute.
func (t *Timeline) GridLines() ([]model.GridLine, error) { return t.grid.Lines() }

// FlushGrid recomputes the gridlines without waiting for the debounce.
func (t *Timeline) FlushGrid() ([]model.GridLine, error) { return t.grid.Flush() }

func (t *Timeline) refreshGrid() {
	measures, err := t.Measures()
	if err != nil {
		log.WithError(err).Warn("could not size timeline")
		return
	}
	t.grid.SetTimeline(measures, t.tempo.TimeSignature)
}

// Nudge moves a block one grid cell left or right.
func (t *Timeline) Nudge(id string, forward bool) error {
	return t.tracks.Nudge(id, forward)
}

// Render draws the content of a block through its variant.
func (t *Timeline) Render(id string) ([]track.Block, error) {
	b, ok := t.blocks[id]
	if !ok {
		return nil, model.StaleSession(id)
	}
	c := track.Content{Block: b, Tempo: t.tempo}
	if e, ok := t.editors[id]; ok {
		c.Notes = e.Notes()
	}
	return track.For(b.Variant).RenderContent(c)
}

// Click dispatches a click on a block to its variant.
func (t *Timeline) Click(id string, p model.Position) track.Action {
	b, ok := t.blocks[id]
	if !ok {
		return track.ActionSelect
	}
	a := track.For(b.Variant).HandleClick(track.Content{Block: b, Tempo: t.tempo}, p)
	log.WithField("track", id).Debugf("click: %v", a)
	if t.OnAction != nil {
		t.OnAction(id, a)
	}
	return a
}

// PianoRoll returns the note surface of a MIDI or drum track, creating it on
// first use.
func (t *Timeline) PianoRoll(id string) (*drag.Notes, error) {
	return t.rolls.Get(id)
}

// ReleaseAll resolves every active session. It backs the document-level
// pointer-up and mouse-leave listeners.
func (t *Timeline) ReleaseAll() error {
	errs := []error{t.tracks.Leave()}
	t.rolls.Each(func(_ string, n *drag.Notes) {
		errs = append(errs, n.Leave())
	})
	return errors.Join(errs...)
}

// AudioReady is resolved by the host once its audio context is running.
func (t *Timeline) AudioReady() *track.Ready { return t.audio }

// Activate waits for audio to be available before handing out an audio
// track for playback.
func (t *Timeline) Activate(ctx context.Context, id string) (model.TrackBlock, error) {
	b, ok := t.blocks[id]
	if !ok {
		return model.TrackBlock{}, model.StaleSession(id)
	}
	if b.Variant == model.Audio {
		if err := t.audio.Wait(ctx); err != nil {
			return model.TrackBlock{}, err
		}
	}
	return b, nil
}

func (t *Timeline) place(id string, pos model.Position, isDragEnd bool) {
	b, ok := t.blocks[id]
	if !ok {
		return
	}
	b.Position = pos
	t.blocks[id] = b
	if isDragEnd {
		log.WithField("track", id).Debugf("moved to %v,%v", pos.X, pos.Y)
		t.refreshGrid()
	}
}

func (t *Timeline) newPianoRoll(id string) (*drag.Notes, error) {
	e, ok := t.editors[id]
	if !ok {
		if _, exists := t.blocks[id]; exists {
			return nil, model.InvalidParameter("track %s has no notes", id)
		}
		return nil, model.StaleSession(id)
	}
	grid, err := drag.DefaultNoteGrid(t.tempo.TimeSignature)
	if err != nil {
		return nil, err
	}
	n, err := drag.NewNotes(id, grid, e)
	if err != nil {
		return nil, err
	}
	l := log.WithField("track", id)
	n.OnNoteMove = func(_ string, noteID int, _, newPos model.NotePos) {
		if err := e.MoveNote(noteID, newPos); err != nil {
			l.WithError(err).Debug("move rejected")
		}
	}
	n.OnNoteResize = func(_ string, noteID int, _, newLength, _, newStart int) {
		if err := e.ResizeNote(noteID, newStart, newLength); err != nil {
			l.WithError(err).Debug("resize rejected")
		}
	}
	n.OnGridClick = func(_ string, pos model.NotePos) {
		if _, _, err := e.AddNoteAt(pos); err != nil {
			l.WithError(err).Debug("note not created")
		}
	}
	n.OnClick = func(noteID int) {
		if t.OnNoteClick != nil {
			t.OnNoteClick(id, noteID)
		}
	}
	return n, nil
}
