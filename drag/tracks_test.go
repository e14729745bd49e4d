package drag

import (
	"testing"

	"github.com/jsphweid/timegrid/model"
	"github.com/jsphweid/timegrid/snap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type positionChange struct {
	id        string
	pos       model.Position
	isDragEnd bool
}

type trackFixture struct {
	blocks   map[string]model.TrackBlock
	changes  []positionChange
	clicks   []string
	suppress []bool
	surface  *Tracks
}

func newTrackFixture(t *testing.T) *trackFixture {
	f := &trackFixture{blocks: map[string]model.TrackBlock{
		"a": {ID: "a", Position: model.Position{X: 100, Y: 80}, DurationSeconds: 4},
		"b": {ID: "b", Position: model.Position{X: 0, Y: 160}},
	}}
	grid, err := snap.TrackGrid(model.TimeSignature{Numerator: 4, Denominator: 4})
	require.NoError(t, err)
	s, err := NewTracks(grid, func(id string) (model.TrackBlock, bool) {
		b, ok := f.blocks[id]
		return b, ok
	})
	require.NoError(t, err)
	s.OnPositionChange = func(id string, pos model.Position, isDragEnd bool) {
		f.changes = append(f.changes, positionChange{id, pos, isDragEnd})
	}
	s.OnClick = func(id string) { f.clicks = append(f.clicks, id) }
	s.OnSuppressSelection = func(on bool) { f.suppress = append(f.suppress, on) }
	f.surface = s
	return f
}

func ev(typ model.PointerType, x, y float64) model.PointerEvent {
	return model.PointerEvent{Type: typ, ClientX: x, ClientY: y}
}

func down(target string, x, y float64) model.PointerEvent {
	e := ev(model.PointerDown, x, y)
	e.Target = target
	return e
}

func TestTrackDragSnapsAndEndsOnUp(t *testing.T) {
	f := newTrackFixture(t)
	s := f.surface

	require.NoError(t, s.Handle(down("a", 110, 100)))
	assert.Equal(t, Dragging, s.State())

	require.NoError(t, s.Handle(ev(model.PointerMove, 117, 100)))
	require.NoError(t, s.Handle(ev(model.PointerMove, 141, 150)))
	require.NoError(t, s.Handle(ev(model.PointerUp, 141, 150)))

	assert := assert.New(t)
	assert.Equal(Idle, s.State())
	assert.Equal([]positionChange{
		{"a", model.Position{X: 112.5, Y: 80}, false},
		{"a", model.Position{X: 125, Y: 160}, false},
		{"a", model.Position{X: 125, Y: 160}, true},
	}, f.changes)
	assert.Equal([]bool{true, false}, f.suppress)
	assert.Empty(f.clicks)
}

func TestTrackClickWithoutDisplacement(t *testing.T) {
	f := newTrackFixture(t)
	s := f.surface

	require.NoError(t, s.Handle(down("a", 110, 100)))
	require.NoError(t, s.Handle(ev(model.PointerMove, 160, 100)))
	require.NoError(t, s.Handle(ev(model.PointerUp, 110, 100)))

	assert.Equal(t, []string{"a"}, f.clicks)
	for _, c := range f.changes {
		assert.False(t, c.isDragEnd)
	}
}

func TestTrackDragClampsAtZero(t *testing.T) {
	f := newTrackFixture(t)
	s := f.surface

	for _, p := range []model.Position{{X: -1e6, Y: -1e6}, {X: -99, Y: 5}, {X: 3, Y: -400}} {
		require.NoError(t, s.Handle(down("a", 200, 200)))
		require.NoError(t, s.Handle(ev(model.PointerMove, p.X, p.Y)))
		require.NoError(t, s.Handle(ev(model.PointerUp, p.X, p.Y)))
	}
	for _, c := range f.changes {
		assert.GreaterOrEqual(t, c.pos.X, 0.0)
		assert.GreaterOrEqual(t, c.pos.Y, 0.0)
	}
}

func TestTrackSecondDownIgnored(t *testing.T) {
	f := newTrackFixture(t)
	s := f.surface

	require.NoError(t, s.Handle(down("a", 110, 100)))
	require.NoError(t, s.Handle(down("b", 10, 170)))
	sess, ok := s.Session()
	require.True(t, ok)
	assert.Equal(t, "a", sess.TargetID)

	require.NoError(t, s.Handle(ev(model.PointerUp, 300, 100)))
	require.Len(t, f.changes, 1)
	assert.Equal(t, "a", f.changes[0].id)
	assert.True(t, f.changes[0].isDragEnd)
}

func TestTrackScrollOffset(t *testing.T) {
	f := newTrackFixture(t)
	s := f.surface

	s.SetScroll(400, 0)
	require.NoError(t, s.Handle(down("a", 10, 100)))
	sess, _ := s.Session()
	assert.Equal(t, model.Position{X: 410, Y: 100}, sess.StartPointer)

	// the viewport scrolls while dragging; the block follows the content
	s.SetScroll(450, 0)
	require.NoError(t, s.Handle(ev(model.PointerUp, 10, 100)))
	require.Len(t, f.changes, 1)
	assert.Equal(t, model.Position{X: 150, Y: 80}, f.changes[0].pos)
}

func TestTrackLeaveResolvesSession(t *testing.T) {
	f := newTrackFixture(t)
	s := f.surface

	require.NoError(t, s.Handle(down("a", 110, 100)))
	require.NoError(t, s.Handle(ev(model.PointerMove, 210, 100)))
	require.NoError(t, s.Handle(model.PointerEvent{Type: model.PointerLeave}))

	assert.Equal(t, Idle, s.State())
	last := f.changes[len(f.changes)-1]
	assert.True(t, last.isDragEnd)
	assert.Equal(t, model.Position{X: 200, Y: 80}, last.pos)

	// a stray up afterwards does nothing
	require.NoError(t, s.Handle(ev(model.PointerUp, 0, 0)))
	assert.Len(t, f.changes, 2)
}

func TestTrackStaleSessionDropped(t *testing.T) {
	f := newTrackFixture(t)
	s := f.surface

	require.NoError(t, s.Handle(down("a", 110, 100)))
	delete(f.blocks, "a")

	err := s.Handle(ev(model.PointerMove, 300, 100))
	assert.True(t, model.IsStaleSession(err))
	assert.Equal(t, Idle, s.State())
	assert.Empty(t, f.changes)
	assert.Equal(t, []bool{true, false}, f.suppress)

	err = s.Handle(down("gone", 0, 0))
	assert.True(t, model.IsStaleSession(err))
	assert.Equal(t, Idle, s.State())
}

func TestNewTracksInvalidGrid(t *testing.T) {
	_, err := NewTracks(snap.Grid{}, nil)
	assert.True(t, model.IsInvalidParameter(err))
}

func TestTrackNudge(t *testing.T) {
	f := newTrackFixture(t)
	s := f.surface

	require.NoError(t, s.Nudge("a", true))
	require.NoError(t, s.Nudge("a", false))
	require.NoError(t, s.Nudge("b", false))
	assert.True(t, model.IsStaleSession(s.Nudge("gone", true)))

	assert.Equal(t, []positionChange{
		{"a", model.Position{X: 112.5, Y: 80}, true},
		{"a", model.Position{X: 87.5, Y: 80}, true},
	}, f.changes)
}
