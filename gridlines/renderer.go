// Package gridlines computes the timeline's measure, beat and subdivision
// lines for the visible viewport.
package gridlines

import (
	"sync"
	"time"

	"github.com/bep/debounce"
	"github.com/jsphweid/timegrid/logging"
	"github.com/jsphweid/timegrid/model"
)

var log = logging.For("gridlines")

// Renderer keeps the lines for the current viewport. Viewport changes are
// coalesced: a recompute waits for the resize events to settle and a newer
// event replaces a pending one.
type Renderer struct {
	mu       sync.Mutex
	measures int
	ts       model.TimeSignature
	viewport Viewport
	lines    []model.GridLine
	err      error

	debounced func(f func())
	onChange  func([]model.GridLine)
}

// NewRenderer computes the initial lines synchronously. onChange, if not
// nil, is called after every debounced recompute.
func NewRenderer(measures int, ts model.TimeSignature, vp Viewport, delay time.Duration, onChange func([]model.GridLine)) (*Renderer, error) {
	r := &Renderer{
		measures:  measures,
		ts:        ts,
		viewport:  vp,
		debounced: debounce.New(delay),
		onChange:  onChange,
	}
	lines, err := Lines(measures, ts, vp)
	if err != nil {
		return nil, err
	}
	r.lines = lines
	return r, nil
}

// Resize records the new viewport and schedules a recompute.
func (r *Renderer) Resize(vp Viewport) {
	r.mu.Lock()
	r.viewport = vp
	r.mu.Unlock()
	r.debounced(r.recompute)
}

// SetTimeline changes the measure count or meter and schedules a recompute.
func (r *Renderer) SetTimeline(measures int, ts model.TimeSignature) {
	r.mu.Lock()
	r.measures = measures
	r.ts = ts
	r.mu.Unlock()
	r.debounced(r.recompute)
}

// Flush recomputes right away. A pending debounced recompute still fires
// later and yields the same lines.
func (r *Renderer) Flush() ([]model.GridLine, error) {
	r.recompute()
	return r.Lines()
}

func (r *Renderer) Lines() ([]model.GridLine, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lines, r.err
}

func (r *Renderer) recompute() {
	r.mu.Lock()
	lines, err := Lines(r.measures, r.ts, r.viewport)
	if err != nil {
		log.WithError(err).Error("could not compute gridlines")
		r.err = err
		r.mu.Unlock()
		return
	}
	r.lines, r.err = lines, nil
	onChange := r.onChange
	r.mu.Unlock()

	log.Debugf("recomputed %d gridlines", len(lines))
	if onChange != nil {
		onChange(lines)
	}
}
