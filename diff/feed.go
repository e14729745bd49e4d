package diff

import (
	"sync"

	"github.com/jsphweid/timegrid/logging"
	"github.com/jsphweid/timegrid/model"
	"github.com/jsphweid/timegrid/util"
)

var log = logging.For("diff")

// Subscriber receives the diffs for one track. It is called synchronously
// from Publish, in subscription order.
type Subscriber func(trackID string, diffs []model.NoteDiff)

// Feed remembers the last published collection of every track and notifies
// subscribers with what changed.
type Feed struct {
	mu          sync.Mutex
	snapshots   map[string][]model.Note
	subscribers map[int]Subscriber
	nextID      int
}

func NewFeed() *Feed {
	return &Feed{
		snapshots:   make(map[string][]model.Note),
		subscribers: make(map[int]Subscriber),
	}
}

// Subscribe registers fn and returns a function that removes it.
func (f *Feed) Subscribe(fn Subscriber) (unsubscribe func()) {
	f.mu.Lock()
	defer f.mu.Unlock()
	id := f.nextID
	f.nextID++
	f.subscribers[id] = fn
	return func() {
		f.mu.Lock()
		defer f.mu.Unlock()
		delete(f.subscribers, id)
	}
}

// Publish records notes as the current collection of the track and sends
// the diff against the previous one. Nothing is sent when nothing changed.
func (f *Feed) Publish(trackID string, notes []model.Note) []model.NoteDiff {
	f.mu.Lock()
	prev := f.snapshots[trackID]
	snapshot := make([]model.Note, len(notes))
	copy(snapshot, notes)
	f.snapshots[trackID] = snapshot
	subs := make([]Subscriber, 0, len(f.subscribers))
	for _, id := range util.SortedKeys(f.subscribers) {
		subs = append(subs, f.subscribers[id])
	}
	f.mu.Unlock()

	diffs := Notes(prev, notes)
	if len(diffs) == 0 {
		return nil
	}
	log.WithField("track", trackID).Debugf("publishing %d note diffs", len(diffs))
	for _, s := range subs {
		s(trackID, diffs)
	}
	return diffs
}

// Forget drops the snapshot of a removed track. Subscribers get the
// deletes of its remaining notes.
func (f *Feed) Forget(trackID string) {
	f.Publish(trackID, nil)
	f.mu.Lock()
	delete(f.snapshots, trackID)
	f.mu.Unlock()
}

func (f *Feed) Snapshot(trackID string) []model.Note {
	f.mu.Lock()
	defer f.mu.Unlock()
	res := make([]model.Note, len(f.snapshots[trackID]))
	copy(res, f.snapshots[trackID])
	return res
}
