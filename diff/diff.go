// Package diff reconciles note collections after an edit.
package diff

import (
	"github.com/jsphweid/timegrid/model"
	"github.com/jsphweid/timegrid/util"
)

func byID(notes []model.Note) map[int]model.Note {
	res := make(map[int]model.Note, len(notes))
	for _, n := range notes {
		res[n.ID] = n
	}
	return res
}

// Notes returns the add, delete, move and resize operations that turn
// oldNotes into newNotes. Notes are matched by id only, so the result does
// not depend on slice order. Adds come first, then deletes, then moves and
// resizes, each group in ascending id order. Consumers may apply them in
// any order.
func Notes(oldNotes, newNotes []model.Note) []model.NoteDiff {
	oldByID := byID(oldNotes)
	newByID := byID(newNotes)

	var adds, deletes, changes []model.NoteDiff
	for _, id := range util.SortedKeys(newByID) {
		if _, ok := oldByID[id]; !ok {
			adds = append(adds, model.NoteDiff{Type: model.DiffAdd, ID: id, Note: newByID[id]})
		}
	}
	for _, id := range util.SortedKeys(oldByID) {
		old := oldByID[id]
		n, ok := newByID[id]
		if !ok {
			deletes = append(deletes, model.NoteDiff{Type: model.DiffDelete, ID: id, Note: old, OldNote: &old})
			continue
		}
		switch {
		case n.Row != old.Row || n.Column != old.Column:
			changes = append(changes, model.NoteDiff{Type: model.DiffMove, ID: id, Note: n, OldNote: &old})
		case n.Length != old.Length:
			changes = append(changes, model.NoteDiff{Type: model.DiffResize, ID: id, Note: n, OldNote: &old})
		}
	}

	res := make([]model.NoteDiff, 0, len(adds)+len(deletes)+len(changes))
	res = append(res, adds...)
	res = append(res, deletes...)
	return append(res, changes...)
}

// Apply replays diffs on notes and returns the resulting collection sorted
// by id.
func Apply(notes []model.Note, diffs []model.NoteDiff) []model.Note {
	m := byID(notes)
	for _, d := range diffs {
		switch d.Type {
		case model.DiffDelete:
			delete(m, d.ID)
		default:
			m[d.ID] = d.Note
		}
	}
	res := make([]model.Note, 0, len(m))
	for _, id := range util.SortedKeys(m) {
		res = append(res, m[id])
	}
	return res
}
