// Package snap aligns pixel positions to the time subdivision grid and to
// track or pitch rows. No snapped position is ever negative.
package snap

import (
	"math"

	"github.com/jsphweid/timegrid/constants"
	"github.com/jsphweid/timegrid/model"
	"github.com/jsphweid/timegrid/util"
)

// Snap rounds value to the nearest multiple of gridSize.
func Snap(value, gridSize float64) (float64, error) {
	if gridSize <= 0 || math.IsNaN(gridSize) {
		return 0, model.InvalidParameter("grid size %v must be positive", gridSize)
	}
	return util.NonNegative(math.Round(value/gridSize) * gridSize), nil
}

// SubdivisionWidth is the width of one denominator-note subdivision.
func SubdivisionWidth(ts model.TimeSignature) (float64, error) {
	if err := ts.Validate(); err != nil {
		return 0, err
	}
	return constants.MeasureWidthPx / float64(ts.Numerator*ts.Denominator), nil
}

// RowSnap snaps y to a track lane.
func RowSnap(y, rowHeight float64) (float64, error) {
	return Snap(y, rowHeight)
}

// PitchRow maps a piano-roll y to a MIDI pitch row. Rows are found by floor
// division: a half-occupied pitch row means nothing.
func PitchRow(y, rowHeight float64) (int, error) {
	if rowHeight <= 0 {
		return 0, model.InvalidParameter("row height %v must be positive", rowHeight)
	}
	row := int(math.Floor(y / rowHeight))
	return util.Clamp(row, constants.MinPitch, constants.MaxPitch), nil
}

// Grid is a two-axis snapping grid.
type Grid struct {
	Width     float64
	RowHeight float64
}

// TrackGrid is the grid track blocks move on under the given meter.
func TrackGrid(ts model.TimeSignature) (Grid, error) {
	w, err := SubdivisionWidth(ts)
	if err != nil {
		return Grid{}, err
	}
	return Grid{Width: w, RowHeight: constants.TrackHeightPx}, nil
}

func (g Grid) Validate() error {
	if g.Width <= 0 || g.RowHeight <= 0 {
		return model.InvalidParameter("grid %vx%v must be positive", g.Width, g.RowHeight)
	}
	return nil
}

// Position snaps both axes and clamps them to >= 0.
func (g Grid) Position(p model.Position) (model.Position, error) {
	x, err := Snap(p.X, g.Width)
	if err != nil {
		return model.Position{}, err
	}
	y, err := RowSnap(p.Y, g.RowHeight)
	if err != nil {
		return model.Position{}, err
	}
	return model.Position{X: x, Y: y}, nil
}

// Next returns the grid line after x, or before it when forward is false.
// A position already on a line steps a whole cell.
func (g Grid) Next(x float64, forward bool) float64 {
	i := math.Floor(x/g.Width + .5)
	if i*g.Width == x {
		if forward {
			i++
		} else {
			i--
		}
	} else if forward {
		i = math.Ceil(x / g.Width)
	} else {
		i = math.Floor(x / g.Width)
	}
	return util.NonNegative(i * g.Width)
}

// Resolution is a note-value grid, expressed as the divisor of a whole note.
type Resolution int

const (
	Quarter      Resolution = 4
	Eighth       Resolution = 8
	Sixteenth    Resolution = 16
	ThirtySecond Resolution = 32
)

// Width is the pixel width of one cell at this resolution. A beat is the
// time signature's denominator note.
func (r Resolution) Width(ts model.TimeSignature) (float64, error) {
	if r <= 0 {
		return 0, model.InvalidParameter("resolution %d must be positive", r)
	}
	if err := ts.Validate(); err != nil {
		return 0, err
	}
	beatWidth := constants.MeasureWidthPx / float64(ts.Numerator)
	return beatWidth * float64(ts.Denominator) / float64(r), nil
}
