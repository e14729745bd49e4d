package model

import (
	"fmt"
	"strconv"

	"github.com/jsphweid/timegrid/constants"
)

// Note is a piano-roll note. Column and Length are in sixteenth-note units
// from the start of the track, Row is the MIDI pitch.
type Note struct {
	ID       int    `yaml:"id" json:"id"`
	Row      int    `yaml:"row" json:"row"`
	Column   int    `yaml:"column" json:"column"`
	Length   int    `yaml:"length" json:"length"`
	Velocity int    `yaml:"velocity" json:"velocity"`
	TrackID  string `yaml:"track_id" json:"track_id"`
}

func (n Note) End() int            { return n.Column + n.Length }
func (n Note) Pos() NotePos        { return NotePos{Row: n.Row, Column: n.Column} }
func (n Note) Contains(c int) bool { return c >= n.Column && c < n.End() }

func (n Note) String() string {
	return fmt.Sprintf("note %d [row %d col %d len %d]", n.ID, n.Row, n.Column, n.Length)
}

func (n Note) Validate() error {
	switch {
	case n.Row < constants.MinPitch || n.Row > constants.MaxPitch:
		return fmt.Errorf("note %d: row %d outside %d..%d", n.ID, n.Row, constants.MinPitch, constants.MaxPitch)
	case n.Column < 0:
		return fmt.Errorf("note %d: negative column %d", n.ID, n.Column)
	case n.Length < 1:
		return fmt.Errorf("note %d: length %d below 1", n.ID, n.Length)
	case n.Velocity < 0 || n.Velocity > constants.MaxVelocity:
		return fmt.Errorf("note %d: velocity %d outside 0..%d", n.ID, n.Velocity, constants.MaxVelocity)
	}
	return nil
}

type NotePos struct {
	Row    int `yaml:"row" json:"row"`
	Column int `yaml:"column" json:"column"`
}

// Notes is a note collection as read from YAML or JSON.
type Notes struct {
	TrackID string     `yaml:"track_id" json:"track_id"`
	Tempo   TempoMeter `yaml:"tempo" json:"tempo"`
	Notes   []Note     `yaml:"notes" json:"notes"`
}

func formatPx(px float64) string {
	return strconv.FormatFloat(px, 'f', -1, 64) + "px"
}
