package constants

import "os"

// MeasureWidthPx is the layout width of one measure at zoom 1. Every
// time/pixel conversion shares it.
const MeasureWidthPx = 200.0

// TrackHeightPx is the height of one track lane in the timeline.
const TrackHeightPx = 80.0

// NoteRowHeightPx is the height of one pitch row in the piano roll.
const NoteRowHeightPx = 12.0

// SixteenthsPerBeat is the note column resolution (one column = one sixteenth).
const SixteenthsPerBeat = 4

// TicksPerBeat is the resolution of the high-resolution editor variant.
const TicksPerBeat = 480

// OverlapToleranceColumns is how close (in columns) a new note may start to
// an existing note in the same row before the click is treated as a hit on
// that note instead of a create.
const OverlapToleranceColumns = 1

// GridBufferPx is the margin rendered beyond each side of the viewport.
const GridBufferPx = 100.0

const (
	MinPitch    = 0
	MaxPitch    = 127
	MaxVelocity = 127

	DefaultVelocity = 100
)

func GetConfigPath() string {
	path := os.Getenv("TIMEGRID_CONFIG")
	if path != "" {
		return path
	}
	return "~/.timegrid.yaml"
}
