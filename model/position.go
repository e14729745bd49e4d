package model

type Position struct {
	X float64 `yaml:"x" json:"x"`
	Y float64 `yaml:"y" json:"y"`
}

func (p Position) Add(q Position) Position { return Position{X: p.X + q.X, Y: p.Y + q.Y} }
func (p Position) Sub(q Position) Position { return Position{X: p.X - q.X, Y: p.Y - q.Y} }

type Variant int

const (
	Audio Variant = iota
	Midi
	Drum
)

func (v Variant) String() string {
	switch v {
	case Audio:
		return "audio"
	case Midi:
		return "midi"
	case Drum:
		return "drum"
	default:
		return "unknown"
	}
}

func (v Variant) MarshalText() ([]byte, error) { return []byte(v.String()), nil }

func (v *Variant) UnmarshalText(text []byte) error {
	for _, c := range []Variant{Audio, Midi, Drum} {
		if c.String() == string(text) {
			*v = c
			return nil
		}
	}
	return InvalidParameter("unknown track variant %q", text)
}

// TrackBlock is a track placed on the timeline. Its width is derived from
// the duration and the tempo, never stored.
type TrackBlock struct {
	ID              string   `yaml:"id" json:"id"`
	Position        Position `yaml:"position" json:"position"`
	DurationSeconds float64  `yaml:"duration_seconds" json:"duration_seconds"`
	Variant         Variant  `yaml:"variant" json:"variant"`
}

// Width is either a pixel width or the full lane ("100%") when the block
// has no known duration.
type Width struct {
	Px   float64
	Full bool
}

func (w Width) String() string {
	if w.Full {
		return "100%"
	}
	return formatPx(w.Px)
}
