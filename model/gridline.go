package model

type LineKind int

const (
	LineSubdivision LineKind = iota
	LineBeat
	LineMeasure
)

func (k LineKind) String() string {
	switch k {
	case LineSubdivision:
		return "subdivision"
	case LineBeat:
		return "beat"
	case LineMeasure:
		return "measure"
	default:
		return "unknown"
	}
}

func (k LineKind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

func (k *LineKind) UnmarshalText(text []byte) error {
	for _, c := range []LineKind{LineSubdivision, LineBeat, LineMeasure} {
		if c.String() == string(text) {
			*k = c
			return nil
		}
	}
	return InvalidParameter("unknown line kind %q", text)
}

// Weight orders lines by visual priority, lowest first.
type Weight int

const (
	WeightOther Weight = iota
	WeightQuarterBeat
	WeightHalfBeat
	WeightBeat
	WeightMeasure
)

type GridLine struct {
	X       float64  `json:"x"`
	Kind    LineKind `json:"kind"`
	Weight  Weight   `json:"weight"`
	Opacity float64  `json:"opacity"`
}
