package model

type DiffType int

const (
	DiffAdd DiffType = iota
	DiffDelete
	DiffMove
	DiffResize
)

func (t DiffType) String() string {
	switch t {
	case DiffAdd:
		return "add"
	case DiffDelete:
		return "delete"
	case DiffMove:
		return "move"
	case DiffResize:
		return "resize"
	default:
		return "unknown"
	}
}

func (t DiffType) MarshalText() ([]byte, error) { return []byte(t.String()), nil }

func (t *DiffType) UnmarshalText(text []byte) error {
	for _, c := range []DiffType{DiffAdd, DiffDelete, DiffMove, DiffResize} {
		if c.String() == string(text) {
			*t = c
			return nil
		}
	}
	return InvalidParameter("unknown diff type %q", text)
}

// NoteDiff describes one change between two note collections. OldNote is
// set for delete, move and resize.
type NoteDiff struct {
	Type    DiffType `yaml:"type" json:"type"`
	ID      int      `yaml:"id" json:"id"`
	Note    Note     `yaml:"note" json:"note"`
	OldNote *Note    `yaml:"old_note,omitempty" json:"old_note,omitempty"`
}
