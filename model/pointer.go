package model

type PointerType int

const (
	PointerDown PointerType = iota
	PointerMove
	PointerUp
	// PointerLeave is delivered by the global fallback listener when the
	// pointer leaves the surface or capture is lost.
	PointerLeave
)

type PointerEvent struct {
	Type    PointerType
	ClientX float64
	ClientY float64
	Target  string
}

func (e PointerEvent) Client() Position { return Position{X: e.ClientX, Y: e.ClientY} }
