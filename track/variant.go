package track

import (
	"github.com/jsphweid/timegrid/constants"
	"github.com/jsphweid/timegrid/model"
	"github.com/jsphweid/timegrid/musictime"
	"github.com/jsphweid/timegrid/util"
)

type Action int

const (
	ActionSelect Action = iota
	ActionOpenPianoRoll
	ActionOpenDrumEditor
)

func (a Action) String() string {
	switch a {
	case ActionSelect:
		return "select"
	case ActionOpenPianoRoll:
		return "open-piano-roll"
	case ActionOpenDrumEditor:
		return "open-drum-editor"
	default:
		return "unknown"
	}
}

// Block is a rectangle of track content in timeline pixels. Full blocks
// span the whole lane.
type Block struct {
	X, Y, W, H float64
	Full       bool
}

// Content is what a variant needs to draw a track block.
type Content struct {
	Block model.TrackBlock
	Tempo model.TempoMeter
	Notes []model.Note
}

// Capability is the behavior shared by every track variant.
type Capability interface {
	RenderContent(c Content) ([]Block, error)
	HandleClick(c Content, p model.Position) Action
}

func For(v model.Variant) Capability {
	switch v {
	case model.Midi:
		return midiTrack{}
	case model.Drum:
		return drumTrack{}
	default:
		return audioTrack{}
	}
}

type audioTrack struct{}

func (audioTrack) RenderContent(c Content) ([]Block, error) {
	w, err := musictime.BlockWidth(c.Block, c.Tempo)
	if err != nil {
		return nil, err
	}
	pos := c.Block.Position
	return []Block{{X: pos.X, Y: pos.Y, W: w.Px, H: constants.TrackHeightPx, Full: w.Full}}, nil
}

func (audioTrack) HandleClick(Content, model.Position) Action { return ActionSelect }

func columnWidth(tm model.TempoMeter) (float64, error) {
	if err := tm.Validate(); err != nil {
		return 0, err
	}
	beatWidth, err := musictime.BeatWidth(tm.TimeSignature)
	return beatWidth / constants.SixteenthsPerBeat, err
}

type midiTrack struct{}

// RenderContent squeezes the used pitch range into the lane height.
func (midiTrack) RenderContent(c Content) ([]Block, error) {
	colW, err := columnWidth(c.Tempo)
	if err != nil {
		return nil, err
	}
	if len(c.Notes) == 0 {
		return nil, nil
	}
	lo, hi := c.Notes[0].Row, c.Notes[0].Row
	for _, n := range c.Notes {
		lo, hi = util.Min(lo, n.Row), util.Max(hi, n.Row)
	}
	rowH := constants.TrackHeightPx / float64(hi-lo+1)
	pos := c.Block.Position
	blocks := make([]Block, 0, len(c.Notes))
	for _, n := range c.Notes {
		blocks = append(blocks, Block{
			X: pos.X + float64(n.Column)*colW,
			Y: pos.Y + float64(hi-n.Row)*rowH,
			W: float64(n.Length) * colW,
			H: rowH,
		})
	}
	return blocks, nil
}

func (midiTrack) HandleClick(Content, model.Position) Action { return ActionOpenPianoRoll }

type drumTrack struct{}

// RenderContent draws one lane per distinct drum sound, hits as single
// cells regardless of note length.
func (drumTrack) RenderContent(c Content) ([]Block, error) {
	colW, err := columnWidth(c.Tempo)
	if err != nil {
		return nil, err
	}
	lanes := make(map[int]int)
	for _, n := range c.Notes {
		lanes[n.Row] = 0
	}
	rows := util.SortedKeys(lanes)
	for i, row := range rows {
		lanes[row] = i
	}
	if len(rows) == 0 {
		return nil, nil
	}
	laneH := constants.TrackHeightPx / float64(len(rows))
	pos := c.Block.Position
	blocks := make([]Block, 0, len(c.Notes))
	for _, n := range c.Notes {
		blocks = append(blocks, Block{
			X: pos.X + float64(n.Column)*colW,
			Y: pos.Y + float64(lanes[n.Row])*laneH,
			W: colW,
			H: laneH,
		})
	}
	return blocks, nil
}

func (drumTrack) HandleClick(Content, model.Position) Action { return ActionOpenDrumEditor }
