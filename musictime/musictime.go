// Package musictime converts between seconds, beats, measures and pixel
// offsets on the timeline. All functions are pure; they are parameterized
// by bpm and time signature and share constants.MeasureWidthPx.
package musictime

import (
	"fmt"
	"math"

	"github.com/jsphweid/timegrid/constants"
	"github.com/jsphweid/timegrid/model"
)

func validate(bpm float64, ts model.TimeSignature) error {
	return model.TempoMeter{BPM: bpm, TimeSignature: ts}.Validate()
}

// BeatWidth is the pixel width of one beat: a measure split by the numerator.
func BeatWidth(ts model.TimeSignature) (float64, error) {
	if err := ts.Validate(); err != nil {
		return 0, err
	}
	return constants.MeasureWidthPx / float64(ts.Numerator), nil
}

func SecondsFromPixels(px, bpm float64, ts model.TimeSignature) (float64, error) {
	if err := validate(bpm, ts); err != nil {
		return 0, err
	}
	beatWidth := constants.MeasureWidthPx / float64(ts.Numerator)
	beats := px / beatWidth
	return beats / (bpm / 60), nil
}

// PixelsFromSeconds is the inverse of SecondsFromPixels. The beat count is
// split into whole measures and remainder beats so long offsets keep their
// precision.
func PixelsFromSeconds(seconds, bpm float64, ts model.TimeSignature) (float64, error) {
	if err := validate(bpm, ts); err != nil {
		return 0, err
	}
	num := float64(ts.Numerator)
	beatWidth := constants.MeasureWidthPx / num
	beats := seconds * (bpm / 60)
	measures := math.Floor(beats / num)
	remainderBeats := math.Mod(beats, num)
	if remainderBeats < 0 {
		remainderBeats += num
	}
	return measures*constants.MeasureWidthPx + remainderBeats*beatWidth, nil
}

func WidthFromDuration(durationSeconds, bpm float64, ts model.TimeSignature) (float64, error) {
	if err := validate(bpm, ts); err != nil {
		return 0, err
	}
	measures := (durationSeconds * bpm / 60) / float64(ts.Numerator)
	return measures * constants.MeasureWidthPx, nil
}

// BlockWidth derives a track block's width. A block without a duration
// fills the lane.
func BlockWidth(b model.TrackBlock, tm model.TempoMeter) (model.Width, error) {
	if err := tm.Validate(); err != nil {
		return model.Width{}, err
	}
	if b.DurationSeconds <= 0 {
		return model.Width{Full: true}, nil
	}
	px, err := WidthFromDuration(b.DurationSeconds, tm.BPM, tm.TimeSignature)
	return model.Width{Px: px}, err
}

func BeatsFromSeconds(seconds, bpm float64) (float64, error) {
	if bpm <= 0 {
		return 0, model.InvalidParameter("bpm %v must be positive", bpm)
	}
	return seconds * bpm / 60, nil
}

func SecondsFromBeats(beats, bpm float64) (float64, error) {
	if bpm <= 0 {
		return 0, model.InvalidParameter("bpm %v must be positive", bpm)
	}
	return beats * 60 / bpm, nil
}

// TicksFromSeconds returns the position in ticks at constants.TicksPerBeat.
func TicksFromSeconds(seconds, bpm float64) (int64, error) {
	beats, err := BeatsFromSeconds(seconds, bpm)
	if err != nil {
		return 0, err
	}
	return int64(math.Round(beats * constants.TicksPerBeat)), nil
}

// SecondsFromColumns converts note columns (sixteenths) to seconds.
func SecondsFromColumns(columns int, bpm float64) (float64, error) {
	return SecondsFromBeats(float64(columns)/constants.SixteenthsPerBeat, bpm)
}

// BarBeat is a 1-based ruler readout.
type BarBeat struct {
	Bar       int
	Beat      int
	Sixteenth int
}

func (b BarBeat) String() string {
	return fmt.Sprintf("%d.%d.%d", b.Bar, b.Beat, b.Sixteenth)
}

func BarBeatFromPixels(px float64, ts model.TimeSignature) (BarBeat, error) {
	beatWidth, err := BeatWidth(ts)
	if err != nil {
		return BarBeat{}, err
	}
	if px < 0 {
		px = 0
	}
	sixteenths := int(math.Floor(px / beatWidth * constants.SixteenthsPerBeat))
	perBar := ts.Numerator * constants.SixteenthsPerBeat
	return BarBeat{
		Bar:       sixteenths/perBar + 1,
		Beat:      (sixteenths%perBar)/constants.SixteenthsPerBeat + 1,
		Sixteenth: sixteenths%constants.SixteenthsPerBeat + 1,
	}, nil
}
