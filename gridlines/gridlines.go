package gridlines

import (
	"math"

	"github.com/jsphweid/timegrid/constants"
	"github.com/jsphweid/timegrid/model"
	"github.com/jsphweid/timegrid/util"
)

const (
	opacityMeasure     = 0.8
	opacityBeat        = 0.45
	opacityHalfBeat    = 0.3
	opacityQuarterBeat = 0.2
	opacityOther       = 0.1
)

// Viewport is the visible horizontal window of the timeline, in pixels.
type Viewport struct {
	ScrollX float64
	Width   float64
}

func (v Viewport) bounds() (lo, hi float64) {
	return v.ScrollX - constants.GridBufferPx, v.ScrollX + v.Width + constants.GridBufferPx
}

// Lines returns the gridlines of a timeline of measureCount measures that
// fall inside the viewport plus a buffer. Subdivisions come first, then
// beats, then measures: later lines are drawn over earlier ones.
func Lines(measureCount int, ts model.TimeSignature, vp Viewport) ([]model.GridLine, error) {
	if err := ts.Validate(); err != nil {
		return nil, err
	}
	if measureCount < 0 {
		return nil, model.InvalidParameter("measure count %d is negative", measureCount)
	}
	if vp.Width < 0 {
		return nil, model.InvalidParameter("viewport width %v is negative", vp.Width)
	}

	measureWidth := constants.MeasureWidthPx
	beatWidth := measureWidth / float64(ts.Numerator)
	subsPerBeat := ts.Denominator
	subWidth := beatWidth / float64(subsPerBeat)

	lo, hi := vp.bounds()
	first := int(math.Max(0, math.Floor(lo/measureWidth)))
	last := int(math.Min(float64(measureCount), math.Ceil(hi/measureWidth)))
	visible := func(x float64) bool { return x >= lo && x <= hi }

	var lines []model.GridLine

	// Measure-grid only; the trailing partial measure has no inner lines.
	inner := util.Min(last, measureCount-1)

	halfStep := subsPerBeat / 2
	quarterStep := subsPerBeat / 4
	for m := first; m <= inner; m++ {
		for b := 0; b < ts.Numerator; b++ {
			for s := 1; s < subsPerBeat; s++ {
				x := float64(m)*measureWidth + float64(b)*beatWidth + float64(s)*subWidth
				if !visible(x) {
					continue
				}
				weight, opacity := model.WeightOther, opacityOther
				switch {
				case halfStep > 0 && s%halfStep == 0:
					weight, opacity = model.WeightHalfBeat, opacityHalfBeat
				case quarterStep > 0 && s%quarterStep == 0:
					weight, opacity = model.WeightQuarterBeat, opacityQuarterBeat
				}
				lines = append(lines, model.GridLine{X: x, Kind: model.LineSubdivision, Weight: weight, Opacity: opacity})
			}
		}
	}

	for m := first; m <= inner; m++ {
		for b := 1; b < ts.Numerator; b++ {
			x := float64(m)*measureWidth + float64(b)*beatWidth
			if visible(x) {
				lines = append(lines, model.GridLine{X: x, Kind: model.LineBeat, Weight: model.WeightBeat, Opacity: opacityBeat})
			}
		}
	}

	for m := first; m <= last; m++ {
		x := float64(m) * measureWidth
		if visible(x) {
			lines = append(lines, model.GridLine{X: x, Kind: model.LineMeasure, Weight: model.WeightMeasure, Opacity: opacityMeasure})
		}
	}
	return lines, nil
}
