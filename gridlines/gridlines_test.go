package gridlines

import (
	"testing"

	"github.com/jsphweid/timegrid/constants"
	"github.com/jsphweid/timegrid/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fourFour = model.TimeSignature{Numerator: 4, Denominator: 4}

func count(lines []model.GridLine, kind model.LineKind) int {
	var n int
	for _, l := range lines {
		if l.Kind == kind {
			n++
		}
	}
	return n
}

func TestOneMeasureOfFourFour(t *testing.T) {
	lines, err := Lines(1, fourFour, Viewport{Width: 1000})
	require.NoError(t, err)

	assert := assert.New(t)
	assert.Len(lines, 17)
	assert.Equal(12, count(lines, model.LineSubdivision))
	assert.Equal(3, count(lines, model.LineBeat))
	assert.Equal(2, count(lines, model.LineMeasure))

	// first beat: quarter, half, quarter
	assert.Equal(model.GridLine{X: 12.5, Kind: model.LineSubdivision, Weight: model.WeightQuarterBeat, Opacity: opacityQuarterBeat}, lines[0])
	assert.Equal(model.WeightHalfBeat, lines[1].Weight)
	assert.Equal(25.0, lines[1].X)
}

func TestPassOrder(t *testing.T) {
	lines, err := Lines(8, model.TimeSignature{Numerator: 7, Denominator: 8}, Viewport{Width: 2000})
	require.NoError(t, err)
	for i := 1; i < len(lines); i++ {
		assert.LessOrEqual(t, lines[i-1].Kind, lines[i].Kind, "line %d", i)
	}
}

func TestBeatsSkipMeasurePositions(t *testing.T) {
	lines, err := Lines(4, fourFour, Viewport{Width: 1000})
	require.NoError(t, err)

	measures := map[float64]bool{}
	for _, l := range lines {
		if l.Kind == model.LineMeasure {
			measures[l.X] = true
		}
	}
	for _, l := range lines {
		if l.Kind != model.LineMeasure {
			assert.False(t, measures[l.X], "%v line at measure position %v", l.Kind, l.X)
		}
	}
}

func TestSubdivisionWeights(t *testing.T) {
	lines, err := Lines(1, model.TimeSignature{Numerator: 1, Denominator: 8}, Viewport{Width: 1000})
	require.NoError(t, err)

	var weights []model.Weight
	for _, l := range lines {
		if l.Kind == model.LineSubdivision {
			weights = append(weights, l.Weight)
		}
	}
	o, q, h := model.WeightOther, model.WeightQuarterBeat, model.WeightHalfBeat
	assert.Equal(t, []model.Weight{o, q, o, h, o, q, o}, weights)
}

func TestOddDenominators(t *testing.T) {
	for _, den := range []int{1, 2, 3, 6} {
		lines, err := Lines(2, model.TimeSignature{Numerator: 3, Denominator: den}, Viewport{Width: 1000})
		require.NoError(t, err)
		assert.Equal(t, 2*3*(den-1), count(lines, model.LineSubdivision), "den %d", den)
	}
}

func TestViewportCulling(t *testing.T) {
	full, err := Lines(1000, fourFour, Viewport{Width: 1000 * constants.MeasureWidthPx})
	require.NoError(t, err)

	vp := Viewport{ScrollX: 10000, Width: 400}
	culled, err := Lines(1000, fourFour, vp)
	require.NoError(t, err)

	lo, hi := vp.bounds()
	var want []model.GridLine
	for _, l := range full {
		if l.X >= lo && l.X <= hi {
			want = append(want, l)
		}
	}
	assert.Equal(t, want, culled)
	assert.Less(t, len(culled), 60)
}

func TestCullingStopsAtTimelineEnd(t *testing.T) {
	lines, err := Lines(2, fourFour, Viewport{ScrollX: 300, Width: 5000})
	require.NoError(t, err)
	for _, l := range lines {
		assert.LessOrEqual(t, l.X, 400.0)
	}
	assert.Equal(t, 2, count(lines, model.LineMeasure))
}

func TestLinesInvalid(t *testing.T) {
	_, err := Lines(4, model.TimeSignature{Numerator: 4}, Viewport{Width: 100})
	assert.True(t, model.IsInvalidParameter(err))
	_, err = Lines(-1, fourFour, Viewport{Width: 100})
	assert.True(t, model.IsInvalidParameter(err))
}
