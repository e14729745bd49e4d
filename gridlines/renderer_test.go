package gridlines

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/jsphweid/timegrid/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRendererDebouncesResize(t *testing.T) {
	var calls atomic.Int32
	var last atomic.Value
	r, err := NewRenderer(100, fourFour, Viewport{Width: 200}, 50*time.Millisecond, func(lines []model.GridLine) {
		calls.Add(1)
		last.Store(lines)
	})
	require.NoError(t, err)

	for w := 300.0; w <= 1200; w += 100 {
		r.Resize(Viewport{Width: w})
	}

	assert.Eventually(t, func() bool { return calls.Load() == 1 }, time.Second, 10*time.Millisecond)
	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, int32(1), calls.Load())

	want, err := Lines(100, fourFour, Viewport{Width: 1200})
	require.NoError(t, err)
	assert.Equal(t, want, last.Load())

	got, err := r.Lines()
	assert.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestRendererFlush(t *testing.T) {
	r, err := NewRenderer(4, fourFour, Viewport{Width: 100}, time.Hour, nil)
	require.NoError(t, err)

	r.SetTimeline(8, model.TimeSignature{Numerator: 3, Denominator: 4})
	r.Resize(Viewport{Width: 2000})
	lines, err := r.Flush()
	require.NoError(t, err)

	assert.Equal(t, 9, count(lines, model.LineMeasure))
}

func TestRendererKeepsError(t *testing.T) {
	r, err := NewRenderer(4, fourFour, Viewport{Width: 100}, time.Hour, nil)
	require.NoError(t, err)

	r.SetTimeline(4, model.TimeSignature{})
	_, err = r.Flush()
	assert.True(t, model.IsInvalidParameter(err))
}

func TestNewRendererInvalid(t *testing.T) {
	_, err := NewRenderer(4, model.TimeSignature{}, Viewport{}, time.Millisecond, nil)
	assert.Error(t, err)
}
