package track

import (
	"testing"

	"github.com/jsphweid/timegrid/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var tempo = model.TempoMeter{BPM: 120, TimeSignature: model.TimeSignature{Numerator: 4, Denominator: 4}}

func TestHandleClickDispatch(t *testing.T) {
	assert := assert.New(t)
	assert.Equal(ActionSelect, For(model.Audio).HandleClick(Content{}, model.Position{}))
	assert.Equal(ActionOpenPianoRoll, For(model.Midi).HandleClick(Content{}, model.Position{}))
	assert.Equal(ActionOpenDrumEditor, For(model.Drum).HandleClick(Content{}, model.Position{}))
}

func TestAudioContent(t *testing.T) {
	c := Content{
		Block: model.TrackBlock{ID: "a", Position: model.Position{X: 50, Y: 80}, DurationSeconds: 4},
		Tempo: tempo,
	}
	blocks, err := For(model.Audio).RenderContent(c)
	require.NoError(t, err)
	assert.Equal(t, []Block{{X: 50, Y: 80, W: 400, H: 80}}, blocks)

	c.Block.DurationSeconds = 0
	blocks, err = For(model.Audio).RenderContent(c)
	require.NoError(t, err)
	assert.True(t, blocks[0].Full)
}

func TestMidiContent(t *testing.T) {
	c := Content{
		Block: model.TrackBlock{ID: "m", Position: model.Position{X: 0, Y: 160}},
		Tempo: tempo,
		Notes: []model.Note{
			{ID: 1, Row: 60, Column: 0, Length: 4},
			{ID: 2, Row: 63, Column: 4, Length: 2},
		},
	}
	blocks, err := For(model.Midi).RenderContent(c)
	require.NoError(t, err)
	assert.Equal(t, []Block{
		{X: 0, Y: 160 + 60, W: 50, H: 20},
		{X: 50, Y: 160, W: 25, H: 20},
	}, blocks)
}

func TestDrumContent(t *testing.T) {
	c := Content{
		Block: model.TrackBlock{ID: "d"},
		Tempo: tempo,
		Notes: []model.Note{
			{ID: 1, Row: 42, Column: 2, Length: 4},
			{ID: 2, Row: 36, Column: 0, Length: 1},
		},
	}
	blocks, err := For(model.Drum).RenderContent(c)
	require.NoError(t, err)
	assert.Equal(t, []Block{
		{X: 25, Y: 40, W: 12.5, H: 40},
		{X: 0, Y: 0, W: 12.5, H: 40},
	}, blocks)
}

func TestRenderInvalidTempo(t *testing.T) {
	for _, v := range []model.Variant{model.Audio, model.Midi, model.Drum} {
		_, err := For(v).RenderContent(Content{Notes: []model.Note{{Row: 1, Length: 1}}})
		assert.True(t, model.IsInvalidParameter(err), "variant %v", v)
	}
}
