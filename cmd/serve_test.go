package cmd

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jsphweid/timegrid/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func do(t *testing.T, method, target string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, target, &buf)
	w := httptest.NewRecorder()
	NewRouter().ServeHTTP(w, req)
	return w
}

func TestHandleConvertPixels(t *testing.T) {
	w := do(t, http.MethodGet, "/convert?px=125&bpm=120&ts=4/4", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var res model.ConvertResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert := assert.New(t)
	assert.InDelta(1.25, res.Seconds, 1e-9)
	assert.Equal(125.0, res.Pixels)
	assert.Equal("1.3.3", res.BarBeat)
}

func TestHandleConvertSeconds(t *testing.T) {
	w := do(t, http.MethodGet, "/convert?seconds=2.5&bpm=120&ts=4/4", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var res model.ConvertResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	// five beats: one measure and one beat
	assert.InDelta(t, 250, res.Pixels, 1e-9)
	assert.Equal(t, "2.2.1", res.BarBeat)
}

func TestHandleConvertErrors(t *testing.T) {
	for _, target := range []string{
		"/convert?px=10&bpm=0",
		"/convert?px=10&bpm=-3",
		"/convert?px=10&ts=4/0",
		"/convert?px=abc",
		"/convert",
	} {
		w := do(t, http.MethodGet, target, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code, target)

		var res model.ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
		assert.NotEmpty(t, res.Error, target)
	}
}

func TestHandleGrid(t *testing.T) {
	w := do(t, http.MethodGet, "/grid?measures=1&ts=4/4&scroll=0&width=200", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var res model.GridResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	kinds := map[model.LineKind]int{}
	for _, l := range res.Lines {
		kinds[l.Kind]++
	}
	assert.Equal(t, map[model.LineKind]int{
		model.LineSubdivision: 12,
		model.LineBeat:        3,
		model.LineMeasure:     2,
	}, kinds)
}

func TestHandleGridInvalid(t *testing.T) {
	for _, target := range []string{"/grid?measures=-1", "/grid?measures=2.7", "/grid?width=wide"} {
		w := do(t, http.MethodGet, target, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code, target)
	}
}

func TestHandleDiff(t *testing.T) {
	old := []model.Note{
		{ID: 1, Row: 60, Column: 0, Length: 1},
		{ID: 2, Row: 62, Column: 4, Length: 2},
	}
	next := []model.Note{
		{ID: 2, Row: 62, Column: 4, Length: 3},
		{ID: 3, Row: 64, Column: 8, Length: 1},
	}
	w := do(t, http.MethodPost, "/diff", model.DiffRequestBody{Old: old, New: next})
	require.Equal(t, http.StatusOK, w.Code)

	var res model.DiffResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	types := []model.DiffType{}
	for _, d := range res.Diffs {
		types = append(types, d.Type)
	}
	assert.Equal(t, []model.DiffType{model.DiffAdd, model.DiffDelete, model.DiffResize}, types)
}

func TestHandleDiffInvalid(t *testing.T) {
	w := do(t, http.MethodPost, "/diff", model.DiffRequestBody{New: []model.Note{{ID: 1, Row: 200, Length: 1}}})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	req := httptest.NewRequest(http.MethodPost, "/diff", bytes.NewBufferString("{"))
	rec := httptest.NewRecorder()
	NewRouter().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMethodNotAllowed(t *testing.T) {
	w := do(t, http.MethodGet, "/diff", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}
