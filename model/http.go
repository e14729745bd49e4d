package model

type DiffRequestBody struct {
	Old []Note `json:"old"`
	New []Note `json:"new"`
}

type DiffResponse struct {
	Diffs []NoteDiff `json:"diffs"`
}

type ConvertResponse struct {
	Seconds float64 `json:"seconds"`
	Pixels  float64 `json:"pixels"`
	BarBeat string  `json:"bar_beat"`
}

type GridResponse struct {
	Lines []GridLine `json:"lines"`
}

type ErrorResponse struct {
	Error string `json:"detail"`
}
