package cmd

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"github.com/Southclaws/fault/ftag"
	"github.com/gorilla/mux"
	"github.com/jsphweid/timegrid/diff"
	"github.com/jsphweid/timegrid/gridlines"
	"github.com/jsphweid/timegrid/logging"
	"github.com/jsphweid/timegrid/model"
	"github.com/rs/cors"
	"github.com/spf13/cobra"
)

var log = logging.For("serve")

func init() {
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serves conversion, gridline and diff endpoints over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		log.Infof("listening on %s", cfg.Addr)
		return http.ListenAndServe(cfg.Addr, cors.Default().Handler(NewRouter()))
	},
}

func NewRouter() *mux.Router {
	router := mux.NewRouter().StrictSlash(true)
	router.HandleFunc("/convert", HandleConvert).Methods(http.MethodGet)
	router.HandleFunc("/grid", HandleGrid).Methods(http.MethodGet)
	router.HandleFunc("/diff", HandleDiff).Methods(http.MethodPost)
	return router
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.WithError(err).Warn("could not write response")
	}
}

func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	if ftag.Get(err) == model.KindInvalidParameter {
		status = http.StatusBadRequest
	}
	log.WithError(err).Debugf("request failed with %d", status)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(model.ErrorResponse{Error: err.Error()})
}

// tempoFromQuery reads bpm and ts, falling back to the configured tempo.
func tempoFromQuery(r *http.Request) (model.TempoMeter, error) {
	q := r.URL.Query()
	f := tempoFlags{ts: q.Get("ts")}
	if s := q.Get("bpm"); s != "" {
		bpm, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return model.TempoMeter{}, model.InvalidParameter("bpm %q is not a number", s)
		}
		f.bpm, f.bpmSet = bpm, true
	}
	return f.tempo()
}

func intParam(r *http.Request, name string, fallback int) (int, error) {
	s := r.URL.Query().Get(name)
	if s == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, model.InvalidParameter("%s %q is not an integer", name, s)
	}
	return v, nil
}

func floatParam(r *http.Request, name string, fallback float64) (float64, error) {
	s := r.URL.Query().Get(name)
	if s == "" {
		return fallback, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, model.InvalidParameter("%s %q is not a number", name, s)
	}
	return v, nil
}

// HandleConvert converts ?px= or ?seconds= at the requested tempo.
func HandleConvert(w http.ResponseWriter, r *http.Request) {
	tm, err := tempoFromQuery(r)
	if err != nil {
		writeError(w, err)
		return
	}
	q := r.URL.Query()
	fromSeconds := q.Has("seconds")
	name := "px"
	if fromSeconds {
		name = "seconds"
	} else if !q.Has("px") {
		writeError(w, model.InvalidParameter("one of px or seconds is required"))
		return
	}
	v, err := floatParam(r, name, 0)
	if err != nil {
		writeError(w, err)
		return
	}
	res, err := convert(v, fromSeconds, tm)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, res)
}

func HandleGrid(w http.ResponseWriter, r *http.Request) {
	tm, err := tempoFromQuery(r)
	if err != nil {
		writeError(w, err)
		return
	}
	measures, err := intParam(r, "measures", cfg.Measures)
	if err != nil {
		writeError(w, err)
		return
	}
	scroll, err := floatParam(r, "scroll", 0)
	if err != nil {
		writeError(w, err)
		return
	}
	width, err := floatParam(r, "width", 1000)
	if err != nil {
		writeError(w, err)
		return
	}
	lines, err := gridlines.Lines(measures, tm.TimeSignature, gridlines.Viewport{ScrollX: scroll, Width: width})
	if err != nil {
		writeError(w, err)
		return
	}
	if lines == nil {
		lines = []model.GridLine{}
	}
	writeJSON(w, model.GridResponse{Lines: lines})
}

func HandleDiff(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, err)
		return
	}
	var input model.DiffRequestBody
	if err := json.Unmarshal(body, &input); err != nil {
		writeError(w, model.InvalidParameter("could not parse request body: %v", err))
		return
	}
	for _, n := range append(input.Old, input.New...) {
		if err := n.Validate(); err != nil {
			writeError(w, model.InvalidParameter("%v", err))
			return
		}
	}
	writeJSON(w, model.DiffResponse{Diffs: diff.Notes(input.Old, input.New)})
}
