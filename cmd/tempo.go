package cmd

import (
	"github.com/jsphweid/timegrid/model"
	"github.com/spf13/cobra"
)

// tempoFlags lets a command override the configured tempo and meter.
type tempoFlags struct {
	bpm    float64
	bpmSet bool
	ts     string
}

func (f *tempoFlags) register(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&f.bpm, "bpm", 0, "tempo in beats per minute (default from config)")
	cmd.Flags().StringVar(&f.ts, "ts", "", "time signature, e.g. 3/4 (default from config)")
}

// resolve reads the flags of cmd. An explicit --bpm 0 is rejected rather
// than taken as the config default.
func (f *tempoFlags) resolve(cmd *cobra.Command) (model.TempoMeter, error) {
	f.bpmSet = cmd.Flags().Changed("bpm")
	return f.tempo()
}

func (f *tempoFlags) tempo() (model.TempoMeter, error) {
	tm := cfg.Tempo
	if f.bpmSet {
		tm.BPM = f.bpm
	}
	if f.ts != "" {
		ts, err := model.ParseTimeSignature(f.ts)
		if err != nil {
			return tm, err
		}
		tm.TimeSignature = ts
	}
	return tm, tm.Validate()
}
