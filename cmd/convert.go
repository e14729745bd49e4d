package cmd

import (
	"fmt"
	"strconv"

	"github.com/jsphweid/timegrid/model"
	"github.com/jsphweid/timegrid/musictime"
	"github.com/spf13/cobra"
)

var (
	convertTempo   tempoFlags
	convertSeconds bool
)

func init() {
	convertTempo.register(convertCmd)
	convertCmd.Flags().BoolVarP(&convertSeconds, "seconds", "s", false, "treat the value as seconds instead of pixels")
	rootCmd.AddCommand(convertCmd)
}

var convertCmd = &cobra.Command{
	Use:   "convert <value>",
	Short: "Converts between timeline pixels and seconds",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		v, err := strconv.ParseFloat(args[0], 64)
		if err != nil {
			return model.InvalidParameter("value %q is not a number", args[0])
		}
		tm, err := convertTempo.resolve(cmd)
		if err != nil {
			return err
		}
		res, err := convert(v, convertSeconds, tm)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "seconds: %v\npixels:  %v\nbar:     %s\n", res.Seconds, res.Pixels, res.BarBeat)
		return nil
	},
}

func convert(v float64, fromSeconds bool, tm model.TempoMeter) (model.ConvertResponse, error) {
	var res model.ConvertResponse
	var err error
	if fromSeconds {
		res.Seconds = v
		res.Pixels, err = musictime.PixelsFromSeconds(v, tm.BPM, tm.TimeSignature)
	} else {
		res.Pixels = v
		res.Seconds, err = musictime.SecondsFromPixels(v, tm.BPM, tm.TimeSignature)
	}
	if err != nil {
		return res, err
	}
	bb, err := musictime.BarBeatFromPixels(res.Pixels, tm.TimeSignature)
	if err != nil {
		return res, err
	}
	res.BarBeat = bb.String()
	return res, nil
}
