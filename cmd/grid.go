package cmd

import (
	"fmt"

	"github.com/jsphweid/timegrid/gridlines"
	"github.com/spf13/cobra"
)

var (
	gridTempo    tempoFlags
	gridMeasures int
	gridScroll   float64
	gridWidth    float64
)

func init() {
	gridTempo.register(gridCmd)
	gridCmd.Flags().IntVarP(&gridMeasures, "measures", "m", 0, "timeline length in measures (default from config)")
	gridCmd.Flags().Float64Var(&gridScroll, "scroll", 0, "horizontal scroll offset in pixels")
	gridCmd.Flags().Float64Var(&gridWidth, "width", 1000, "viewport width in pixels")
	rootCmd.AddCommand(gridCmd)
}

var gridCmd = &cobra.Command{
	Use:   "grid",
	Short: "Prints the gridlines visible in a viewport",
	RunE: func(cmd *cobra.Command, args []string) error {
		tm, err := gridTempo.resolve(cmd)
		if err != nil {
			return err
		}
		measures := gridMeasures
		if measures == 0 {
			measures = cfg.Measures
		}
		lines, err := gridlines.Lines(measures, tm.TimeSignature, gridlines.Viewport{ScrollX: gridScroll, Width: gridWidth})
		if err != nil {
			return err
		}
		for _, l := range lines {
			fmt.Fprintf(cmd.OutOrStdout(), "%8.2f  %-11v  %.2f\n", l.X, l.Kind, l.Opacity)
		}
		return nil
	},
}
