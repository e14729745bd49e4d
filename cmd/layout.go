package cmd

import (
	"fmt"
	"os"

	"github.com/jsphweid/timegrid/gridlines"
	"github.com/jsphweid/timegrid/model"
	"github.com/jsphweid/timegrid/timeline"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// arrangement is a list of tracks stacked in lane order.
type arrangement struct {
	Tempo  model.TempoMeter `yaml:"tempo"`
	Tracks []struct {
		Variant         model.Variant `yaml:"variant"`
		DurationSeconds float64       `yaml:"duration_seconds"`
		Notes           []model.Note  `yaml:"notes"`
	} `yaml:"tracks"`
}

var (
	layoutScroll float64
	layoutWidth  float64
)

func init() {
	layoutCmd.Flags().Float64Var(&layoutScroll, "scroll", 0, "horizontal scroll offset in pixels")
	layoutCmd.Flags().Float64Var(&layoutWidth, "width", 1000, "viewport width in pixels")
	rootCmd.AddCommand(layoutCmd)
}

var layoutCmd = &cobra.Command{
	Use:   "layout <arrangement.yaml>",
	Short: "Lays out an arrangement on the timeline and prints its blocks",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dat, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("could not read arrangement %s: %w", args[0], err)
		}
		var arr arrangement
		if err := yaml.Unmarshal(dat, &arr); err != nil {
			return fmt.Errorf("could not parse arrangement %s: %w", args[0], err)
		}
		if arr.Tempo.BPM == 0 {
			arr.Tempo = cfg.Tempo
		}

		tl, err := timeline.New(arr.Tempo, cfg.Debounce)
		if err != nil {
			return err
		}
		var ids []string
		for i, t := range arr.Tracks {
			b := tl.AddTrack(t.Variant, t.DurationSeconds)
			ids = append(ids, b.ID)
			if len(t.Notes) == 0 {
				continue
			}
			e, ok := tl.Editor(b.ID)
			if !ok {
				return model.InvalidParameter("track %d: %v tracks have no notes", i, t.Variant)
			}
			if err := e.Load(t.Notes); err != nil {
				return fmt.Errorf("track %d: %w", i, err)
			}
		}

		out := cmd.OutOrStdout()
		measures, err := tl.Measures()
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "measures: %d\n", measures)
		for _, id := range ids {
			b, _ := tl.Track(id)
			blocks, err := tl.Render(id)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "%-5v  %8.2f  %8.2f  %d blocks\n", b.Variant, b.Position.X, b.Position.Y, len(blocks))
		}

		tl.SetViewport(gridlines.Viewport{ScrollX: layoutScroll, Width: layoutWidth})
		lines, err := tl.FlushGrid()
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%d gridlines in view\n", len(lines))
		return nil
	},
}
