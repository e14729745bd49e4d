package cmd

import (
	"fmt"

	"github.com/jsphweid/timegrid/midi"
	"github.com/jsphweid/timegrid/musictime"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(inspectCmd)
}

var inspectCmd = &cobra.Command{
	Use:   "inspect <file.mid>",
	Short: "Lists the notes of a MIDI file on the sixteenth grid",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		notes, err := midi.ReadMidiFile(args[0], "")
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "tempo: %v bpm %v\n", notes.Tempo.BPM, notes.Tempo.TimeSignature)
		for _, n := range notes.Notes {
			at, err := musictime.SecondsFromColumns(n.Column, notes.Tempo.BPM)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "%4d  %-4s  col %4d  len %3d  vel %3d  %7.3fs\n", n.ID, midi.PitchName(n.Row), n.Column, n.Length, n.Velocity, at)
		}
		return nil
	},
}
