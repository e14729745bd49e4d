package cmd

import (
	"github.com/jsphweid/timegrid/midi"
	"github.com/jsphweid/timegrid/track"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(exportCmd)
}

var exportCmd = &cobra.Command{
	Use:   "export <notes.yaml> <out.mid>",
	Short: "Writes a note file as a standard MIDI file",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		notes, err := readNotesFile(args[0])
		if err != nil {
			return err
		}
		if notes.Tempo.BPM == 0 {
			notes.Tempo = cfg.Tempo
		}
		// loading through an editor rejects stacked notes
		e := track.NewEditor(notes.TrackID, nil)
		if err := e.Load(notes.Notes); err != nil {
			return err
		}
		notes.Notes = e.Notes()
		return midi.WriteMidiFile(args[1], notes)
	},
}
