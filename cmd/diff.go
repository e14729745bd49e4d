package cmd

import (
	"github.com/jsphweid/timegrid/diff"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func init() {
	rootCmd.AddCommand(diffCmd)
}

var diffCmd = &cobra.Command{
	Use:   "diff <old.yaml> <new.yaml>",
	Short: "Prints the note diffs between two note files",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		oldNotes, err := readNotesFile(args[0])
		if err != nil {
			return err
		}
		newNotes, err := readNotesFile(args[1])
		if err != nil {
			return err
		}
		diffs := diff.Notes(oldNotes.Notes, newNotes.Notes)
		if len(diffs) == 0 {
			return nil
		}
		enc := yaml.NewEncoder(cmd.OutOrStdout())
		defer enc.Close()
		return enc.Encode(diffs)
	},
}
