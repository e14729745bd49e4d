package cmd

import (
	"os"

	"github.com/jsphweid/timegrid/config"
	"github.com/jsphweid/timegrid/constants"
	"github.com/jsphweid/timegrid/logging"
	"github.com/spf13/cobra"
)

var (
	cfgFile  string
	logLevel string
	cfg      = config.Default()
)

var rootCmd = &cobra.Command{
	Use:   "timegrid",
	Short: "Musical time and grid geometry for a timeline editor",
	Long: `timegrid converts between musical time and timeline pixels, computes
gridlines, diffs note collections and moves notes in and out of MIDI files.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load(cfgFile)
		if err != nil {
			return err
		}
		if logLevel != "" {
			loaded.LogLevel = logLevel
		}
		logging.Setup(os.Stderr, loaded.LogLevel)
		cfg = loaded
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", constants.GetConfigPath(), "config file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (overrides config)")
}

func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}
