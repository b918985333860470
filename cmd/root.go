package cmd

import (
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	cfgFile string
	timeout time.Duration

	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:              "linqfix [paths...]",
	Short:            "linqfix - convert foreach loops into LINQ query expressions",
	TraverseChildren: true, // Prioritize subcommands
	Run: func(cmd *cobra.Command, args []string) {
		// no subcommand
		if len(args) == 0 {
			// display help when only 'linqfix' is entered
			_ = cmd.Help()
			return
		}
		// Format: linqfix [path1 path2 ...] => behaves like the preview subcommand
		previewCmd.Run(previewCmd, args)
	},
}

func Execute() error {
	var err error
	logger, err = zap.NewProduction()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", ".linqfix.yaml", "Path to the configuration file")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 5*time.Minute, "Timeout for the whole analysis")

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(previewCmd)
	rootCmd.AddCommand(applyCmd)
}
