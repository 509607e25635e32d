// Package cmd holds the oshictl commands.
package cmd

import (
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/okian/oshichecker/pkg/logger"
)

//nolint:gochecknoglobals // Cobra boilerplate
var verbose bool

//nolint:gochecknoglobals // Cobra boilerplate
var rootCmd = &cobra.Command{
	Use:   "oshictl",
	Short: "Operate and verify the oshichecker result service",
	Long: `oshictl maps rankings to match percentages, renders share text offline,
and probes a running oshichecker server against the local score mapper.`,
	SilenceUsage:      true,
	PersistentPreRunE: initLogging,
}

// Execute runs the root command.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
}

func initLogging(cmd *cobra.Command, _ []string) (err error) {
	err = logger.InitWithWriter(cmd.ErrOrStderr(), "text")
	if err != nil {
		err = errors.Wrap(err, "failed to initialize logging")
		return err
	}
	if verbose {
		_ = logger.SetLevelString("debug")
	}
	return err
}
