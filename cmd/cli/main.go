package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "weatherctl",
		Short: "weatherctl - 3-day forecasts from the command line",
		Long: `weatherctl fetches a 3-day forecast with daily recommendations,
falling back to a synthetic forecast when live data is unavailable.`,
		SilenceUsage: true,
	}
	rootCmd.AddCommand(newForecastCmd())
	rootCmd.AddCommand(newAdviceCmd())
	return rootCmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
