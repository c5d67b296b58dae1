package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/weatherwise/backend/internal/forecast"
)

type adviceOptions struct {
	high         float64
	wind         float64
	rain         bool
	thunderstorm bool
}

func newAdviceCmd() *cobra.Command {
	opts := &adviceOptions{}

	cmd := &cobra.Command{
		Use:   "advice",
		Short: "Print the recommendations for one day's conditions",
		Long:  `Evaluate the recommendation rules for a single day, one line per recommendation.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, r := range forecast.Recommend(opts.high, opts.rain, opts.thunderstorm, opts.wind) {
				fmt.Fprintln(cmd.OutOrStdout(), r)
			}
			return nil
		},
	}

	cmd.Flags().Float64Var(&opts.high, "high", 0, "daily high temperature in °C")
	cmd.Flags().Float64Var(&opts.wind, "wind", 0, "peak wind speed in mph")
	cmd.Flags().BoolVar(&opts.rain, "rain", false, "rain expected")
	cmd.Flags().BoolVar(&opts.thunderstorm, "thunderstorm", false, "thunderstorm expected")

	return cmd
}
