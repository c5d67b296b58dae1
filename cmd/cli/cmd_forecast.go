package main

import (
	"encoding/json"
	"fmt"
	"math/rand/v2"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/weatherwise/backend/internal/config"
	"github.com/weatherwise/backend/internal/forecast"
	"github.com/weatherwise/backend/internal/logging"
	"github.com/weatherwise/backend/internal/provider"
	"github.com/weatherwise/backend/internal/repository/postgres"
	"github.com/weatherwise/backend/internal/service"
)

type forecastOptions struct {
	city    string
	offline bool
	seed    uint64
}

func newForecastCmd() *cobra.Command {
	opts := &forecastOptions{}

	cmd := &cobra.Command{
		Use:   "forecast",
		Short: "Print the 3-day forecast for a city",
		Long: `Fetch the forecast from OpenWeatherMap and print it as JSON.
With --offline, or when the live fetch fails, a synthetic forecast is printed.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runForecast(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.city, "city", "", "city name, e.g. London or London,GB")
	cmd.Flags().BoolVar(&opts.offline, "offline", false, "skip the live provider and synthesize a forecast")
	cmd.Flags().Uint64Var(&opts.seed, "seed", 0, "seed for synthetic forecasts (0 = random)")
	_ = cmd.MarkFlagRequired("city")

	return cmd
}

func runForecast(cmd *cobra.Command, opts *forecastOptions) error {
	if strings.TrimSpace(opts.city) == "" {
		return fmt.Errorf("--city must not be blank")
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log := logging.New(os.Stderr, cfg, "weatherctl")

	var source provider.SampleSource = provider.NewOpenWeatherMap(
		cfg.OpenWeatherAPIKey, cfg.OpenWeatherAPIURL, cfg.OpenWeatherTimeout,
	)
	source = provider.NewRateLimitedSource(source, cfg.OpenWeatherRPS, cfg.OpenWeatherBurst)

	weatherSvc := service.NewWeatherService(source, forecast.NewAggregator(), seededRand(opts.seed)).
		WithFetchTimeout(cfg.OpenWeatherTimeout)
	orchestrator := service.NewForecastOrchestrator(weatherSvc, nil, postgres.NewMockRepository(), log)

	result, src := orchestrator.Forecast(cmd.Context(), opts.city, opts.offline)
	orchestrator.WaitBackground()
	log.Debug("forecast resolved", "city", opts.city, "source", src)

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}

// seededRand returns nil for seed 0 so the service picks a time-seeded source.
func seededRand(seed uint64) service.RandFactory {
	if seed == 0 {
		return nil
	}
	return func() *rand.Rand {
		return rand.New(rand.NewPCG(seed, seed))
	}
}
