package cmd

import (
	"cmp"
	"time"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/namefreezers/forecast-qr-api/internal/forecast"
)

func newForecastCmd() *cobra.Command {
	var (
		days int
		seed uint64
	)
	c := &cobra.Command{
		Use:   "forecast",
		Short: "Print a random forecast as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rng := forecast.NewRand()
			if cmd.Flags().Changed("seed") {
				rng = forecast.NewSeededRand(seed)
			}
			entries := forecast.Generate(rng, time.Now(), cmp.Or(days, forecast.DefaultDays))

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(entries)
		},
	}
	c.Flags().IntVar(&days, "days", forecast.DefaultDays, "number of days")
	c.Flags().Uint64Var(&seed, "seed", 0, "seed for reproducible output")
	return c
}
