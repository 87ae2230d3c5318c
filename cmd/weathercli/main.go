package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"weather-dashboard/internal/astro"
	"weather-dashboard/internal/config"
	"weather-dashboard/internal/geo"
	"weather-dashboard/internal/models"
	"weather-dashboard/internal/services"
	"weather-dashboard/internal/units"
)

var (
	cityFlag  string
	unitsFlag string
	hoursFlag int
	daysFlag  int
)

func main() {
	logger, _ := zap.NewProduction()
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}

	weather := services.NewWeatherService(cfg, logger)

	var locator geo.Locator = geo.NoLocator{}
	if cfg.Device.HasPos {
		locator = geo.StaticLocator{Lat: cfg.Device.Lat, Lon: cfg.Device.Lon}
	}

	rootCmd := &cobra.Command{
		Use:   "weathercli",
		Short: "Weather dashboard CLI",
		Long:  "Fetches current conditions, forecasts and moon phases for a city or the configured device position",
	}
	rootCmd.PersistentFlags().StringVar(&cityFlag, "city", "", "city query, e.g. \"Springfield, IL\"")
	rootCmd.PersistentFlags().StringVar(&unitsFlag, "units", cfg.Weather.DefaultUnits, "imperial or metric")

	currentCmd := &cobra.Command{
		Use:   "current",
		Short: "Current conditions",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()

			u := units.Parse(unitsFlag)
			labels := units.LabelsFor(u)

			current, err := fetchCurrent(ctx, weather, locator, u)
			if err != nil {
				return err
			}

			fmt.Printf("%s (updated %s)\n", current.Label, current.Updated)
			fmt.Printf("  %s, %v%s (feels like %v%s)\n",
				current.Description, current.Temp, labels.Temp, current.FeelsLike, labels.Temp)
			fmt.Printf("  wind %v %s %s, humidity %v%%, pressure %v hPa\n",
				current.Wind, labels.Wind, current.WindDirection, current.Humidity, current.Pressure)
			return nil
		},
	}

	forecastCmd := &cobra.Command{
		Use:   "forecast",
		Short: "5-day forecast",
		RunE: func(cmd *cobra.Command, args []string) error {
			if cityFlag == "" {
				return errors.New("--city is required")
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()

			u := units.Parse(unitsFlag)
			labels := units.LabelsFor(u)

			days, err := weather.ForecastByCity(ctx, cityFlag, u)
			if err != nil {
				return err
			}
			for _, d := range days {
				fmt.Printf("%s %s  %v%s / %v%s  %s\n",
					d.Date, d.Label, d.Min, labels.Temp, d.Max, labels.Temp, d.Description)
			}
			return nil
		},
	}

	hourlyCmd := &cobra.Command{
		Use:   "hourly",
		Short: "Hourly forecast",
		RunE: func(cmd *cobra.Command, args []string) error {
			if cityFlag == "" {
				return errors.New("--city is required")
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()

			u := units.Parse(unitsFlag)
			labels := units.LabelsFor(u)

			points, err := weather.HourlyByCity(ctx, cityFlag, u, hoursFlag)
			if err != nil {
				return err
			}
			for _, p := range points {
				fmt.Printf("%-6s %v%s  wind %v %s  %s\n",
					p.Time, p.Temp, labels.Temp, p.Wind, labels.Wind, p.Description)
			}
			return nil
		},
	}
	hourlyCmd.Flags().IntVar(&hoursFlag, "hours", 12, "span in hours")

	moonCmd := &cobra.Command{
		Use:   "moon",
		Short: "Moon phase calendar",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, day := range astro.Calendar(time.Now().UTC(), daysFlag) {
				fmt.Printf("%s  %s %s (%d%% illuminated)\n",
					day.Date, day.Phase.Emoji, day.Phase.Label, day.Phase.IllumPercent)
			}
			return nil
		},
	}
	moonCmd.Flags().IntVar(&daysFlag, "days", 7, "number of days")

	rootCmd.AddCommand(currentCmd, forecastCmd, hourlyCmd, moonCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func fetchCurrent(ctx context.Context, weather *services.WeatherService, locator geo.Locator, u units.Units) (*models.CurrentConditions, error) {
	if cityFlag != "" {
		return weather.CurrentByCity(ctx, cityFlag, u)
	}
	current, err := weather.CurrentByLocator(ctx, locator, u)
	if errors.Is(err, geo.ErrUnsupportedEnvironment) {
		return nil, errors.New("no --city given and no device position configured (set DEVICE_LAT/DEVICE_LON)")
	}
	return current, err
}
