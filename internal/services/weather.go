package services

import (
	"context"
	"fmt"
	"math"
	"time"

	"weather-dashboard/internal/config"
	"weather-dashboard/internal/forecast"
	"weather-dashboard/internal/geo"
	"weather-dashboard/internal/models"
	"weather-dashboard/internal/units"
	"weather-dashboard/pkg/client"
	"go.uber.org/zap"
)

// ProviderClient is the slice of the OpenWeather client the service needs;
// tests substitute a fake.
type ProviderClient interface {
	DirectGeocode(ctx context.Context, qParam string) ([]models.GeoCandidate, error)
	ReverseGeocode(ctx context.Context, lat, lon float64) ([]models.GeoCandidate, error)
	CurrentWeather(ctx context.Context, lat, lon float64, u units.Units) (*client.WeatherResponse, error)
	Forecast(ctx context.Context, lat, lon float64, u units.Units) (*client.ForecastResponse, error)
}

// WeatherService wires query resolution, provider fetches and forecast
// summarization together. It holds no mutable state; every call builds fresh
// value objects, so concurrent requests need no coordination.
type WeatherService struct {
	client     ProviderClient
	logger     *zap.Logger
	hourlySpan int
	maxDays    int
}

func NewWeatherService(cfg *config.Config, logger *zap.Logger) *WeatherService {
	owm := client.NewOpenWeatherClient(
		cfg.Provider.APIKey,
		client.ClientConfig{
			Timeout:        cfg.Provider.Timeout,
			BreakerTimeout: cfg.Provider.BreakerTimeout,
		},
		logger,
	)
	logger.Info("OpenWeather client initialized")

	hourly := cfg.Weather.HourlySpan
	if hourly <= 0 {
		hourly = forecast.DefaultHours
	}

	return &WeatherService{
		client:     owm,
		logger:     logger,
		hourlySpan: hourly,
		maxDays:    forecast.DefaultDays,
	}
}

// NewWeatherServiceWithClient builds a service around an explicit provider
// client, for tests.
func NewWeatherServiceWithClient(c ProviderClient, logger *zap.Logger) *WeatherService {
	return &WeatherService{
		client:     c,
		logger:     logger,
		hourlySpan: forecast.DefaultHours,
		maxDays:    forecast.DefaultDays,
	}
}

// ResolveCity turns a free-text query into coordinates and a display label,
// disambiguating against the provider's ranked candidates.
func (s *WeatherService) ResolveCity(ctx context.Context, query string) (models.ResolvedLocation, error) {
	q := geo.ParseQuery(query)

	candidates, err := s.client.DirectGeocode(ctx, q.Param)
	if err != nil {
		return models.ResolvedLocation{}, err
	}

	pick, err := geo.PickBest(candidates, q.Want)
	if err != nil {
		return models.ResolvedLocation{}, err
	}

	s.logger.Debug("Resolved city query",
		zap.String("query", query),
		zap.Float64("lat", pick.Lat),
		zap.Float64("lon", pick.Lon))

	return models.ResolvedLocation{
		Lat:   pick.Lat,
		Lon:   pick.Lon,
		Label: geo.Label(pick),
	}, nil
}

// LabelForCoords reverse geocodes coordinates into a display label, falling
// back to the bare coordinates when the provider knows no place there.
func (s *WeatherService) LabelForCoords(ctx context.Context, lat, lon float64) (string, error) {
	candidates, err := s.client.ReverseGeocode(ctx, lat, lon)
	if err != nil {
		return "", err
	}
	if len(candidates) == 0 {
		return fmt.Sprintf("%.3f, %.3f", lat, lon), nil
	}
	return geo.Label(candidates[0]), nil
}

// CurrentByCity resolves the query and fetches current conditions.
func (s *WeatherService) CurrentByCity(ctx context.Context, query string, u units.Units) (*models.CurrentConditions, error) {
	loc, err := s.ResolveCity(ctx, query)
	if err != nil {
		return nil, err
	}
	return s.currentAt(ctx, loc.Lat, loc.Lon, loc.Label, u)
}

// CurrentByCoords fetches current conditions for a known position, labeling
// it via reverse geocoding.
func (s *WeatherService) CurrentByCoords(ctx context.Context, lat, lon float64, u units.Units) (*models.CurrentConditions, error) {
	label, err := s.LabelForCoords(ctx, lat, lon)
	if err != nil {
		return nil, err
	}
	return s.currentAt(ctx, lat, lon, label, u)
}

// CurrentByLocator fetches current conditions for the device position
// supplied by the injected locator.
func (s *WeatherService) CurrentByLocator(ctx context.Context, loc geo.Locator, u units.Units) (*models.CurrentConditions, error) {
	lat, lon, err := loc.CurrentPosition(ctx)
	if err != nil {
		return nil, err
	}
	return s.CurrentByCoords(ctx, lat, lon, u)
}

func (s *WeatherService) currentAt(ctx context.Context, lat, lon float64, label string, u units.Units) (*models.CurrentConditions, error) {
	wx, err := s.client.CurrentWeather(ctx, lat, lon, u)
	if err != nil {
		return nil, err
	}

	icon, desc := "", "-"
	if len(wx.Weather) > 0 {
		icon = wx.Weather[0].Icon
		if wx.Weather[0].Description != "" {
			desc = wx.Weather[0].Description
		}
	}

	updated := time.Unix(wx.Dt+int64(wx.Timezone), 0).UTC().Format("3:04 PM")

	return &models.CurrentConditions{
		Label:         label,
		Updated:       updated,
		Icon:          forecast.IconURL(icon),
		Description:   desc,
		Temp:          math.Round(wx.Main.Temp),
		FeelsLike:     math.Round(wx.Main.FeelsLike),
		Humidity:      wx.Main.Humidity,
		Wind:          math.Round(wx.Wind.Speed),
		WindDirection: units.DegToCompass(wx.Wind.Deg),
		Pressure:      wx.Main.Pressure,
	}, nil
}

// ForecastByCity resolves the query and summarizes the 5-day forecast.
func (s *WeatherService) ForecastByCity(ctx context.Context, query string, u units.Units) ([]models.ForecastDay, error) {
	loc, err := s.ResolveCity(ctx, query)
	if err != nil {
		return nil, err
	}
	return s.ForecastByCoords(ctx, loc.Lat, loc.Lon, u)
}

// ForecastByCoords fetches and summarizes the 5-day forecast, bucketing days
// in the forecast location's own time zone.
func (s *WeatherService) ForecastByCoords(ctx context.Context, lat, lon float64, u units.Units) ([]models.ForecastDay, error) {
	resp, err := s.client.Forecast(ctx, lat, lon, u)
	if err != nil {
		return nil, err
	}
	return forecast.Summarize(resp.Samples(), resp.City.Timezone, s.maxDays), nil
}

// HourlyByCity resolves the query and builds the hourly view.
func (s *WeatherService) HourlyByCity(ctx context.Context, query string, u units.Units, hours int) ([]models.HourPoint, error) {
	loc, err := s.ResolveCity(ctx, query)
	if err != nil {
		return nil, err
	}
	return s.HourlyByCoords(ctx, loc.Lat, loc.Lon, u, hours)
}

// HourlyByCoords builds the hourly view from the first few 3-hour samples.
func (s *WeatherService) HourlyByCoords(ctx context.Context, lat, lon float64, u units.Units, hours int) ([]models.HourPoint, error) {
	if hours <= 0 {
		hours = s.hourlySpan
	}
	resp, err := s.client.Forecast(ctx, lat, lon, u)
	if err != nil {
		return nil, err
	}
	return forecast.SummarizeHourly(resp.Samples(), resp.City.Timezone, hours), nil
}
