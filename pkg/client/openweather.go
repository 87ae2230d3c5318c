package client

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"weather-dashboard/internal/metrics"
	"weather-dashboard/internal/models"
	"weather-dashboard/internal/units"
	"go.uber.org/zap"
)

// OpenWeatherClient talks to the OpenWeather geocoding (geo/1.0) and data
// (data/2.5) APIs.
type OpenWeatherClient struct {
	*BaseClient
	apiKey  string
	baseURL string
	geoURL  string
}

type WeatherResponse struct {
	Dt      int64  `json:"dt"`
	Name    string `json:"name"`
	Weather []struct {
		Main        string `json:"main"`
		Description string `json:"description"`
		Icon        string `json:"icon"`
	} `json:"weather"`
	Main struct {
		Temp      float64 `json:"temp"`
		FeelsLike float64 `json:"feels_like"`
		Humidity  float64 `json:"humidity"`
		Pressure  float64 `json:"pressure"`
	} `json:"main"`
	Wind struct {
		Speed float64  `json:"speed"`
		Deg   *float64 `json:"deg"`
	} `json:"wind"`
	Sys struct {
		Country string `json:"country"`
	} `json:"sys"`
	Timezone int `json:"timezone"`
}

type ForecastResponse struct {
	List []struct {
		Dt   int64 `json:"dt"`
		Main struct {
			Temp    float64 `json:"temp"`
			TempMin float64 `json:"temp_min"`
			TempMax float64 `json:"temp_max"`
		} `json:"main"`
		Weather []struct {
			Main        string `json:"main"`
			Description string `json:"description"`
			Icon        string `json:"icon"`
		} `json:"weather"`
		Wind struct {
			Speed float64 `json:"speed"`
		} `json:"wind"`
	} `json:"list"`
	City struct {
		Name     string `json:"name"`
		Country  string `json:"country"`
		Timezone int    `json:"timezone"`
	} `json:"city"`
}

// Samples flattens the response list into the summarizer's input form.
func (r *ForecastResponse) Samples() []models.ForecastSample {
	samples := make([]models.ForecastSample, 0, len(r.List))
	for _, it := range r.List {
		s := models.ForecastSample{
			Dt:        it.Dt,
			Temp:      it.Main.Temp,
			TempMin:   it.Main.TempMin,
			TempMax:   it.Main.TempMax,
			WindSpeed: it.Wind.Speed,
		}
		if len(it.Weather) > 0 {
			s.Icon = it.Weather[0].Icon
			s.Description = it.Weather[0].Description
		}
		samples = append(samples, s)
	}
	return samples
}

func NewOpenWeatherClient(apiKey string, config ClientConfig, logger *zap.Logger) *OpenWeatherClient {
	baseClient := NewBaseClient("openweather", config, logger)
	return &OpenWeatherClient{
		BaseClient: baseClient,
		apiKey:     apiKey,
		baseURL:    "https://api.openweathermap.org/data/2.5",
		geoURL:     "https://api.openweathermap.org/geo/1.0",
	}
}

// WithBaseURLs points the client at alternate endpoints, for tests.
func (c *OpenWeatherClient) WithBaseURLs(dataURL, geoURL string) *OpenWeatherClient {
	c.baseURL = dataURL
	c.geoURL = geoURL
	return c
}

// DirectGeocode resolves an already percent-encoded query parameter to a
// ranked candidate list. Rank order is preserved.
func (c *OpenWeatherClient) DirectGeocode(ctx context.Context, qParam string) ([]models.GeoCandidate, error) {
	url := fmt.Sprintf("%s/direct?q=%s&limit=5&appid=%s", c.geoURL, qParam, c.apiKey)

	data, err := c.get(ctx, "direct_geocode", url)
	if err != nil {
		return nil, fmt.Errorf("failed to geocode query: %w", err)
	}

	var candidates []models.GeoCandidate
	if err := json.Unmarshal(data, &candidates); err != nil {
		return nil, fmt.Errorf("failed to parse geocoding response: %w", err)
	}
	return candidates, nil
}

// ReverseGeocode returns at most one candidate for the coordinates.
func (c *OpenWeatherClient) ReverseGeocode(ctx context.Context, lat, lon float64) ([]models.GeoCandidate, error) {
	url := fmt.Sprintf("%s/reverse?lat=%v&lon=%v&limit=1&appid=%s", c.geoURL, lat, lon, c.apiKey)

	data, err := c.get(ctx, "reverse_geocode", url)
	if err != nil {
		return nil, fmt.Errorf("failed to reverse geocode: %w", err)
	}

	var candidates []models.GeoCandidate
	if err := json.Unmarshal(data, &candidates); err != nil {
		return nil, fmt.Errorf("failed to parse reverse geocoding response: %w", err)
	}
	return candidates, nil
}

// CurrentWeather fetches current conditions for the coordinates in the
// requested unit system.
func (c *OpenWeatherClient) CurrentWeather(ctx context.Context, lat, lon float64, u units.Units) (*WeatherResponse, error) {
	url := fmt.Sprintf("%s/weather?lat=%v&lon=%v&units=%s&appid=%s", c.baseURL, lat, lon, u, c.apiKey)

	data, err := c.get(ctx, "current_weather", url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch current weather: %w", err)
	}

	var response WeatherResponse
	if err := json.Unmarshal(data, &response); err != nil {
		return nil, fmt.Errorf("failed to parse weather response: %w", err)
	}
	return &response, nil
}

// Forecast fetches the 5-day/3-hour forecast for the coordinates.
func (c *OpenWeatherClient) Forecast(ctx context.Context, lat, lon float64, u units.Units) (*ForecastResponse, error) {
	url := fmt.Sprintf("%s/forecast?lat=%v&lon=%v&units=%s&appid=%s", c.baseURL, lat, lon, u, c.apiKey)

	data, err := c.get(ctx, "forecast", url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch forecast: %w", err)
	}

	var response ForecastResponse
	if err := json.Unmarshal(data, &response); err != nil {
		return nil, fmt.Errorf("failed to parse forecast response: %w", err)
	}
	return &response, nil
}

func (c *OpenWeatherClient) get(ctx context.Context, endpoint, url string) ([]byte, error) {
	start := time.Now()
	data, err := c.Get(ctx, url)
	metrics.ObserveProviderCall(endpoint, err, time.Since(start).Seconds())
	return data, err
}
