package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"weather-dashboard/internal/units"
	"go.uber.org/zap"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *OpenWeatherClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c := NewOpenWeatherClient("test-key", ClientConfig{
		Timeout:        2 * time.Second,
		BreakerTimeout: time.Minute,
	}, zap.NewNop())
	return c.WithBaseURLs(srv.URL, srv.URL)
}

func TestDirectGeocode(t *testing.T) {
	var gotPath, gotQuery string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		w.Write([]byte(`[
			{"name":"Paris","lat":33.66,"lon":-95.55,"state":"Texas","country":"US"},
			{"name":"Paris","lat":48.85,"lon":2.35,"country":"FR"}
		]`))
	})

	candidates, err := c.DirectGeocode(context.Background(), "Paris%2CTX%2CUS")
	if err != nil {
		t.Fatalf("DirectGeocode: %v", err)
	}
	if gotPath != "/direct" {
		t.Errorf("path = %q", gotPath)
	}
	if gotQuery != "q=Paris%2CTX%2CUS&limit=5&appid=test-key" {
		t.Errorf("query = %q", gotQuery)
	}
	if len(candidates) != 2 || candidates[0].State != "Texas" || candidates[1].Country != "FR" {
		t.Fatalf("candidates = %+v", candidates)
	}
}

func TestReverseGeocode(t *testing.T) {
	var gotQuery string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Write([]byte(`[{"name":"London","lat":51.5,"lon":-0.1,"country":"GB"}]`))
	})

	candidates, err := c.ReverseGeocode(context.Background(), 51.5, -0.1)
	if err != nil {
		t.Fatalf("ReverseGeocode: %v", err)
	}
	if gotQuery != "lat=51.5&lon=-0.1&limit=1&appid=test-key" {
		t.Errorf("query = %q", gotQuery)
	}
	if len(candidates) != 1 || candidates[0].Name != "London" {
		t.Fatalf("candidates = %+v", candidates)
	}
}

func TestCurrentWeather(t *testing.T) {
	var gotPath, gotQuery string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		w.Write([]byte(`{
			"dt": 1717243200,
			"name": "London",
			"timezone": 3600,
			"weather": [{"main":"Clear","description":"clear sky","icon":"01d"}],
			"main": {"temp": 71.6, "feels_like": 70.0, "humidity": 40, "pressure": 1013},
			"wind": {"speed": 5.4, "deg": 90}
		}`))
	})

	wx, err := c.CurrentWeather(context.Background(), 51.5, -0.1, units.Imperial)
	if err != nil {
		t.Fatalf("CurrentWeather: %v", err)
	}
	if gotPath != "/weather" {
		t.Errorf("path = %q", gotPath)
	}
	if gotQuery != "lat=51.5&lon=-0.1&units=imperial&appid=test-key" {
		t.Errorf("query = %q", gotQuery)
	}
	if wx.Main.Temp != 71.6 || wx.Timezone != 3600 {
		t.Errorf("response = %+v", wx)
	}
	if wx.Wind.Deg == nil || *wx.Wind.Deg != 90 {
		t.Errorf("wind deg = %v", wx.Wind.Deg)
	}
}

func TestCurrentWeatherMissingDeg(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"dt": 1717243200, "main": {"temp": 10}, "wind": {"speed": 2}}`))
	})

	wx, err := c.CurrentWeather(context.Background(), 0, 0, units.Metric)
	if err != nil {
		t.Fatalf("CurrentWeather: %v", err)
	}
	if wx.Wind.Deg != nil {
		t.Errorf("wind deg = %v, want nil for absent field", *wx.Wind.Deg)
	}
}

func TestForecast(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/forecast" {
			t.Errorf("path = %q", r.URL.Path)
		}
		w.Write([]byte(`{
			"list": [
				{"dt": 1717243200, "main": {"temp": 70, "temp_min": 60, "temp_max": 80},
				 "weather": [{"description":"few clouds","icon":"02d"}], "wind": {"speed": 4.2}}
			],
			"city": {"name": "London", "country": "GB", "timezone": 3600}
		}`))
	})

	resp, err := c.Forecast(context.Background(), 51.5, -0.1, units.Metric)
	if err != nil {
		t.Fatalf("Forecast: %v", err)
	}

	samples := resp.Samples()
	if len(samples) != 1 {
		t.Fatalf("samples = %+v", samples)
	}
	s := samples[0]
	if s.Dt != 1717243200 || s.TempMin != 60 || s.TempMax != 80 || s.Icon != "02d" || s.WindSpeed != 4.2 {
		t.Errorf("sample = %+v", s)
	}
	if resp.City.Timezone != 3600 {
		t.Errorf("timezone = %d", resp.City.Timezone)
	}
}

func TestRequestErrorCarriesStatusAndBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"cod":401,"message":"Invalid API key"}`))
	})

	_, err := c.DirectGeocode(context.Background(), "Paris")
	if err == nil {
		t.Fatal("expected error")
	}

	var reqErr *RequestError
	if !errors.As(err, &reqErr) {
		t.Fatalf("error type = %T", err)
	}
	if reqErr.StatusCode != http.StatusUnauthorized {
		t.Errorf("status = %d", reqErr.StatusCode)
	}
	if reqErr.Status != "Unauthorized" {
		t.Errorf("status text = %q", reqErr.Status)
	}
	if reqErr.Body != `{"cod":401,"message":"Invalid API key"}` {
		t.Errorf("body = %q", reqErr.Body)
	}
}

func TestEmptyErrorBodyDoesNotMaskFailure(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := c.Forecast(context.Background(), 0, 0, units.Imperial)
	var reqErr *RequestError
	if !errors.As(err, &reqErr) {
		t.Fatalf("error = %v", err)
	}
	if reqErr.StatusCode != http.StatusBadGateway || reqErr.Body != "" {
		t.Errorf("reqErr = %+v", reqErr)
	}
}
