package models

// GeoCandidate is a single result from the provider's geocoding endpoints.
// Candidates arrive in provider rank order, which is meaningful.
type GeoCandidate struct {
	Name    string  `json:"name"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
	State   string  `json:"state,omitempty"`
	Country string  `json:"country"`
}

// ResolvedLocation is the outcome of resolving a free-text query: the chosen
// candidate's coordinates plus a display label.
type ResolvedLocation struct {
	Lat   float64 `json:"lat"`
	Lon   float64 `json:"lon"`
	Label string  `json:"label"`
}

// ForecastSample is one 3-hour step of the provider's forecast list,
// normalized to the fields the summarizer needs.
type ForecastSample struct {
	Dt          int64   `json:"dt"`
	TempMin     float64 `json:"temp_min"`
	TempMax     float64 `json:"temp_max"`
	Temp        float64 `json:"temp"`
	WindSpeed   float64 `json:"wind_speed"`
	Icon        string  `json:"icon"`
	Description string  `json:"description"`
}

// ForecastDay is one day of the summarized 5-day forecast. Date is the
// calendar day in the forecast location's local time.
type ForecastDay struct {
	Date        string  `json:"date"`
	Label       string  `json:"label"`
	Min         float64 `json:"min"`
	Max         float64 `json:"max"`
	Icon        string  `json:"icon"`
	Description string  `json:"description"`
}

// HourPoint is one entry of the hourly view, derived one-to-one from a raw
// 3-hour sample.
type HourPoint struct {
	Dt          int64   `json:"dt"`
	Time        string  `json:"time"`
	Temp        float64 `json:"temp"`
	Icon        string  `json:"icon"`
	Description string  `json:"description"`
	Wind        float64 `json:"wind"`
}

// CurrentConditions is the display-ready current weather view.
type CurrentConditions struct {
	Label         string  `json:"label"`
	Updated       string  `json:"updated"`
	Icon          string  `json:"icon"`
	Description   string  `json:"description"`
	Temp          float64 `json:"temp"`
	FeelsLike     float64 `json:"feels_like"`
	Humidity      float64 `json:"humidity"`
	Wind          float64 `json:"wind"`
	WindDirection string  `json:"wind_direction"`
	Pressure      float64 `json:"pressure"`
}

// MoonPhase describes the moon's appearance at an instant.
type MoonPhase struct {
	Fraction     float64 `json:"fraction"`
	Label        string  `json:"label"`
	Emoji        string  `json:"emoji"`
	Illumination float64 `json:"illumination"`
	IllumPercent int     `json:"illumination_percent"`
}

// MoonDay pairs a calendar date with its phase, for the moon calendar view.
type MoonDay struct {
	Date  string    `json:"date"`
	Phase MoonPhase `json:"phase"`
}
