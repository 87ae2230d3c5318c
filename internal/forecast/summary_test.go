package forecast

import (
	"testing"
	"time"

	"weather-dashboard/internal/models"
)

// sampleAt builds a forecast sample whose location-local wall clock is the
// given instant under the given UTC offset.
func sampleAt(local time.Time, offsetSeconds int, min, max float64) models.ForecastSample {
	return models.ForecastSample{
		Dt:      local.Unix() - int64(offsetSeconds),
		TempMin: min,
		TempMax: max,
	}
}

func TestSummarizeBucketsByLocalDay(t *testing.T) {
	// UTC-6: samples either side of local midnight must split buckets even
	// though they share a UTC calendar day.
	offset := -6 * 3600
	beforeMidnight := time.Date(2024, 3, 10, 23, 0, 0, 0, time.UTC)
	afterMidnight := time.Date(2024, 3, 11, 1, 0, 0, 0, time.UTC)

	days := Summarize([]models.ForecastSample{
		sampleAt(beforeMidnight, offset, 40, 50),
		sampleAt(afterMidnight, offset, 42, 52),
	}, offset, 5)

	if len(days) != 2 {
		t.Fatalf("got %d days, want 2", len(days))
	}
	if days[0].Date != "2024-03-10" || days[1].Date != "2024-03-11" {
		t.Errorf("dates = %q, %q", days[0].Date, days[1].Date)
	}
}

func TestSummarizeSameLocalDayGroups(t *testing.T) {
	// UTC+9: 23:00 and 02:00 UTC are both March 11 in local time.
	offset := 9 * 3600
	days := Summarize([]models.ForecastSample{
		{Dt: time.Date(2024, 3, 10, 23, 0, 0, 0, time.UTC).Unix(), TempMin: 40, TempMax: 50},
		{Dt: time.Date(2024, 3, 11, 2, 0, 0, 0, time.UTC).Unix(), TempMin: 38, TempMax: 55},
	}, offset, 5)

	if len(days) != 1 {
		t.Fatalf("got %d days, want 1", len(days))
	}
	if days[0].Date != "2024-03-11" {
		t.Errorf("date = %q, want 2024-03-11", days[0].Date)
	}
	if days[0].Min != 38 || days[0].Max != 55 {
		t.Errorf("min/max = %v/%v, want 38/55", days[0].Min, days[0].Max)
	}
}

func TestSummarizeSingleSampleMinMax(t *testing.T) {
	days := Summarize([]models.ForecastSample{
		{Dt: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC).Unix(), TempMin: 40, TempMax: 60},
	}, 0, 5)

	if len(days) != 1 {
		t.Fatalf("got %d days, want 1", len(days))
	}
	if days[0].Min != 40 || days[0].Max != 60 {
		t.Errorf("min/max = %v/%v, want exactly 40/60", days[0].Min, days[0].Max)
	}
}

func TestSummarizeRepresentativeNearNoon(t *testing.T) {
	base := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	var samples []models.ForecastSample
	for h := 0; h < 24; h += 3 {
		s := models.ForecastSample{
			Dt:          base.Add(time.Duration(h) * time.Hour).Unix(),
			TempMin:     50,
			TempMax:     60,
			Icon:        "10n",
			Description: "night rain",
		}
		if h == 12 {
			s.Icon = "01d"
			s.Description = "clear sky"
		}
		samples = append(samples, s)
	}

	days := Summarize(samples, 0, 5)
	if len(days) != 1 {
		t.Fatalf("got %d days, want 1", len(days))
	}
	if days[0].Description != "clear sky" {
		t.Errorf("description = %q, want the local-noon sample's", days[0].Description)
	}
	if days[0].Icon != "https://openweathermap.org/img/wn/01d@2x.png" {
		t.Errorf("icon = %q", days[0].Icon)
	}
}

func TestSummarizeRepresentativeTieFirstWins(t *testing.T) {
	// 09:00 and 15:00 are equidistant from noon; the earlier sample appears
	// first in the bucket and must win.
	day := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	days := Summarize([]models.ForecastSample{
		{Dt: day.Add(9 * time.Hour).Unix(), TempMin: 50, TempMax: 60, Description: "morning"},
		{Dt: day.Add(15 * time.Hour).Unix(), TempMin: 50, TempMax: 60, Description: "afternoon"},
	}, 0, 5)

	if days[0].Description != "morning" {
		t.Errorf("description = %q, want first-occurring tie winner", days[0].Description)
	}
}

func TestSummarizeTruncatesToMaxDays(t *testing.T) {
	base := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	var samples []models.ForecastSample
	for d := 0; d < 7; d++ {
		samples = append(samples, models.ForecastSample{
			Dt:      base.AddDate(0, 0, d).Unix(),
			TempMin: 50,
			TempMax: 60,
		})
	}

	days := Summarize(samples, 0, 5)
	if len(days) != 5 {
		t.Fatalf("got %d days, want 5", len(days))
	}
	for i := 1; i < len(days); i++ {
		if days[i].Date <= days[i-1].Date {
			t.Errorf("days out of order: %q after %q", days[i].Date, days[i-1].Date)
		}
	}
	if days[0].Date != "2024-06-01" || days[4].Date != "2024-06-05" {
		t.Errorf("range = %q..%q, want first five chronological days", days[0].Date, days[4].Date)
	}
}

func TestSummarizeInputOrderIndependent(t *testing.T) {
	base := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	samples := []models.ForecastSample{
		{Dt: base.AddDate(0, 0, 2).Unix(), TempMin: 1, TempMax: 2},
		{Dt: base.Unix(), TempMin: 3, TempMax: 4},
		{Dt: base.AddDate(0, 0, 1).Unix(), TempMin: 5, TempMax: 6},
	}

	days := Summarize(samples, 0, 5)
	if len(days) != 3 {
		t.Fatalf("got %d days, want 3", len(days))
	}
	for i := 1; i < len(days); i++ {
		if days[i].Date <= days[i-1].Date {
			t.Errorf("days out of order: %q after %q", days[i].Date, days[i-1].Date)
		}
	}
}

func TestSummarizeWeekdayLabel(t *testing.T) {
	// 2024-06-02 is a Sunday.
	days := Summarize([]models.ForecastSample{
		{Dt: time.Date(2024, 6, 2, 12, 0, 0, 0, time.UTC).Unix(), TempMin: 50, TempMax: 60},
	}, 0, 5)

	if days[0].Label != "Sun" {
		t.Errorf("label = %q, want Sun", days[0].Label)
	}
}

func TestSummarizeWeekdayLabelUsesOffset(t *testing.T) {
	// 23:30 UTC Saturday is already Sunday at UTC+1.
	days := Summarize([]models.ForecastSample{
		{Dt: time.Date(2024, 6, 1, 23, 30, 0, 0, time.UTC).Unix(), TempMin: 50, TempMax: 60},
	}, 3600, 5)

	if days[0].Date != "2024-06-02" {
		t.Fatalf("date = %q, want 2024-06-02", days[0].Date)
	}
	if days[0].Label != "Sun" {
		t.Errorf("label = %q, want Sun", days[0].Label)
	}
}

func TestSummarizeEmptyInput(t *testing.T) {
	days := Summarize(nil, 3600, 5)
	if len(days) != 0 {
		t.Fatalf("got %d days, want 0", len(days))
	}
}

func TestSummarizeMissingDescription(t *testing.T) {
	days := Summarize([]models.ForecastSample{
		{Dt: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC).Unix(), TempMin: 50, TempMax: 60},
	}, 0, 5)

	if days[0].Description != "-" {
		t.Errorf("description = %q, want fallback -", days[0].Description)
	}
	if days[0].Icon != "https://openweathermap.org/img/wn/01d@2x.png" {
		t.Errorf("icon = %q, want default icon URL", days[0].Icon)
	}
}

func TestSummarizeHourly(t *testing.T) {
	base := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	var samples []models.ForecastSample
	for i := 0; i < 10; i++ {
		samples = append(samples, models.ForecastSample{
			Dt:          base.Add(time.Duration(i*3) * time.Hour).Unix(),
			Temp:        70.4,
			WindSpeed:   5.6,
			Icon:        "02d",
			Description: "few clouds",
		})
	}

	points := SummarizeHourly(samples, 0, 12)
	if len(points) != 6 {
		t.Fatalf("got %d points, want ceil(12/2)=6", len(points))
	}
	for i := 1; i < len(points); i++ {
		if points[i].Dt <= points[i-1].Dt {
			t.Errorf("points out of order at %d", i)
		}
	}
	if points[0].Temp != 70 || points[0].Wind != 6 {
		t.Errorf("rounding: temp=%v wind=%v", points[0].Temp, points[0].Wind)
	}
	if points[0].Time != "12 AM" || points[1].Time != "3 AM" {
		t.Errorf("labels = %q, %q", points[0].Time, points[1].Time)
	}
}

func TestSummarizeHourlyOffsetShiftsLabels(t *testing.T) {
	samples := []models.ForecastSample{
		{Dt: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC).Unix(), Temp: 70},
	}

	points := SummarizeHourly(samples, 3*3600, 12)
	if points[0].Time != "3 PM" {
		t.Errorf("label = %q, want 3 PM", points[0].Time)
	}
}

func TestSummarizeHourlyShortInput(t *testing.T) {
	samples := []models.ForecastSample{
		{Dt: 1700000000, Temp: 60},
		{Dt: 1700010800, Temp: 61},
	}

	points := SummarizeHourly(samples, 0, 12)
	if len(points) != 2 {
		t.Fatalf("got %d points, want the 2 available", len(points))
	}

	if got := SummarizeHourly(nil, 0, 12); len(got) != 0 {
		t.Fatalf("got %d points from empty input, want 0", len(got))
	}

	// A one-hour window still yields at least one raw sample.
	if got := SummarizeHourly(samples, 0, 1); len(got) != 1 {
		t.Fatalf("got %d points for maxHours=1, want 1", len(got))
	}
}
