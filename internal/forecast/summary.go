// Package forecast turns the provider's raw 3-hour forecast samples into
// day-bucketed and hour-bucketed summaries.
//
// All calendar arithmetic happens in the forecast location's local time,
// expressed as UTC plus an explicit offset in seconds. The machine's own
// time zone is never consulted.
package forecast

import (
	"math"
	"sort"
	"time"

	"weather-dashboard/internal/models"
)

// DefaultDays is the day cap of the summarized forecast.
const DefaultDays = 5

// DefaultHours is the span of the hourly view, in hours of 3-hour steps.
const DefaultHours = 12

const iconURLBase = "https://openweathermap.org/img/wn/"

var weekdays = [7]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

// localTime shifts a unix timestamp by the location's UTC offset and reads
// it with UTC accessors, so the result is the location's wall clock
// regardless of where this code runs.
func localTime(dt int64, offsetSeconds int) time.Time {
	return time.Unix(dt+int64(offsetSeconds), 0).UTC()
}

func dayKey(dt int64, offsetSeconds int) string {
	return localTime(dt, offsetSeconds).Format("2006-01-02")
}

// IconURL expands a provider icon code to a full image URL, defaulting to
// the clear-day icon when the code is absent.
func IconURL(code string) string {
	if code == "" {
		code = "01d"
	}
	return iconURLBase + code + "@2x.png"
}

// Summarize buckets samples by local calendar day and produces at most
// maxDays per-day summaries in chronological order. Each day carries the
// min/max temperature over its bucket and the icon/description of the sample
// closest to local noon. Empty input yields an empty slice.
func Summarize(samples []models.ForecastSample, utcOffsetSeconds, maxDays int) []models.ForecastDay {
	if maxDays <= 0 {
		maxDays = DefaultDays
	}

	buckets := make(map[string][]models.ForecastSample)
	for _, s := range samples {
		k := dayKey(s.Dt, utcOffsetSeconds)
		buckets[k] = append(buckets[k], s)
	}

	keys := make([]string, 0, len(buckets))
	for k := range buckets {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	days := make([]models.ForecastDay, 0, maxDays)
	for _, k := range keys {
		if len(days) >= maxDays {
			break
		}
		days = append(days, summarizeDay(k, buckets[k], utcOffsetSeconds))
	}
	return days
}

func summarizeDay(key string, bucket []models.ForecastSample, offsetSeconds int) models.ForecastDay {
	min, max := math.Inf(1), math.Inf(-1)
	for _, s := range bucket {
		if s.TempMin < min {
			min = s.TempMin
		}
		if s.TempMax > max {
			max = s.TempMax
		}
	}

	// Representative sample: local hour closest to noon, first wins ties.
	best := bucket[0]
	bestScore := math.Inf(1)
	for _, s := range bucket {
		hr := localTime(s.Dt, offsetSeconds).Hour()
		score := math.Abs(float64(hr - 12))
		if score < bestScore {
			bestScore = score
			best = s
		}
	}

	label := weekdays[int(localTime(bucket[0].Dt, offsetSeconds).Weekday())]

	desc := best.Description
	if desc == "" {
		desc = "-"
	}

	return models.ForecastDay{
		Date:        key,
		Label:       label,
		Min:         math.Round(min),
		Max:         math.Round(max),
		Icon:        IconURL(best.Icon),
		Description: desc,
	}
}

// SummarizeHourly maps the first ceil(maxHours/2) raw samples (3-hour steps)
// to hour points, preserving input order. Hour labels use the forecast
// location's clock, the same one the daily path uses.
func SummarizeHourly(samples []models.ForecastSample, utcOffsetSeconds, maxHours int) []models.HourPoint {
	if maxHours <= 0 {
		maxHours = DefaultHours
	}

	take := (maxHours + 1) / 2
	if take < 1 {
		take = 1
	}
	if take > len(samples) {
		take = len(samples)
	}

	points := make([]models.HourPoint, 0, take)
	for _, s := range samples[:take] {
		points = append(points, models.HourPoint{
			Dt:          s.Dt,
			Time:        localTime(s.Dt, utcOffsetSeconds).Format("3 PM"),
			Temp:        math.Round(s.Temp),
			Icon:        IconURL(s.Icon),
			Description: s.Description,
			Wind:        math.Round(s.WindSpeed),
		})
	}
	return points
}
