// Package astro computes the moon phase from first principles, no provider
// involved. Phase is a pure function of the instant passed in; nothing is
// cached at package level.
package astro

import (
	"math"
	"time"

	"weather-dashboard/internal/models"
)

const (
	// Mean synodic month length in days.
	lunation = 29.530588853
	// Julian day of the reference new moon (2000-01-06 18:14 UTC).
	newMoonJD = 2451550.1

	unixEpochJD = 2440587.5
	dayMillis   = 86400000.0
)

func julianDay(t time.Time) float64 {
	return float64(t.UnixMilli())/dayMillis + unixEpochJD
}

// Phase computes the moon phase at t.
func Phase(t time.Time) models.MoonPhase {
	cycles := (julianDay(t) - newMoonJD) / lunation
	fraction := cycles - math.Floor(cycles)
	age := fraction * lunation

	illum := 0.5 * (1 - math.Cos(2*math.Pi*fraction))
	label, emoji := phaseByAge(age)

	return models.MoonPhase{
		Fraction:     fraction,
		Label:        label,
		Emoji:        emoji,
		Illumination: illum,
		IllumPercent: int(math.Round(illum * 100)),
	}
}

// Calendar returns the phase for each of days consecutive UTC calendar days
// starting at start's date.
func Calendar(start time.Time, days int) []models.MoonDay {
	startUTC := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)

	out := make([]models.MoonDay, 0, days)
	for i := 0; i < days; i++ {
		d := startUTC.AddDate(0, 0, i)
		out = append(out, models.MoonDay{
			Date:  d.Format("2006-01-02"),
			Phase: Phase(d),
		})
	}
	return out
}

// Age cutoffs in days for the eight principal phases.
func phaseByAge(age float64) (string, string) {
	switch {
	case age < 1.84566:
		return "New Moon", "🌑"
	case age < 5.53699:
		return "Waxing Crescent", "🌒"
	case age < 9.22831:
		return "First Quarter", "🌓"
	case age < 12.91963:
		return "Waxing Gibbous", "🌔"
	case age < 16.61096:
		return "Full Moon", "🌕"
	case age < 20.30228:
		return "Waning Gibbous", "🌖"
	case age < 23.0:
		return "Last Quarter", "🌗"
	case age < 27.68493:
		return "Waning Crescent", "🌘"
	default:
		return "New Moon", "🌑"
	}
}
