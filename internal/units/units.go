// Package units covers the two supported unit systems and the conversions
// between them. Conversions are exact; rounding happens only at the display
// boundary.
package units

import (
	"fmt"
	"math"
)

type Units string

const (
	Imperial Units = "imperial"
	Metric   Units = "metric"
)

// Parse returns the Units value for s, defaulting to Imperial for anything
// unrecognized.
func Parse(s string) Units {
	if s == string(Metric) {
		return Metric
	}
	return Imperial
}

func FToC(f float64) float64 { return (f - 32) * 5 / 9 }
func CToF(c float64) float64 { return c*9/5 + 32 }

// ConvertTemp converts a temperature between unit systems. Identity when
// from == to.
func ConvertTemp(n float64, from, to Units) float64 {
	if from == to {
		return n
	}
	if to == Metric {
		return FToC(n)
	}
	return CToF(n)
}

const mphPerMs = 0.44704

func MphToMs(mph float64) float64 { return mph * mphPerMs }
func MsToMph(ms float64) float64  { return ms / mphPerMs }

// ConvertWind converts a wind speed between unit systems. Identity when
// from == to.
func ConvertWind(n float64, from, to Units) float64 {
	if from == to {
		return n
	}
	if to == Metric {
		return MphToMs(n)
	}
	return MsToMph(n)
}

// Labels holds the display suffixes for a unit system.
type Labels struct {
	Temp string `json:"temp"`
	Wind string `json:"wind"`
}

func LabelsFor(u Units) Labels {
	if u == Imperial {
		return Labels{Temp: "°F", Wind: "mph"}
	}
	return Labels{Temp: "°C", Wind: "m/s"}
}

var compassDirs = [8]string{"N", "NE", "E", "SE", "S", "SW", "W", "NW"}

// DegToCompass maps a wind bearing in degrees to an 8-point compass
// direction. A nil or NaN bearing yields "-".
func DegToCompass(deg *float64) string {
	if deg == nil || math.IsNaN(*deg) {
		return "-"
	}
	idx := int(math.Round(*deg/45)) % 8
	if idx < 0 {
		idx += 8
	}
	return compassDirs[idx]
}

// String implements fmt.Stringer.
func (u Units) String() string { return string(u) }

// Validate returns an error for anything other than the two supported
// systems.
func (u Units) Validate() error {
	switch u {
	case Imperial, Metric:
		return nil
	}
	return fmt.Errorf("unsupported units %q", string(u))
}
