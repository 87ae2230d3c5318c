package geo

import (
	"context"
	"errors"
)

// Locator errors. Callers distinguish a missing capability from a denied or
// timed-out position request.
var (
	ErrUnsupportedEnvironment = errors.New("geolocation is not supported in this environment")
	ErrPermissionDenied       = errors.New("geolocation permission denied")
)

// Locator abstracts the device position capability so it can be injected and
// substituted in tests.
type Locator interface {
	CurrentPosition(ctx context.Context) (lat, lon float64, err error)
}

// StaticLocator reports a fixed position, typically sourced from
// configuration.
type StaticLocator struct {
	Lat float64
	Lon float64
}

func (s StaticLocator) CurrentPosition(context.Context) (float64, float64, error) {
	return s.Lat, s.Lon, nil
}

// NoLocator is the Locator for environments with no position capability.
type NoLocator struct{}

func (NoLocator) CurrentPosition(context.Context) (float64, float64, error) {
	return 0, 0, ErrUnsupportedEnvironment
}
