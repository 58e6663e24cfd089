package client

import (
	"context"
	"errors"
	"math/rand"

	"github.com/encontros-app/date-spots-api/internal/types"
)

// LocationErrorKind distinguishes a denied permission from any other
// location failure.
type LocationErrorKind int

const (
	LocationPermissionDenied LocationErrorKind = iota
	LocationUnknown
)

// LocationError is a typed device-location failure. The UI layer is expected
// to catch it and fall back to DefaultLocation instead of failing the search.
type LocationError struct {
	Kind LocationErrorKind
	Msg  string
}

func (e *LocationError) Error() string { return e.Msg }

// Locator provides the device's current coordinates.
type Locator interface {
	CurrentLocation(ctx context.Context) (lat, lon float64, err error)
}

// DefaultLocation is the São Luís city-center fallback used when the real
// location is unavailable.
func DefaultLocation() (lat, lon float64) {
	return -2.5307, -44.3068
}

// ResolveLocation asks the locator for coordinates and falls back to
// DefaultLocation on any LocationError. Other errors propagate.
func ResolveLocation(ctx context.Context, locator Locator) (lat, lon float64, err error) {
	lat, lon, err = locator.CurrentLocation(ctx)
	if err == nil {
		return lat, lon, nil
	}
	var locErr *LocationError
	if errors.As(err, &locErr) {
		lat, lon = DefaultLocation()
		return lat, lon, nil
	}
	return 0, 0, err
}

// RandomPlace picks a random place from a batch for the "surprise me"
// action. Returns nil on an empty batch.
func RandomPlace(places []types.Place) *types.Place {
	if len(places) == 0 {
		return nil
	}
	return &places[rand.Intn(len(places))]
}
