package presence

import (
	"context"
	"errors"
)

// ErrLocationUnavailable means the one-shot location sample failed. Clock-in
// absorbs it and proceeds without a location.
var ErrLocationUnavailable = errors.New("location unavailable")

// LocationProvider samples the device location once. No timeout or retry is
// applied inside the provider.
type LocationProvider interface {
	Capture(ctx context.Context) (string, error)
}

// StaticLocation reports a fixed "lat,long" string, typically the site
// coordinates from configuration.
type StaticLocation struct {
	Coords string
}

func (p StaticLocation) Capture(ctx context.Context) (string, error) {
	if p.Coords == "" {
		return "", ErrLocationUnavailable
	}
	return p.Coords, nil
}

// NoLocation always fails the sample; used when no location source is
// configured.
type NoLocation struct{}

func (NoLocation) Capture(ctx context.Context) (string, error) {
	return "", ErrLocationUnavailable
}
