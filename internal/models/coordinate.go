package models

import "errors"

// Coordinate represents a validated geographical point.
type Coordinate struct {
	Latitude  float64 // Latitude of the geographical point, in [-90, 90].
	Longitude float64 // Longitude of the geographical point, in [-180, 180].
}

// ErrInvalidCoordinate is returned when a latitude or longitude is out of range.
var ErrInvalidCoordinate = errors.New("coordinate out of range")

// NewCoordinate validates the given latitude and longitude and returns a Coordinate.
// Latitude must be within [-90, 90] and longitude within [-180, 180].
func NewCoordinate(lat, lng float64) (Coordinate, error) {
	if lat < -90 || lat > 90 {
		return Coordinate{}, ErrInvalidCoordinate
	}
	if lng < -180 || lng > 180 {
		return Coordinate{}, ErrInvalidCoordinate
	}

	return Coordinate{Latitude: lat, Longitude: lng}, nil
}
