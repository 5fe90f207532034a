package models

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Location represents a geographical location with latitude and longitude coordinates.
type Location struct {
	Lat float64 `bson:"lat" json:"lat"`
	Lon float64 `bson:"lon" json:"lon"`
}

// Valid reports whether both coordinates are finite and within range.
func (l Location) Valid() bool {
	if math.IsNaN(l.Lat) || math.IsInf(l.Lat, 0) || math.IsNaN(l.Lon) || math.IsInf(l.Lon, 0) {
		return false
	}
	return l.Lat >= -90 && l.Lat <= 90 && l.Lon >= -180 && l.Lon <= 180
}

// String encodes the location as "lat,lon" text, the legacy storage format.
func (l Location) String() string {
	return strconv.FormatFloat(l.Lat, 'f', -1, 64) + "," + strconv.FormatFloat(l.Lon, 'f', -1, 64)
}

// ParseLocation decodes legacy "lat,lon" text into a Location. Seed data and
// older clients still supply coordinates in this form.
func ParseLocation(s string) (Location, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return Location{}, fmt.Errorf("location %q: want \"lat,lon\"", s)
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return Location{}, fmt.Errorf("location %q: bad latitude: %w", s, err)
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return Location{}, fmt.Errorf("location %q: bad longitude: %w", s, err)
	}
	loc := Location{Lat: lat, Lon: lon}
	if !loc.Valid() {
		return Location{}, fmt.Errorf("location %q: coordinates out of range", s)
	}
	return loc, nil
}
