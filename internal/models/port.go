package models

import (
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var errInvalidCoordinates = errors.New("coordinates out of range")

// Port represents a named harbor with a fixed location. Ports are immutable
// after creation.
type Port struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name      string             `bson:"name" json:"name"`
	Location  Location           `bson:"location" json:"location"`
	Country   string             `bson:"country,omitempty" json:"country,omitempty"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}

// CreatePortRequest represents a port creation request. Coordinates may be
// given structured or as legacy "lat,lon" text; exactly one form is required.
type CreatePortRequest struct {
	Name     string   `json:"name" validate:"required,max=100"`
	Lat      *float64 `json:"lat,omitempty" validate:"omitempty,min=-90,max=90"`
	Lon      *float64 `json:"lon,omitempty" validate:"omitempty,min=-180,max=180"`
	Location string   `json:"location,omitempty"`
	Country  string   `json:"country,omitempty" validate:"max=100"`
}

// Coordinates resolves the request's structured or legacy coordinate form.
func (r CreatePortRequest) Coordinates() (Location, error) {
	if r.Lat != nil && r.Lon != nil {
		loc := Location{Lat: *r.Lat, Lon: *r.Lon}
		if !loc.Valid() {
			return Location{}, errInvalidCoordinates
		}
		return loc, nil
	}
	return ParseLocation(r.Location)
}
