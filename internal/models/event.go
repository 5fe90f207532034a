package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Event is a safety or security incident, optionally tied to a vessel.
// Fleet-wide events (storms, piracy zones) have no vessel reference. The type
// field is an open string validated for presence only.
type Event struct {
	ID        primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	VesselID  *primitive.ObjectID `bson:"vessel_id,omitempty" json:"vessel_id,omitempty"`
	Type      string              `bson:"type" json:"type"`
	Location  Location            `bson:"location" json:"location"`
	Details   string              `bson:"details" json:"details"`
	Timestamp time.Time           `bson:"timestamp" json:"timestamp"`
}

// CreateEventRequest represents an event creation request.
type CreateEventRequest struct {
	VesselID string   `json:"vessel_id,omitempty"`
	Type     string   `json:"type" validate:"required,max=50"`
	Lat      *float64 `json:"lat,omitempty" validate:"omitempty,min=-90,max=90"`
	Lon      *float64 `json:"lon,omitempty" validate:"omitempty,min=-180,max=180"`
	Location string   `json:"location,omitempty"`
	Details  string   `json:"details" validate:"required"`
}

// Coordinates resolves the request's structured or legacy coordinate form.
func (r CreateEventRequest) Coordinates() (Location, error) {
	if r.Lat != nil && r.Lon != nil {
		loc := Location{Lat: *r.Lat, Lon: *r.Lon}
		if !loc.Valid() {
			return Location{}, errInvalidCoordinates
		}
		return loc, nil
	}
	return ParseLocation(r.Location)
}
