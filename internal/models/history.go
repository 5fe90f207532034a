package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TrackPoint is one recorded position sample for a vessel. Points are
// append-only; the timestamp is assigned by the store at write time, never by
// the caller.
type TrackPoint struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	VesselID  primitive.ObjectID `bson:"vessel_id" json:"vessel_id"`
	Latitude  float64            `bson:"latitude" json:"latitude"`
	Longitude float64            `bson:"longitude" json:"longitude"`
	Timestamp time.Time          `bson:"timestamp" json:"timestamp"`
}

// AppendTrackPointRequest represents a track append request.
type AppendTrackPointRequest struct {
	VesselID  string  `json:"vessel_id" validate:"required"`
	Latitude  float64 `json:"latitude" validate:"min=-90,max=90"`
	Longitude float64 `json:"longitude" validate:"min=-180,max=180"`
}
