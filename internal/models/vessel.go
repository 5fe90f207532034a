package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
	"time"
)

// Vessel operational statuses. The field is an open string because legacy
// fleet data carries ad hoc values; only "Active" has scoping significance.
const (
	VesselStatusActive   = "Active"
	VesselStatusInactive = "Inactive"
)

// Vessel represents a tracked ship with identity, type, and last known position.
type Vessel struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name         string             `bson:"name" json:"name"`
	MMSI         *int64             `bson:"mmsi,omitempty" json:"mmsi,omitempty"`
	Type         string             `bson:"type" json:"type"`
	Flag         string             `bson:"flag,omitempty" json:"flag,omitempty"`
	Cargo        string             `bson:"cargo,omitempty" json:"cargo,omitempty"`
	LastPosition Location           `bson:"last_position" json:"last_position"`
	Status       string             `bson:"status" json:"status"`
	CreatedAt    time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time          `bson:"updated_at" json:"updated_at"`
}

// CreateVesselRequest represents a vessel creation request.
type CreateVesselRequest struct {
	Name   string   `json:"name" validate:"required,max=100"`
	MMSI   *int64   `json:"mmsi,omitempty" validate:"omitempty,min=0"`
	Type   string   `json:"type" validate:"required,max=50"`
	Flag   string   `json:"flag,omitempty" validate:"max=50"`
	Cargo  string   `json:"cargo,omitempty" validate:"max=100"`
	Lat    float64  `json:"lat" validate:"min=-90,max=90"`
	Lon    float64  `json:"lon" validate:"min=-180,max=180"`
	Status string   `json:"status,omitempty" validate:"max=20"`
}

// UpdateVesselRequest represents a partial vessel update. Nil fields are left
// unchanged.
type UpdateVesselRequest struct {
	Name   *string  `json:"name,omitempty" validate:"omitempty,min=1,max=100"`
	Type   *string  `json:"type,omitempty" validate:"omitempty,min=1,max=50"`
	Flag   *string  `json:"flag,omitempty" validate:"omitempty,max=50"`
	Cargo  *string  `json:"cargo,omitempty" validate:"omitempty,max=100"`
	Lat    *float64 `json:"lat,omitempty" validate:"omitempty,min=-90,max=90"`
	Lon    *float64 `json:"lon,omitempty" validate:"omitempty,min=-180,max=180"`
	Status *string  `json:"status,omitempty" validate:"omitempty,min=1,max=20"`
}
