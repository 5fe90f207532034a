package models

import (
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// VoyageStatus is the lifecycle state of a voyage. The recognized set is
// closed; legacy records may carry ad hoc strings, which map to StatusUnknown
// rather than failing.
type VoyageStatus string

const (
	StatusOnSchedule VoyageStatus = "On Schedule"
	StatusDelayed    VoyageStatus = "Delayed"
	StatusArrived    VoyageStatus = "Arrived"
	StatusUnknown    VoyageStatus = "Unknown"
)

// ParseVoyageStatus normalizes a stored status string.
func ParseVoyageStatus(s string) VoyageStatus {
	switch VoyageStatus(s) {
	case StatusOnSchedule, StatusDelayed, StatusArrived:
		return VoyageStatus(s)
	default:
		return StatusUnknown
	}
}

// ErrSamePort rejects a voyage whose departure and arrival ports are equal.
var ErrSamePort = errors.New("departure and arrival port must differ")

// Voyage is a transit record between a departure and an arrival port.
// ArrivalTime is nil until the voyage completes and is never unset afterwards.
type Voyage struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	VesselID      primitive.ObjectID `bson:"vessel_id" json:"vessel_id"`
	PortFromID    primitive.ObjectID `bson:"port_from_id" json:"port_from_id"`
	PortToID      primitive.ObjectID `bson:"port_to_id" json:"port_to_id"`
	DepartureTime time.Time          `bson:"departure_time" json:"departure_time"`
	ArrivalTime   *time.Time         `bson:"arrival_time,omitempty" json:"arrival_time,omitempty"`
	Status        VoyageStatus       `bson:"status" json:"status"`
}

// NewVoyage builds the initial voyage record for a departure. The state
// machine starts at On Schedule with no arrival time.
func NewVoyage(vesselID, portFrom, portTo primitive.ObjectID, departed time.Time) (Voyage, error) {
	if portFrom == portTo {
		return Voyage{}, ErrSamePort
	}
	return Voyage{
		VesselID:      vesselID,
		PortFromID:    portFrom,
		PortToID:      portTo,
		DepartureTime: departed,
		Status:        StatusOnSchedule,
	}, nil
}

// DepartRequest represents a voyage creation request.
type DepartRequest struct {
	VesselID string `json:"vessel_id" validate:"required"`
	PortFrom string `json:"port_from" validate:"required"`
	PortTo   string `json:"port_to" validate:"required"`
}
