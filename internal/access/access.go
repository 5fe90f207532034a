// Package access derives the visibility predicate applied to every fleet
// query before any caller-supplied filter. Role information comes exclusively
// from verified token claims; an absent or unrecognized role fails closed to
// the most restrictive scope.
package access

import (
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/marinewatch/maritime-backend/internal/models"
)

// Predicate is a storage-level visibility filter. An empty predicate means
// unrestricted.
type Predicate bson.M

// Scope returns the vessel visibility predicate for the caller. Admins see
// the whole fleet; analysts and operators see only Active vessels, as does
// any caller whose role is missing or unrecognized.
func Scope(claims *models.Claims) Predicate {
	if claims != nil && claims.Role == models.RoleAdmin {
		return Predicate{}
	}
	return Predicate{"status": models.VesselStatusActive}
}

// ApplySearch narrows a predicate with a free-text term matched
// case-insensitively against vessel name or MMSI digits. Search composes with
// AND: it never widens access beyond the role's baseline set.
func ApplySearch(pred Predicate, term string) Predicate {
	if term == "" {
		return pred
	}

	quoted := regexp.QuoteMeta(term)
	match := bson.M{"$or": bson.A{
		bson.M{"name": bson.M{"$regex": quoted, "$options": "i"}},
		bson.M{"$expr": bson.M{"$regexMatch": bson.M{
			"input": bson.M{"$toString": bson.M{"$ifNull": bson.A{"$mmsi", ""}}},
			"regex": quoted,
		}}},
	}}

	if len(pred) == 0 {
		return Predicate(match)
	}
	return Predicate{"$and": bson.A{bson.M(pred), match}}
}

// VesselCorrelated builds a filter for records that reference one of the
// given vessels. Used to carry the vessel scope over to voyages and track
// history.
func VesselCorrelated(vesselIDs []primitive.ObjectID) bson.M {
	return bson.M{"vessel_id": bson.M{"$in": vesselIDs}}
}

// EventCorrelated is VesselCorrelated extended with fleet-wide events, which
// have no vessel reference and are visible to every authenticated caller.
func EventCorrelated(vesselIDs []primitive.ObjectID) bson.M {
	return bson.M{"$or": bson.A{
		bson.M{"vessel_id": nil},
		bson.M{"vessel_id": bson.M{"$exists": false}},
		bson.M{"vessel_id": bson.M{"$in": vesselIDs}},
	}}
}

// CanViewUser reports whether the caller may read or modify the given user
// record. Non-admin callers are limited to their own record.
func CanViewUser(claims *models.Claims, userID string) bool {
	if claims == nil {
		return false
	}
	if claims.Role == models.RoleAdmin {
		return true
	}
	return claims.UserID == userID
}
