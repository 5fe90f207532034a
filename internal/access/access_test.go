package access

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/marinewatch/maritime-backend/internal/models"
)

func claimsWithRole(role models.Role) *models.Claims {
	return &models.Claims{UserID: "64b0c0ffee0ddf00dd000001", Username: "caller", Role: role}
}

func TestScope_Admin(t *testing.T) {
	pred := Scope(claimsWithRole(models.RoleAdmin))
	assert.Empty(t, pred)
}

func TestScope_RestrictedRoles(t *testing.T) {
	for _, role := range []models.Role{models.RoleOperator, models.RoleAnalyst} {
		pred := Scope(claimsWithRole(role))
		assert.Equal(t, Predicate{"status": models.VesselStatusActive}, pred, string(role))
	}
}

func TestScope_FailClosed(t *testing.T) {
	// Missing claims and unknown roles get the most restrictive scope.
	assert.Equal(t, Predicate{"status": models.VesselStatusActive}, Scope(nil))
	assert.Equal(t, Predicate{"status": models.VesselStatusActive}, Scope(claimsWithRole("superuser")))
	assert.Equal(t, Predicate{"status": models.VesselStatusActive}, Scope(claimsWithRole("")))
}

func TestApplySearch_EmptyTerm(t *testing.T) {
	pred := Scope(claimsWithRole(models.RoleOperator))
	assert.Equal(t, pred, ApplySearch(pred, ""))
}

func TestApplySearch_AdminBase(t *testing.T) {
	pred := ApplySearch(Scope(claimsWithRole(models.RoleAdmin)), "alpha")

	// Unrestricted base: the search match stands alone, no $and wrapper.
	or, ok := pred["$or"]
	require.True(t, ok)
	assert.Len(t, or, 2)
}

func TestApplySearch_ComposesWithAnd(t *testing.T) {
	base := Scope(claimsWithRole(models.RoleOperator))
	pred := ApplySearch(base, "alpha")

	and, ok := pred["$and"].(bson.A)
	require.True(t, ok)
	require.Len(t, and, 2)
	assert.Equal(t, bson.M{"status": models.VesselStatusActive}, and[0])
}

func TestApplySearch_EscapesRegex(t *testing.T) {
	pred := ApplySearch(Predicate{}, "a.c(")

	or := pred["$or"].(bson.A)
	nameMatch := or[0].(bson.M)["name"].(bson.M)
	assert.Equal(t, `a\.c\(`, nameMatch["$regex"])
}

func TestCanViewUser(t *testing.T) {
	admin := claimsWithRole(models.RoleAdmin)
	operator := claimsWithRole(models.RoleOperator)

	assert.True(t, CanViewUser(admin, "someone-else"))
	assert.True(t, CanViewUser(operator, operator.UserID))
	assert.False(t, CanViewUser(operator, "someone-else"))
	assert.False(t, CanViewUser(nil, "anyone"))
}
