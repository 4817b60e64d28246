package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSessionUnauthenticatedDeniesEverything(t *testing.T) {
	var s Session

	assert.False(t, s.IsAuthenticated())
	assert.False(t, s.IsCustomer())
	assert.False(t, s.IsOwner())
	assert.False(t, s.IsAdmin())
	assert.False(t, s.Can(CapBookMachines))
	assert.False(t, s.HasRole())
}

func TestSessionRolePredicatesAreMutuallyExclusive(t *testing.T) {
	for _, role := range []Role{RoleCustomer, RoleOwner, RoleAdmin} {
		s := Session{Token: "tok", Role: role}

		assert.True(t, s.IsAuthenticated())
		assert.Equal(t, role == RoleCustomer, s.IsCustomer(), "role %s", role)
		assert.Equal(t, role == RoleOwner, s.IsOwner(), "role %s", role)
		assert.Equal(t, role == RoleAdmin, s.IsAdmin(), "role %s", role)
	}
}

func TestSessionRoleWithoutTokenIsNotAuthenticated(t *testing.T) {
	// A role alone means nothing; the token is what authenticates.
	s := Session{Role: RoleAdmin}

	assert.False(t, s.IsAuthenticated())
	assert.False(t, s.IsAdmin())
	assert.False(t, s.Can(CapVerifyOwners))
}

func TestSessionCapabilities(t *testing.T) {
	customer := Session{Token: "tok", Role: RoleCustomer}
	assert.True(t, customer.Can(CapBookMachines))
	assert.True(t, customer.Can(CapWriteReviews))
	assert.False(t, customer.Can(CapManageMachines))
	assert.False(t, customer.Can(CapVerifyOwners))

	owner := Session{Token: "tok", Role: RoleOwner}
	assert.True(t, owner.Can(CapManageMachines))
	assert.True(t, owner.Can(CapFileRecords))
	assert.False(t, owner.Can(CapBookMachines))

	admin := Session{Token: "tok", Role: RoleAdmin}
	assert.True(t, admin.Can(CapVerifyOwners))
	assert.True(t, admin.Can(CapReviewRecords))
	assert.False(t, admin.Can(CapBookMachines))
}

func TestSessionHasRoleSet(t *testing.T) {
	s := Session{Token: "tok", Role: RoleOwner}

	assert.True(t, s.HasRole(RoleOwner))
	assert.True(t, s.HasRole(RoleOwner, RoleAdmin))
	assert.False(t, s.HasRole(RoleCustomer, RoleAdmin))
	// Empty set means any authenticated caller.
	assert.True(t, s.HasRole())
}

func TestSessionClear(t *testing.T) {
	s := Session{Token: "tok", Role: RoleAdmin}
	s.Clear()

	assert.False(t, s.IsAuthenticated())
	assert.Empty(t, s.Token)
	assert.Empty(t, s.Role)
	assert.False(t, s.IsAdmin())
}

func TestCapabilitiesUnknownRoleIsEmpty(t *testing.T) {
	assert.Empty(t, Capabilities("SUPERUSER"))
}
