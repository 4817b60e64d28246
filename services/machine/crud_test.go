package machine

import (
	"testing"

	"gearbook/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newListingTestService() *DefaultMachineService {
	repo := &memMachineRepo{machines: map[string]*models.Machine{}}
	return &DefaultMachineService{
		Repo: repo,
		CategoryRepo: &memCategoryRepo{categories: map[string]*models.Category{
			"cat-1": {ID: "cat-1", CalculationType: models.CalculationDaily},
		}},
		UserRepo: &memUserRepo{users: map[string]*models.User{
			"verified-owner":   {ID: "verified-owner", Role: models.RoleOwner, Verified: true},
			"unverified-owner": {ID: "unverified-owner", Role: models.RoleOwner, Verified: false},
			"customer":         {ID: "customer", Role: models.RoleCustomer, Verified: true},
		}},
		Storage: &fakeStorage{},
	}
}

func listingRequest() models.MachineRequest {
	return models.MachineRequest{
		CategoryID: "cat-1",
		Name:       "20t excavator",
		BasePrice:  "1500",
		Condition:  models.ConditionGood,
	}
}

func TestCreateMachineVerifiedOwner(t *testing.T) {
	svc := newListingTestService()

	m, err := svc.CreateMachine("verified-owner", listingRequest())
	require.NoError(t, err)

	assert.Equal(t, 1500.0, m.BasePrice)
	assert.True(t, m.Available)
	assert.Empty(t, m.Images)
}

func TestCreateMachineRejectsUnverifiedOwner(t *testing.T) {
	svc := newListingTestService()

	_, err := svc.CreateMachine("unverified-owner", listingRequest())
	assert.ErrorIs(t, err, ErrOwnerNotVerified)
}

func TestCreateMachineRejectsNonOwner(t *testing.T) {
	svc := newListingTestService()

	_, err := svc.CreateMachine("customer", listingRequest())
	assert.ErrorIs(t, err, ErrNotMachineOwner)
}

func TestCreateMachineRejectsMalformedBasePrice(t *testing.T) {
	svc := newListingTestService()

	for _, bad := range []string{"", "free", "NaN", "-10", "0"} {
		req := listingRequest()
		req.BasePrice = bad
		_, err := svc.CreateMachine("verified-owner", req)
		assert.ErrorIs(t, err, ErrInvalidBasePrice, "base price %q", bad)
	}
}

func TestCreateMachineRejectsUnknownCategory(t *testing.T) {
	svc := newListingTestService()

	req := listingRequest()
	req.CategoryID = "no-such-category"
	_, err := svc.CreateMachine("verified-owner", req)
	assert.ErrorIs(t, err, ErrUnknownCategory)
}

func TestUpdateMachineOwnershipCheck(t *testing.T) {
	svc := newListingTestService()

	m, err := svc.CreateMachine("verified-owner", listingRequest())
	require.NoError(t, err)

	req := listingRequest()
	req.Name = "30t excavator"
	_, err = svc.UpdateMachine(m.ID, "unverified-owner", req)
	assert.ErrorIs(t, err, ErrNotMachineOwner)

	updated, err := svc.UpdateMachine(m.ID, "verified-owner", req)
	require.NoError(t, err)
	assert.Equal(t, "30t excavator", updated.Name)
}

func TestChangeAvailability(t *testing.T) {
	svc := newListingTestService()

	m, err := svc.CreateMachine("verified-owner", listingRequest())
	require.NoError(t, err)

	got, err := svc.ChangeAvailability("verified-owner", models.AvailabilityRequest{
		MachineID: m.ID,
		Available: false,
	})
	require.NoError(t, err)
	assert.False(t, got.Available)

	_, err = svc.ChangeAvailability("customer", models.AvailabilityRequest{
		MachineID: m.ID,
		Available: true,
	})
	assert.ErrorIs(t, err, ErrNotMachineOwner)
}
