package booking

import (
	"context"
	"testing"
	"time"

	"gearbook/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeBookingRepo is an in-memory BookingRepository.
type fakeBookingRepo struct {
	bookings    map[string]*models.Booking
	overlapping []models.Booking
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{bookings: make(map[string]*models.Booking)}
}

func (f *fakeBookingRepo) Create(b *models.Booking) error {
	cp := *b
	f.bookings[b.ID] = &cp
	return nil
}

func (f *fakeBookingRepo) Update(b *models.Booking) error {
	cp := *b
	f.bookings[b.ID] = &cp
	return nil
}

func (f *fakeBookingRepo) Delete(id string) error {
	delete(f.bookings, id)
	return nil
}

func (f *fakeBookingRepo) GetByID(id string) (*models.Booking, error) {
	b, ok := f.bookings[id]
	if !ok {
		return nil, nil
	}
	cp := *b
	return &cp, nil
}

func (f *fakeBookingRepo) GetByCode(code string) (*models.Booking, error) {
	for _, b := range f.bookings {
		if b.Code == code {
			cp := *b
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeBookingRepo) GetAll() ([]models.Booking, error) {
	var out []models.Booking
	for _, b := range f.bookings {
		out = append(out, *b)
	}
	return out, nil
}

func (f *fakeBookingRepo) GetByCustomer(customerID string) ([]models.Booking, error) {
	var out []models.Booking
	for _, b := range f.bookings {
		if b.CustomerID == customerID {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (f *fakeBookingRepo) GetByOwner(ownerID string) ([]models.Booking, error) {
	var out []models.Booking
	for _, b := range f.bookings {
		if b.OwnerID == ownerID {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (f *fakeBookingRepo) GetByMachine(machineID string) ([]models.Booking, error) {
	var out []models.Booking
	for _, b := range f.bookings {
		if b.MachineID == machineID {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (f *fakeBookingRepo) UpdateStatus(id string, status models.BookingStatus) error {
	if b, ok := f.bookings[id]; ok {
		b.Status = status
	}
	return nil
}

func (f *fakeBookingRepo) GetStalePending(cutoff time.Time) ([]models.Booking, error) {
	var out []models.Booking
	for _, b := range f.bookings {
		if b.Status == models.BookingPending && b.CreatedAt.Before(cutoff) {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (f *fakeBookingRepo) GetActivePastEnd(now time.Time) ([]models.Booking, error) {
	var out []models.Booking
	for _, b := range f.bookings {
		if b.Status == models.BookingActive && b.EndDate.Before(now) {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (f *fakeBookingRepo) GetOverlapping(machineID string, start, end time.Time) ([]models.Booking, error) {
	return f.overlapping, nil
}

// fakeMachineRepo serves a fixed set of machines.
type fakeMachineRepo struct {
	machines map[string]*models.Machine
}

func (f *fakeMachineRepo) Create(m *models.Machine) error { return nil }
func (f *fakeMachineRepo) Update(m *models.Machine) error { return nil }
func (f *fakeMachineRepo) Delete(id string) error         { return nil }

func (f *fakeMachineRepo) GetByID(id string) (*models.Machine, error) {
	m, ok := f.machines[id]
	if !ok {
		return nil, nil
	}
	return m, nil
}

func (f *fakeMachineRepo) GetAll() ([]models.Machine, error)                { return nil, nil }
func (f *fakeMachineRepo) GetByOwner(string) ([]models.Machine, error)      { return nil, nil }
func (f *fakeMachineRepo) Search(models.MachineSearchRequest) ([]models.Machine, error) {
	return nil, nil
}
func (f *fakeMachineRepo) SetAvailability(string, bool) error               { return nil }
func (f *fakeMachineRepo) AddImage(string, models.MachineImage) error       { return nil }
func (f *fakeMachineRepo) RemoveImage(string, string) error                 { return nil }
func (f *fakeMachineRepo) SetPrimaryImage(string, string) error             { return nil }

// fakeCategoryRepo serves a fixed set of categories.
type fakeCategoryRepo struct {
	categories map[string]*models.Category
}

func (f *fakeCategoryRepo) Create(*models.Category) error { return nil }
func (f *fakeCategoryRepo) Update(*models.Category) error { return nil }
func (f *fakeCategoryRepo) Delete(string) error           { return nil }

func (f *fakeCategoryRepo) GetByID(id string) (*models.Category, error) {
	c, ok := f.categories[id]
	if !ok {
		return nil, nil
	}
	return c, nil
}

func (f *fakeCategoryRepo) GetByName(string) (*models.Category, error) { return nil, nil }
func (f *fakeCategoryRepo) GetAll() ([]models.Category, error)         { return nil, nil }

func newTestService() (*DefaultBookingService, *fakeBookingRepo) {
	repo := newFakeBookingRepo()
	svc := &DefaultBookingService{
		Repo: repo,
		MachineRepo: &fakeMachineRepo{machines: map[string]*models.Machine{
			"excavator-1": {
				ID:         "excavator-1",
				OwnerID:    "owner-1",
				CategoryID: "daily-cat",
				BasePrice:  1000,
				Available:  true,
			},
			"crane-1": {
				ID:         "crane-1",
				OwnerID:    "owner-1",
				CategoryID: "hourly-cat",
				BasePrice:  500,
				Available:  true,
			},
			"mothballed-1": {
				ID:         "mothballed-1",
				OwnerID:    "owner-1",
				CategoryID: "daily-cat",
				BasePrice:  1000,
				Available:  false,
			},
		}},
		CategoryRepo: &fakeCategoryRepo{categories: map[string]*models.Category{
			"daily-cat":  {ID: "daily-cat", Name: "Earthmoving", CalculationType: models.CalculationDaily},
			"hourly-cat": {ID: "hourly-cat", Name: "Lifting", CalculationType: models.CalculationHourly},
		}},
	}
	return svc, repo
}

func TestCreateBookingDerivesTotalAndCode(t *testing.T) {
	svc, _ := newTestService()

	b, err := svc.CreateBooking(context.Background(), "cust-1", models.BookingRequest{
		MachineID:      "excavator-1",
		PickUpLocation: "North yard",
		StartDate:      "2024-01-01",
		EndDate:        "2024-01-03",
	})
	require.NoError(t, err)

	assert.Equal(t, models.BookingPending, b.Status)
	assert.Equal(t, 3000.0, b.TotalAmount)
	assert.Equal(t, "owner-1", b.OwnerID)
	assert.Len(t, b.Code, 8)
	assert.NotContains(t, b.Code, "0")
	assert.NotContains(t, b.Code, "O")
}

func TestCreateBookingHourlyRequiresHours(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.CreateBooking(context.Background(), "cust-1", models.BookingRequest{
		MachineID:      "crane-1",
		PickUpLocation: "Dock 4",
		StartDate:      "2024-01-01",
		EndDate:        "2024-01-01",
	})
	var valErr ValidationError
	require.ErrorAs(t, err, &valErr)

	b, err := svc.CreateBooking(context.Background(), "cust-1", models.BookingRequest{
		MachineID:      "crane-1",
		PickUpLocation: "Dock 4",
		StartDate:      "2024-01-01",
		EndDate:        "2024-01-01",
		Hours:          4,
	})
	require.NoError(t, err)
	assert.Equal(t, 2000.0, b.TotalAmount)
}

func TestCreateBookingRejectsMismatchedQuantity(t *testing.T) {
	svc, _ := newTestService()

	// Distance makes no sense on a daily machine.
	_, err := svc.CreateBooking(context.Background(), "cust-1", models.BookingRequest{
		MachineID:      "excavator-1",
		PickUpLocation: "North yard",
		StartDate:      "2024-01-01",
		EndDate:        "2024-01-03",
		Distance:       25,
	})
	var valErr ValidationError
	assert.ErrorAs(t, err, &valErr)
}

func TestCreateBookingUnavailableMachine(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.CreateBooking(context.Background(), "cust-1", models.BookingRequest{
		MachineID:      "mothballed-1",
		PickUpLocation: "North yard",
		StartDate:      "2024-01-01",
		EndDate:        "2024-01-03",
	})
	assert.ErrorIs(t, err, ErrMachineUnavailable)
}

func TestCreateBookingDatesConflict(t *testing.T) {
	svc, repo := newTestService()
	repo.overlapping = []models.Booking{{ID: "existing"}}

	_, err := svc.CreateBooking(context.Background(), "cust-1", models.BookingRequest{
		MachineID:      "excavator-1",
		PickUpLocation: "North yard",
		StartDate:      "2024-01-01",
		EndDate:        "2024-01-03",
	})
	assert.ErrorIs(t, err, ErrDatesConflict)
}

func TestCreateBookingRejectsReversedDates(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.CreateBooking(context.Background(), "cust-1", models.BookingRequest{
		MachineID:      "excavator-1",
		PickUpLocation: "North yard",
		StartDate:      "2024-01-05",
		EndDate:        "2024-01-03",
	})
	var valErr ValidationError
	assert.ErrorAs(t, err, &valErr)
}

func TestUpdateBookingOnlyPendingAndOwnedByCustomer(t *testing.T) {
	svc, repo := newTestService()

	b, err := svc.CreateBooking(context.Background(), "cust-1", models.BookingRequest{
		MachineID:      "excavator-1",
		PickUpLocation: "North yard",
		StartDate:      "2024-01-01",
		EndDate:        "2024-01-03",
	})
	require.NoError(t, err)

	// Another customer cannot edit it.
	_, err = svc.UpdateBooking(context.Background(), b.ID, "cust-2", models.BookingRequest{
		MachineID:      "excavator-1",
		PickUpLocation: "South yard",
		StartDate:      "2024-01-01",
		EndDate:        "2024-01-03",
	})
	var valErr ValidationError
	assert.ErrorAs(t, err, &valErr)

	// The owner of the booking can, and the total is re-derived.
	updated, err := svc.UpdateBooking(context.Background(), b.ID, "cust-1", models.BookingRequest{
		MachineID:      "excavator-1",
		PickUpLocation: "South yard",
		StartDate:      "2024-01-01",
		EndDate:        "2024-01-05",
	})
	require.NoError(t, err)
	assert.Equal(t, 5000.0, updated.TotalAmount)

	// Once confirmed, edits are rejected.
	require.NoError(t, repo.UpdateStatus(b.ID, models.BookingConfirmed))
	_, err = svc.UpdateBooking(context.Background(), b.ID, "cust-1", models.BookingRequest{
		MachineID:      "excavator-1",
		PickUpLocation: "South yard",
		StartDate:      "2024-01-01",
		EndDate:        "2024-01-03",
	})
	assert.ErrorAs(t, err, &valErr)
}

func TestCancelBookingFollowsLifecycle(t *testing.T) {
	svc, repo := newTestService()

	b, err := svc.CreateBooking(context.Background(), "cust-1", models.BookingRequest{
		MachineID:      "excavator-1",
		PickUpLocation: "North yard",
		StartDate:      "2024-01-01",
		EndDate:        "2024-01-03",
	})
	require.NoError(t, err)

	require.NoError(t, svc.CancelBooking(context.Background(), b.ID, "cust-1"))
	got, _ := repo.GetByID(b.ID)
	assert.Equal(t, models.BookingCancelled, got.Status)

	// Cancelled is terminal.
	err = svc.CancelBooking(context.Background(), b.ID, "cust-1")
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestUpdateStatusRejectsForbiddenTransition(t *testing.T) {
	svc, _ := newTestService()

	b, err := svc.CreateBooking(context.Background(), "cust-1", models.BookingRequest{
		MachineID:      "excavator-1",
		PickUpLocation: "North yard",
		StartDate:      "2024-01-01",
		EndDate:        "2024-01-03",
	})
	require.NoError(t, err)

	_, err = svc.UpdateStatus(b.ID, "owner-1", false, models.BookingCompleted)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	updated, err := svc.UpdateStatus(b.ID, "owner-1", false, models.BookingConfirmed)
	require.NoError(t, err)
	assert.Equal(t, models.BookingConfirmed, updated.Status)
}

func TestUpdateStatusOnlyByMachineOwnerOrAdmin(t *testing.T) {
	svc, repo := newTestService()

	b, err := svc.CreateBooking(context.Background(), "cust-1", models.BookingRequest{
		MachineID:      "excavator-1",
		PickUpLocation: "North yard",
		StartDate:      "2024-01-01",
		EndDate:        "2024-01-03",
	})
	require.NoError(t, err)

	// A different owner cannot move someone else's booking.
	_, err = svc.UpdateStatus(b.ID, "owner-2", false, models.BookingConfirmed)
	assert.ErrorIs(t, err, ErrNotBookingOwner)
	got, _ := repo.GetByID(b.ID)
	assert.Equal(t, models.BookingPending, got.Status)

	// The machine's owner can.
	updated, err := svc.UpdateStatus(b.ID, "owner-1", false, models.BookingConfirmed)
	require.NoError(t, err)
	assert.Equal(t, models.BookingConfirmed, updated.Status)

	// Admins may act on any booking.
	_, err = svc.UpdateStatus(b.ID, "admin-1", true, models.BookingActive)
	assert.NoError(t, err)
}

func TestUpdateStatusConfirmRechecksConflicts(t *testing.T) {
	svc, repo := newTestService()

	b, err := svc.CreateBooking(context.Background(), "cust-1", models.BookingRequest{
		MachineID:      "excavator-1",
		PickUpLocation: "North yard",
		StartDate:      "2024-01-01",
		EndDate:        "2024-01-03",
	})
	require.NoError(t, err)

	// Another booking on the same dates was confirmed after this draft was
	// created; confirming this one must fail.
	repo.overlapping = []models.Booking{{ID: "rival"}}
	_, err = svc.UpdateStatus(b.ID, "owner-1", false, models.BookingConfirmed)
	assert.ErrorIs(t, err, ErrDatesConflict)
	got, _ := repo.GetByID(b.ID)
	assert.Equal(t, models.BookingPending, got.Status)

	// With the rival out of the way, confirmation goes through.
	repo.overlapping = nil
	_, err = svc.UpdateStatus(b.ID, "owner-1", false, models.BookingConfirmed)
	assert.NoError(t, err)
}
