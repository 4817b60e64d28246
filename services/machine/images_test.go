package machine

import (
	"context"
	"errors"
	"testing"
	"time"

	"gearbook/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

// memMachineRepo is an in-memory MachineRepository.
type memMachineRepo struct {
	machines map[string]*models.Machine
}

func (r *memMachineRepo) Create(m *models.Machine) error {
	cp := *m
	r.machines[m.ID] = &cp
	return nil
}

func (r *memMachineRepo) Update(m *models.Machine) error {
	cp := *m
	r.machines[m.ID] = &cp
	return nil
}

func (r *memMachineRepo) Delete(id string) error {
	delete(r.machines, id)
	return nil
}

func (r *memMachineRepo) GetByID(id string) (*models.Machine, error) {
	m, ok := r.machines[id]
	if !ok {
		return nil, nil
	}
	cp := *m
	cp.Images = append([]models.MachineImage(nil), m.Images...)
	return &cp, nil
}

func (r *memMachineRepo) GetAll() ([]models.Machine, error)           { return nil, nil }
func (r *memMachineRepo) GetByOwner(string) ([]models.Machine, error) { return nil, nil }
func (r *memMachineRepo) Search(models.MachineSearchRequest) ([]models.Machine, error) {
	return nil, nil
}

func (r *memMachineRepo) SetAvailability(id string, available bool) error {
	if m, ok := r.machines[id]; ok {
		m.Available = available
	}
	return nil
}

func (r *memMachineRepo) AddImage(machineID string, img models.MachineImage) error {
	m, ok := r.machines[machineID]
	if !ok {
		return errors.New("machine not found")
	}
	m.Images = append(m.Images, img)
	return nil
}

func (r *memMachineRepo) RemoveImage(machineID, imageID string) error {
	m, ok := r.machines[machineID]
	if !ok {
		return errors.New("machine not found")
	}
	out := m.Images[:0]
	for _, img := range m.Images {
		if img.ID != imageID {
			out = append(out, img)
		}
	}
	m.Images = out
	return nil
}

func (r *memMachineRepo) SetPrimaryImage(machineID, imageID string) error {
	m, ok := r.machines[machineID]
	if !ok {
		return errors.New("machine not found")
	}
	for i := range m.Images {
		m.Images[i].Primary = m.Images[i].ID == imageID
	}
	return nil
}

// fakeStorage records uploads and deletions; DeleteFile can be made to fail.
type fakeStorage struct {
	uploads   int
	deleted   []string
	deleteErr error
}

func (s *fakeStorage) UploadFile(ctx context.Context, localFilePath, destFolder string) (string, error) {
	s.uploads++
	return "asset-" + localFilePath, nil
}

func (s *fakeStorage) DeleteFile(ctx context.Context, publicID string) error {
	if s.deleteErr != nil {
		return s.deleteErr
	}
	s.deleted = append(s.deleted, publicID)
	return nil
}

func (s *fakeStorage) GetDownloadURL(ctx context.Context, resourceType, publicID string) (string, error) {
	return "https://cdn.example.com/" + publicID, nil
}

func (s *fakeStorage) GetSecureDownloadURL(ctx context.Context, resourceType, publicID string, expires time.Duration) (string, error) {
	return "https://cdn.example.com/secure/" + publicID, nil
}

// memUserRepo serves a fixed set of users; only the projection getter is
// exercised by the machine service.
type memUserRepo struct {
	users map[string]*models.User
}

func (r *memUserRepo) Create(*models.User) error                  { return nil }
func (r *memUserRepo) Update(*models.User) error                  { return nil }
func (r *memUserRepo) UpdateWithDocument(string, bson.M) error    { return nil }
func (r *memUserRepo) Delete(string) error                        { return nil }
func (r *memUserRepo) GetByID(id string) (*models.User, error)    { return r.users[id], nil }
func (r *memUserRepo) GetByIDWithProjection(id string, _ bson.M) (*models.User, error) {
	return r.users[id], nil
}
func (r *memUserRepo) GetByEmail(string) (*models.User, error) { return nil, nil }
func (r *memUserRepo) GetByEmailWithProjection(string, bson.M) (*models.User, error) {
	return nil, nil
}
func (r *memUserRepo) GetAll() ([]models.User, error)              { return nil, nil }
func (r *memUserRepo) GetUnverifiedOwners() ([]models.User, error) { return nil, nil }

// memCategoryRepo serves a fixed set of categories.
type memCategoryRepo struct {
	categories map[string]*models.Category
}

func (r *memCategoryRepo) Create(*models.Category) error { return nil }
func (r *memCategoryRepo) Update(*models.Category) error { return nil }
func (r *memCategoryRepo) Delete(string) error           { return nil }
func (r *memCategoryRepo) GetByID(id string) (*models.Category, error) {
	return r.categories[id], nil
}
func (r *memCategoryRepo) GetByName(string) (*models.Category, error) { return nil, nil }
func (r *memCategoryRepo) GetAll() ([]models.Category, error)         { return nil, nil }

func newImageTestService() (*DefaultMachineService, *memMachineRepo, *fakeStorage) {
	repo := &memMachineRepo{machines: map[string]*models.Machine{
		"m-1": {
			ID:        "m-1",
			OwnerID:   "owner-1",
			Available: true,
			Images:    []models.MachineImage{},
		},
	}}
	store := &fakeStorage{}
	svc := &DefaultMachineService{
		Repo: repo,
		CategoryRepo: &memCategoryRepo{categories: map[string]*models.Category{
			"cat-1": {ID: "cat-1", CalculationType: models.CalculationDaily},
		}},
		UserRepo: &memUserRepo{users: map[string]*models.User{
			"owner-1": {ID: "owner-1", Role: models.RoleOwner, Verified: true},
		}},
		Storage: store,
	}
	return svc, repo, store
}

func TestAddImageFirstBecomesPrimary(t *testing.T) {
	svc, repo, _ := newImageTestService()
	ctx := context.Background()

	first, err := svc.AddImage(ctx, "m-1", "owner-1", "a.jpg")
	require.NoError(t, err)
	assert.True(t, first.Primary)

	second, err := svc.AddImage(ctx, "m-1", "owner-1", "b.jpg")
	require.NoError(t, err)
	assert.False(t, second.Primary)

	m, _ := repo.GetByID("m-1")
	assert.Len(t, m.Images, 2)
}

func TestAddImageRejectsForeignOwner(t *testing.T) {
	svc, _, store := newImageTestService()

	_, err := svc.AddImage(context.Background(), "m-1", "owner-2", "a.jpg")
	assert.ErrorIs(t, err, ErrNotMachineOwner)
	assert.Zero(t, store.uploads)
}

func TestDeleteImageRemovesStoredAssetFirst(t *testing.T) {
	svc, repo, store := newImageTestService()
	ctx := context.Background()

	img, err := svc.AddImage(ctx, "m-1", "owner-1", "a.jpg")
	require.NoError(t, err)

	require.NoError(t, svc.DeleteImage(ctx, "m-1", "owner-1", img.ID))
	assert.Contains(t, store.deleted, img.PublicID)

	m, _ := repo.GetByID("m-1")
	assert.Empty(t, m.Images)
}

func TestDeleteImageKeepsListingWhenStorageFails(t *testing.T) {
	svc, repo, store := newImageTestService()
	ctx := context.Background()

	img, err := svc.AddImage(ctx, "m-1", "owner-1", "a.jpg")
	require.NoError(t, err)

	// When the stored asset cannot be deleted the listing must not change,
	// so the image never dangles as a broken URL nor leaks as an orphan.
	store.deleteErr = errors.New("cloud outage")
	err = svc.DeleteImage(ctx, "m-1", "owner-1", img.ID)
	require.Error(t, err)

	m, _ := repo.GetByID("m-1")
	assert.Len(t, m.Images, 1)
}

func TestDeleteImagePromotesNewPrimary(t *testing.T) {
	svc, repo, _ := newImageTestService()
	ctx := context.Background()

	first, err := svc.AddImage(ctx, "m-1", "owner-1", "a.jpg")
	require.NoError(t, err)
	second, err := svc.AddImage(ctx, "m-1", "owner-1", "b.jpg")
	require.NoError(t, err)

	require.NoError(t, svc.DeleteImage(ctx, "m-1", "owner-1", first.ID))

	m, _ := repo.GetByID("m-1")
	require.Len(t, m.Images, 1)
	assert.Equal(t, second.ID, m.Images[0].ID)
	assert.True(t, m.Images[0].Primary)
}

func TestSetPrimaryImage(t *testing.T) {
	svc, repo, _ := newImageTestService()
	ctx := context.Background()

	first, err := svc.AddImage(ctx, "m-1", "owner-1", "a.jpg")
	require.NoError(t, err)
	second, err := svc.AddImage(ctx, "m-1", "owner-1", "b.jpg")
	require.NoError(t, err)

	require.NoError(t, svc.SetPrimaryImage("m-1", "owner-1", second.ID))

	m, _ := repo.GetByID("m-1")
	got := m.PrimaryImage()
	require.NotNil(t, got)
	assert.Equal(t, second.ID, got.ID)
	for _, img := range m.Images {
		if img.ID == first.ID {
			assert.False(t, img.Primary)
		}
	}

	assert.ErrorIs(t, svc.SetPrimaryImage("m-1", "owner-1", "no-such-image"), ErrImageNotFound)
}
