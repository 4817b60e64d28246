package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"gearbook/middleware"
	"gearbook/models"

	"github.com/gin-gonic/gin"
	gocache "github.com/patrickmn/go-cache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memCategoryRepo is an in-memory CategoryRepository.
type memCategoryRepo struct {
	categories []models.Category
}

func (m *memCategoryRepo) Create(c *models.Category) error {
	m.categories = append(m.categories, *c)
	return nil
}

func (m *memCategoryRepo) Update(c *models.Category) error {
	for i := range m.categories {
		if m.categories[i].ID == c.ID {
			m.categories[i] = *c
		}
	}
	return nil
}

func (m *memCategoryRepo) Delete(id string) error {
	out := m.categories[:0]
	for _, c := range m.categories {
		if c.ID != id {
			out = append(out, c)
		}
	}
	m.categories = out
	return nil
}

func (m *memCategoryRepo) GetByID(id string) (*models.Category, error) {
	for _, c := range m.categories {
		if c.ID == id {
			cp := c
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *memCategoryRepo) GetByName(name string) (*models.Category, error) {
	for _, c := range m.categories {
		if c.Name == name {
			cp := c
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *memCategoryRepo) GetAll() ([]models.Category, error) {
	return append([]models.Category(nil), m.categories...), nil
}

func newCategoryTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)

	store := gocache.New(time.Minute, time.Minute)
	h := &CategoryHandler{Repo: &memCategoryRepo{}, Cache: store}

	r := gin.New()
	cached := middleware.CacheResponse(store, time.Minute)
	r.GET("/api/categories", cached, h.GetAllCategoriesHandler)
	r.POST("/api/categories", h.CreateCategoryHandler)
	return r
}

func TestCategoryWritesInvalidateCachedList(t *testing.T) {
	r := newCategoryTestRouter()

	// Prime the cache with the empty catalogue.
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/categories", nil))
	require.Equal(t, http.StatusOK, w.Code)
	require.NotContains(t, w.Body.String(), "Earthmoving")

	body, err := json.Marshal(models.CategoryRequest{
		Name:            "Earthmoving",
		CalculationType: models.CalculationDaily,
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/categories", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code)

	// The next read must see the new category, not the cached empty list.
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/categories", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Earthmoving")
}
