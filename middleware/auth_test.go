package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"gearbook/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubVerifier resolves a fixed set of tokens.
type stubVerifier struct {
	sessions map[string]models.Session
	userIDs  map[string]string
}

func (s *stubVerifier) Verify(ctx context.Context, token string) (string, models.Session, error) {
	session, ok := s.sessions[token]
	if !ok {
		return "", models.Session{}, errors.New("token mismatch")
	}
	return s.userIDs[token], session, nil
}

func newTestRouter(roles ...models.Role) (*gin.Engine, *stubVerifier) {
	gin.SetMode(gin.TestMode)
	verifier := &stubVerifier{
		sessions: map[string]models.Session{
			"customer-token": {Token: "customer-token", Role: models.RoleCustomer},
			"admin-token":    {Token: "admin-token", Role: models.RoleAdmin},
		},
		userIDs: map[string]string{
			"customer-token": "cust-1",
			"admin-token":    "admin-1",
		},
	}

	r := gin.New()
	chain := []gin.HandlerFunc{RequireAuth(verifier)}
	if len(roles) > 0 {
		chain = append(chain, RequireRoles(roles...))
	}
	chain = append(chain, func(c *gin.Context) {
		userID, _ := UserIDFrom(c)
		session, _ := SessionFrom(c)
		c.JSON(http.StatusOK, gin.H{"userID": userID, "role": session.Role})
	})
	r.GET("/protected", chain...)
	return r, verifier
}

func doRequest(r *gin.Engine, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRequireAuthMissingToken(t *testing.T) {
	r, _ := newTestRouter()

	w := doRequest(r, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAuthMalformedHeader(t *testing.T) {
	r, _ := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Token abc123")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAuthUnknownToken(t *testing.T) {
	r, _ := newTestRouter()

	w := doRequest(r, "forged-token")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAuthSetsContext(t *testing.T) {
	r, _ := newTestRouter()

	w := doRequest(r, "customer-token")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "cust-1")
	assert.Contains(t, w.Body.String(), string(models.RoleCustomer))
}

func TestRequireRolesForbidsWrongRole(t *testing.T) {
	r, _ := newTestRouter(models.RoleAdmin)

	w := doRequest(r, "customer-token")
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRequireRolesAllowsMatchingRole(t *testing.T) {
	r, _ := newTestRouter(models.RoleAdmin)

	w := doRequest(r, "admin-token")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireRolesAllowsAnyOfSet(t *testing.T) {
	r, _ := newTestRouter(models.RoleCustomer, models.RoleAdmin)

	assert.Equal(t, http.StatusOK, doRequest(r, "customer-token").Code)
	assert.Equal(t, http.StatusOK, doRequest(r, "admin-token").Code)
}
