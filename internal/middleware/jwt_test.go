package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/otelqr/guest-services-api/internal/models"
	appErrors "github.com/otelqr/guest-services-api/pkg/errors"
)

type validatorMock struct {
	claims *models.JWTClaims
	err    error
	token  string
}

func (m *validatorMock) ValidateToken(token string) (*models.JWTClaims, error) {
	m.token = token
	return m.claims, m.err
}

func newJWTRouter(v tokenValidator) (*gin.Engine, *bool) {
	gin.SetMode(gin.TestMode)
	reached := false
	r := gin.New()
	r.GET("/admin/ping", JWT(v), func(c *gin.Context) {
		reached = true
		claims, _ := c.Get(ContextUserKey)
		c.JSON(http.StatusOK, claims)
	})
	return r, &reached
}

func TestJWTValidToken(t *testing.T) {
	mock := &validatorMock{claims: &models.JWTClaims{UserID: "admin-1"}}
	r, reached := newJWTRouter(mock)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/admin/ping", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, *reached)
	assert.Equal(t, "good-token", mock.token)
}

func TestJWTMissingHeader(t *testing.T) {
	r, reached := newJWTRouter(&validatorMock{})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/admin/ping", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.False(t, *reached)
}

func TestJWTMalformedHeader(t *testing.T) {
	r, reached := newJWTRouter(&validatorMock{})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/admin/ping", nil)
	req.Header.Set("Authorization", "Token abc")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.False(t, *reached)
}

func TestJWTInvalidToken(t *testing.T) {
	mock := &validatorMock{err: appErrors.Clone(appErrors.ErrUnauthorized, "invalid token")}
	r, reached := newJWTRouter(mock)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/admin/ping", nil)
	req.Header.Set("Authorization", "Bearer bad-token")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.False(t, *reached)
}
