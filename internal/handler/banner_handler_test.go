package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/otelqr/guest-services-api/internal/banner"
	"github.com/otelqr/guest-services-api/internal/models"
	"github.com/otelqr/guest-services-api/pkg/response"
)

type bannerSourceStub struct {
	active []models.Announcement
}

func (s *bannerSourceStub) Active() []models.Announcement { return s.active }

func (s *bannerSourceStub) ByRoom(string) []models.Announcement { return s.active }

func newBannerManager(source banner.Source) *banner.Manager {
	cfg := banner.Config{RefreshInterval: time.Hour, RotationInterval: time.Hour}
	return banner.NewManager(source, nil, cfg, time.Hour, nil)
}

func TestBannerHandlerCurrent(t *testing.T) {
	gin.SetMode(gin.TestMode)
	source := &bannerSourceStub{active: []models.Announcement{
		{ID: "a", Title: "Hoş Geldiniz", IsActive: true},
	}}
	handler := NewBannerHandler(newBannerManager(source), nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodGet, "/banner?lang=tr", nil)
	req.Header.Set("X-Guest-Session", "sess-1")
	c.Request = req

	handler.Current(c)
	require.Equal(t, http.StatusOK, w.Code)

	var env response.Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	payload, ok := env.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "a", payload["id"])
	assert.Equal(t, "Hoş Geldiniz", payload["title"])
}

func TestBannerHandlerCurrentEmptyList(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewBannerHandler(newBannerManager(&bannerSourceStub{}), nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodGet, "/banner", nil)
	req.Header.Set("X-Guest-Session", "sess-1")
	c.Request = req

	handler.Current(c)
	require.Equal(t, http.StatusOK, w.Code)

	var env response.Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	assert.Nil(t, env.Data)
}

func TestBannerHandlerMissingSessionHeader(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewBannerHandler(newBannerManager(&bannerSourceStub{}), nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodGet, "/banner", nil)
	c.Request = req

	handler.Current(c)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestBannerHandlerDismiss(t *testing.T) {
	gin.SetMode(gin.TestMode)
	source := &bannerSourceStub{active: []models.Announcement{
		{ID: "a", Title: "Hoş Geldiniz", IsActive: true},
	}}
	manager := newBannerManager(source)
	handler := NewBannerHandler(manager, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodPost, "/banner/a/dismiss", nil)
	req.Header.Set("X-Guest-Session", "sess-1")
	c.Request = req
	c.Params = gin.Params{{Key: "id", Value: "a"}}

	handler.Dismiss(c)
	c.Writer.WriteHeaderNow()
	require.Equal(t, http.StatusNoContent, w.Code)

	// The dismissed announcement is gone for this session.
	w = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(w)
	req, _ = http.NewRequest(http.MethodGet, "/banner", nil)
	req.Header.Set("X-Guest-Session", "sess-1")
	c.Request = req

	handler.Current(c)
	require.Equal(t, http.StatusOK, w.Code)

	var env response.Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	assert.Nil(t, env.Data)
}
