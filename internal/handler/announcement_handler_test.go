package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/otelqr/guest-services-api/internal/models"
	"github.com/otelqr/guest-services-api/internal/service"
	appErrors "github.com/otelqr/guest-services-api/pkg/errors"
	"github.com/otelqr/guest-services-api/pkg/response"
)

type announcementServiceMock struct {
	listResp     []models.Announcement
	activeResp   []models.Announcement
	getResp      *models.Announcement
	getErr       error
	createResp   *models.Announcement
	createErr    error
	lastRoom     string
	lastCategory string
	lastActor    service.ActorMeta
	deleteCalled bool
	toggleCalled bool
}

func (m *announcementServiceMock) List(ctx context.Context) []models.Announcement {
	return m.listResp
}

func (m *announcementServiceMock) Get(ctx context.Context, id string) (*models.Announcement, error) {
	return m.getResp, m.getErr
}

func (m *announcementServiceMock) Active(ctx context.Context, roomID, category string) []models.Announcement {
	m.lastRoom = roomID
	m.lastCategory = category
	return m.activeResp
}

func (m *announcementServiceMock) Create(ctx context.Context, req service.CreateAnnouncementRequest, actor service.ActorMeta) (*models.Announcement, error) {
	m.lastActor = actor
	return m.createResp, m.createErr
}

func (m *announcementServiceMock) Update(ctx context.Context, id string, req service.UpdateAnnouncementRequest, actor service.ActorMeta) (*models.Announcement, error) {
	return m.getResp, m.getErr
}

func (m *announcementServiceMock) Delete(ctx context.Context, id string, actor service.ActorMeta) {
	m.deleteCalled = true
}

func (m *announcementServiceMock) Toggle(ctx context.Context, id string, actor service.ActorMeta) {
	m.toggleCalled = true
}

func TestAnnouncementHandlerActive(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockSvc := &announcementServiceMock{
		activeResp: []models.Announcement{{ID: "a", Title: "Duyuru"}},
	}
	handler := NewAnnouncementHandler(mockSvc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodGet, "/announcements/active?room=room-101", nil)
	c.Request = req

	handler.Active(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "room-101", mockSvc.lastRoom)

	var env response.Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	assert.NotNil(t, env.Data)
}

func TestAnnouncementHandlerGetNotFound(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockSvc := &announcementServiceMock{getErr: appErrors.Clone(appErrors.ErrNotFound, "announcement not found")}
	handler := NewAnnouncementHandler(mockSvc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodGet, "/admin/announcements/missing", nil)
	c.Request = req
	c.Params = gin.Params{{Key: "id", Value: "missing"}}

	handler.Get(c)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestAnnouncementHandlerCreate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockSvc := &announcementServiceMock{createResp: &models.Announcement{ID: "new-id"}}
	handler := NewAnnouncementHandler(mockSvc)

	payload := `{"title":"Duyuru","content":"içerik","type":"info","category":"general","start_date":"2024-06-01","priority":"LOW"}`
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodPost, "/admin/announcements", bytes.NewBufferString(payload))
	req.Header.Set("Content-Type", "application/json")
	req.RemoteAddr = "10.0.0.1:1234"
	c.Request = req

	handler.Create(c)
	require.Equal(t, http.StatusCreated, w.Code)
}

func TestAnnouncementHandlerCreateInvalidBody(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewAnnouncementHandler(&announcementServiceMock{})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodPost, "/admin/announcements", bytes.NewBufferString(`{"title":`))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req

	handler.Create(c)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAnnouncementHandlerDeleteAndToggle(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockSvc := &announcementServiceMock{}
	handler := NewAnnouncementHandler(mockSvc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodDelete, "/admin/announcements/a", nil)
	c.Request = req
	c.Params = gin.Params{{Key: "id", Value: "a"}}

	handler.Delete(c)
	c.Writer.WriteHeaderNow()
	require.Equal(t, http.StatusNoContent, w.Code)
	assert.True(t, mockSvc.deleteCalled)

	w = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(w)
	req, _ = http.NewRequest(http.MethodPost, "/admin/announcements/a/toggle", nil)
	c.Request = req
	c.Params = gin.Params{{Key: "id", Value: "a"}}

	handler.Toggle(c)
	c.Writer.WriteHeaderNow()
	require.Equal(t, http.StatusNoContent, w.Code)
	assert.True(t, mockSvc.toggleCalled)
}

func TestAnnouncementHandlerExportCSV(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockSvc := &announcementServiceMock{
		listResp: []models.Announcement{{ID: "a", Title: "Duyuru", Category: models.AnnouncementCategoryGeneral}},
	}
	handler := NewAnnouncementHandler(mockSvc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodGet, "/admin/announcements/export?format=csv", nil)
	c.Request = req

	handler.Export(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "announcements.csv")
	assert.Contains(t, w.Body.String(), "Duyuru")
}

func TestAnnouncementHandlerExportUnknownFormat(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewAnnouncementHandler(&announcementServiceMock{})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodGet, "/admin/announcements/export?format=xml", nil)
	c.Request = req

	handler.Export(c)
	require.Equal(t, http.StatusBadRequest, w.Code)
}
