package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/otelqr/guest-services-api/internal/models"
	"github.com/otelqr/guest-services-api/internal/translation"
	"github.com/otelqr/guest-services-api/pkg/response"
)

type translatorMock struct {
	result      string
	clearErr    error
	clearCalled bool
	lastText    string
	lastTarget  string
}

func (m *translatorMock) Translate(_ context.Context, text, target string) string {
	m.lastText = text
	m.lastTarget = target
	if m.result != "" {
		return m.result
	}
	return text
}

func (m *translatorMock) ClearCache(context.Context) error {
	m.clearCalled = true
	return m.clearErr
}

type translationAuditMock struct {
	logs []models.AuditLog
}

func (m *translationAuditMock) Create(_ context.Context, log *models.AuditLog) error {
	m.logs = append(m.logs, *log)
	return nil
}

func TestTranslationHandlerTranslate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mock := &translatorMock{result: "Welcome"}
	handler := NewTranslationHandler(mock, nil, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodPost, "/translate", bytes.NewBufferString(`{"text":"Hoş Geldiniz","target":"en"}`))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req

	handler.Translate(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Hoş Geldiniz", mock.lastText)
	assert.Equal(t, "en", mock.lastTarget)

	var env response.Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	payload, ok := env.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "Welcome", payload["translated"])
}

func TestTranslationHandlerTranslateMissingFields(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewTranslationHandler(&translatorMock{}, nil, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodPost, "/translate", bytes.NewBufferString(`{"text":"Merhaba"}`))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req

	handler.Translate(c)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func newPreviewHandler(t *testing.T, delay time.Duration) *TranslationHandler {
	t.Helper()
	tr := translation.NewTranslator(translation.NewMemoryCache(), "", false, nil, nil)
	return NewTranslationHandler(tr, translation.NewDebouncer(tr, delay), nil)
}

func TestTranslationHandlerPreview(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := newPreviewHandler(t, 20*time.Millisecond)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodPost, "/admin/translations/preview", bytes.NewBufferString(`{"text":"Havuz","target":"en"}`))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req

	handler.Preview(c)
	require.Equal(t, http.StatusOK, w.Code)

	var env response.Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	payload, ok := env.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "Pool", payload["translated"])
	assert.NotZero(t, payload["request_id"])
}

func TestTranslationHandlerPreviewSuperseded(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := newPreviewHandler(t, 30*time.Millisecond)

	firstDone := make(chan int, 1)
	go func() {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		req, _ := http.NewRequest(http.MethodPost, "/admin/translations/preview", bytes.NewBufferString(`{"text":"Havuz","target":"en"}`))
		req.Header.Set("Content-Type", "application/json")
		c.Request = req
		handler.Preview(c)
		c.Writer.WriteHeaderNow()
		firstDone <- w.Code
	}()

	time.Sleep(10 * time.Millisecond)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodPost, "/admin/translations/preview", bytes.NewBufferString(`{"text":"Kahvaltı","target":"en"}`))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req

	handler.Preview(c)
	require.Equal(t, http.StatusOK, w.Code)

	var env response.Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	payload, ok := env.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "Breakfast", payload["translated"])

	// The superseded first call drains to 204 without a body.
	assert.Equal(t, http.StatusNoContent, <-firstDone)
}

func TestTranslationHandlerClearCache(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mock := &translatorMock{}
	audit := &translationAuditMock{}
	handler := NewTranslationHandler(mock, nil, audit)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodDelete, "/admin/translations/cache", nil)
	c.Request = req

	handler.ClearCache(c)
	c.Writer.WriteHeaderNow()
	require.Equal(t, http.StatusNoContent, w.Code)
	assert.True(t, mock.clearCalled)

	require.Len(t, audit.logs, 1)
	assert.Equal(t, models.AuditActionTranslationFlush, audit.logs[0].Action)
}

func TestTranslationHandlerClearCacheFailure(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mock := &translatorMock{clearErr: assert.AnError}
	handler := NewTranslationHandler(mock, nil, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodDelete, "/admin/translations/cache", nil)
	c.Request = req

	handler.ClearCache(c)
	require.Equal(t, http.StatusInternalServerError, w.Code)
}
