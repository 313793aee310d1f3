package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/otelqr/guest-services-api/internal/models"
	"github.com/otelqr/guest-services-api/internal/translation"
	appErrors "github.com/otelqr/guest-services-api/pkg/errors"
	"github.com/otelqr/guest-services-api/pkg/response"
)

type translator interface {
	Translate(ctx context.Context, text, target string) string
	ClearCache(ctx context.Context) error
}

type translationAudit interface {
	Create(ctx context.Context, log *models.AuditLog) error
}

// TranslationHandler exposes on-demand translation, the debounced editor
// preview, and the admin bulk cache clear.
type TranslationHandler struct {
	translator translator
	debounce   *translation.Debouncer
	audit      translationAudit
}

// NewTranslationHandler builds a new handler. The debouncer may be nil,
// in which case Preview resolves immediately.
func NewTranslationHandler(t translator, debounce *translation.Debouncer, audit translationAudit) *TranslationHandler {
	return &TranslationHandler{translator: t, debounce: debounce, audit: audit}
}

// TranslateRequest is the on-demand translation payload.
type TranslateRequest struct {
	Text   string `json:"text" binding:"required"`
	Target string `json:"target" binding:"required"`
}

// TranslateResponse carries the resolved text.
type TranslateResponse struct {
	Text       string `json:"text"`
	Translated string `json:"translated"`
	Target     string `json:"target"`
}

// Translate godoc
// @Summary Translate a string
// @Tags Translation
// @Accept json
// @Produce json
// @Param payload body TranslateRequest true "Text and target language"
// @Success 200 {object} response.Envelope
// @Router /translate [post]
func (h *TranslationHandler) Translate(c *gin.Context) {
	var req TranslateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid translate payload"))
		return
	}

	translated := h.translator.Translate(c.Request.Context(), req.Text, req.Target)
	response.JSON(c, http.StatusOK, TranslateResponse{
		Text:       req.Text,
		Translated: translated,
		Target:     req.Target,
	}, nil)
}

// PreviewResponse extends the translate payload with the request id
// assigned by the debouncer.
type PreviewResponse struct {
	RequestID  uint64 `json:"request_id"`
	Text       string `json:"text"`
	Translated string `json:"translated"`
	Target     string `json:"target"`
}

// Preview godoc
// @Summary Debounced translation preview for the dashboard editor
// @Description Rapid consecutive calls supersede each other; a superseded
// @Description call answers 204 and only the newest call carries a result.
// @Tags Translation
// @Accept json
// @Produce json
// @Param payload body TranslateRequest true "Text and target language"
// @Success 200 {object} response.Envelope
// @Success 204
// @Router /admin/translations/preview [post]
func (h *TranslationHandler) Preview(c *gin.Context) {
	var req TranslateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid translate payload"))
		return
	}

	if h.debounce == nil {
		translated := h.translator.Translate(c.Request.Context(), req.Text, req.Target)
		response.JSON(c, http.StatusOK, PreviewResponse{Text: req.Text, Translated: translated, Target: req.Target}, nil)
		return
	}

	results := make(chan translation.Result, 1)
	h.debounce.Request(context.WithoutCancel(c.Request.Context()), req.Text, req.Target, func(r translation.Result) {
		results <- r
	})

	// A superseded request never delivers, so the wait is bounded: the
	// debounce window plus a grace period for the pipeline itself. A slow
	// online resolution past the ceiling also answers 204; its result
	// still lands in the cache for the next attempt.
	wait := 2*h.debounce.Delay() + 250*time.Millisecond
	select {
	case r := <-results:
		response.JSON(c, http.StatusOK, PreviewResponse{
			RequestID:  r.RequestID,
			Text:       req.Text,
			Translated: r.Text,
			Target:     r.Target,
		}, nil)
	case <-time.After(wait):
		response.NoContent(c)
	case <-c.Request.Context().Done():
	}
}

// ClearCache godoc
// @Summary Clear the translation cache
// @Tags Translation
// @Success 204
// @Router /admin/translations/cache [delete]
func (h *TranslationHandler) ClearCache(c *gin.Context) {
	if err := h.translator.ClearCache(c.Request.Context()); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to clear translation cache"))
		return
	}

	if h.audit != nil {
		actor := actorFromContext(c)
		log := &models.AuditLog{
			Action:    models.AuditActionTranslationFlush,
			Resource:  "translation",
			IPAddress: actor.IP,
			UserAgent: actor.UserAgent,
		}
		if actor.UserID != "" {
			log.UserID = &actor.UserID
		}
		_ = h.audit.Create(c.Request.Context(), log)
	}

	response.NoContent(c)
}
