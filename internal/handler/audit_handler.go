package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/otelqr/guest-services-api/internal/models"
	"github.com/otelqr/guest-services-api/pkg/response"
)

type auditReader interface {
	ListRecent(ctx context.Context, limit int) ([]models.AuditLog, error)
}

// AuditHandler exposes the admin audit trail.
type AuditHandler struct {
	repo auditReader
}

// NewAuditHandler builds a new handler.
func NewAuditHandler(repo auditReader) *AuditHandler {
	return &AuditHandler{repo: repo}
}

// List godoc
// @Summary List recent audit records
// @Tags Audit
// @Produce json
// @Param limit query int false "Max records" default(50)
// @Success 200 {object} response.Envelope
// @Router /admin/audit [get]
func (h *AuditHandler) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	logs, err := h.repo.ListRecent(c.Request.Context(), limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, logs, nil)
}
