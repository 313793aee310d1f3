package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/otelqr/guest-services-api/internal/banner"
	"github.com/otelqr/guest-services-api/internal/service"
	appErrors "github.com/otelqr/guest-services-api/pkg/errors"
	"github.com/otelqr/guest-services-api/pkg/response"
)

// BannerHandler serves the per-session banner snapshot and dismissals.
// The session id comes from the X-Guest-Session header set by the guest
// frontend; each session owns an independent presentation loop.
type BannerHandler struct {
	manager *banner.Manager
	metrics *service.MetricsService
}

// NewBannerHandler builds a new handler.
func NewBannerHandler(manager *banner.Manager, metrics *service.MetricsService) *BannerHandler {
	return &BannerHandler{manager: manager, metrics: metrics}
}

const sessionHeader = "X-Guest-Session"

// Current godoc
// @Summary Current banner for the session
// @Tags Banner
// @Produce json
// @Param X-Guest-Session header string true "Session identifier"
// @Param room query string false "Room identifier"
// @Param lang query string false "Display language"
// @Param context query string false "Set to menu for the guest QR-menu page"
// @Success 200 {object} response.Envelope
// @Router /banner [get]
func (h *BannerHandler) Current(c *gin.Context) {
	sessionID := c.GetHeader(sessionHeader)
	if sessionID == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "missing session header"))
		return
	}

	loop := h.manager.Acquire(
		sessionID,
		c.Query("room"),
		c.Query("lang"),
		c.Query("context") == "menu",
	)
	if h.metrics != nil {
		h.metrics.SetActiveSessions(h.manager.SessionCount())
	}

	view, ok := loop.Current(c.Request.Context())
	if !ok {
		// Nothing displayable: an empty body, not an error.
		response.JSON(c, http.StatusOK, nil, nil)
		return
	}
	response.JSON(c, http.StatusOK, view, nil)
}

// Dismiss godoc
// @Summary Dismiss an announcement for this session
// @Tags Banner
// @Param X-Guest-Session header string true "Session identifier"
// @Param id path string true "Announcement id"
// @Success 204
// @Router /banner/{id}/dismiss [post]
func (h *BannerHandler) Dismiss(c *gin.Context) {
	sessionID := c.GetHeader(sessionHeader)
	if sessionID == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "missing session header"))
		return
	}

	loop := h.manager.Acquire(sessionID, c.Query("room"), c.Query("lang"), c.Query("context") == "menu")
	loop.Dismiss(c.Param("id"))
	response.NoContent(c)
}
