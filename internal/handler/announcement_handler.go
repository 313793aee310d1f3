package handler

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/otelqr/guest-services-api/internal/models"
	"github.com/otelqr/guest-services-api/internal/service"
	appErrors "github.com/otelqr/guest-services-api/pkg/errors"
	"github.com/otelqr/guest-services-api/pkg/export"
	"github.com/otelqr/guest-services-api/pkg/response"
)

type announcementService interface {
	List(ctx context.Context) []models.Announcement
	Get(ctx context.Context, id string) (*models.Announcement, error)
	Active(ctx context.Context, roomID, category string) []models.Announcement
	Create(ctx context.Context, req service.CreateAnnouncementRequest, actor service.ActorMeta) (*models.Announcement, error)
	Update(ctx context.Context, id string, req service.UpdateAnnouncementRequest, actor service.ActorMeta) (*models.Announcement, error)
	Delete(ctx context.Context, id string, actor service.ActorMeta)
	Toggle(ctx context.Context, id string, actor service.ActorMeta)
}

// AnnouncementHandler exposes the admin CRUD surface plus the guest
// active-list query.
type AnnouncementHandler struct {
	service announcementService
	csv     *export.CSVExporter
	pdf     *export.PDFExporter
}

// NewAnnouncementHandler builds a new handler.
func NewAnnouncementHandler(service announcementService) *AnnouncementHandler {
	return &AnnouncementHandler{
		service: service,
		csv:     export.NewCSVExporter(),
		pdf:     export.NewPDFExporter(),
	}
}

// List godoc
// @Summary List all announcements
// @Tags Announcements
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /admin/announcements [get]
func (h *AnnouncementHandler) List(c *gin.Context) {
	items := h.service.List(c.Request.Context())
	response.JSON(c, http.StatusOK, items, nil)
}

// Active godoc
// @Summary List currently displayable announcements
// @Tags Announcements
// @Produce json
// @Param room query string false "Room identifier"
// @Param category query string false "Category filter"
// @Success 200 {object} response.Envelope
// @Router /announcements/active [get]
func (h *AnnouncementHandler) Active(c *gin.Context) {
	items := h.service.Active(c.Request.Context(), c.Query("room"), c.Query("category"))
	response.JSON(c, http.StatusOK, items, nil)
}

// Get godoc
// @Summary Get an announcement
// @Tags Announcements
// @Produce json
// @Param id path string true "Announcement id"
// @Success 200 {object} response.Envelope
// @Router /admin/announcements/{id} [get]
func (h *AnnouncementHandler) Get(c *gin.Context) {
	item, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, item, nil)
}

// Create godoc
// @Summary Create an announcement
// @Tags Announcements
// @Accept json
// @Produce json
// @Param payload body service.CreateAnnouncementRequest true "Announcement payload"
// @Success 201 {object} response.Envelope
// @Router /admin/announcements [post]
func (h *AnnouncementHandler) Create(c *gin.Context) {
	var req service.CreateAnnouncementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid announcement payload"))
		return
	}
	item, err := h.service.Create(c.Request.Context(), req, actorFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, item)
}

// Update godoc
// @Summary Update an announcement
// @Tags Announcements
// @Accept json
// @Produce json
// @Param id path string true "Announcement id"
// @Param payload body service.UpdateAnnouncementRequest true "Partial payload"
// @Success 200 {object} response.Envelope
// @Router /admin/announcements/{id} [put]
func (h *AnnouncementHandler) Update(c *gin.Context) {
	var req service.UpdateAnnouncementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid announcement payload"))
		return
	}
	item, err := h.service.Update(c.Request.Context(), c.Param("id"), req, actorFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, item, nil)
}

// Delete godoc
// @Summary Delete an announcement
// @Tags Announcements
// @Param id path string true "Announcement id"
// @Success 204
// @Router /admin/announcements/{id} [delete]
func (h *AnnouncementHandler) Delete(c *gin.Context) {
	h.service.Delete(c.Request.Context(), c.Param("id"), actorFromContext(c))
	response.NoContent(c)
}

// Toggle godoc
// @Summary Toggle an announcement's active flag
// @Tags Announcements
// @Param id path string true "Announcement id"
// @Success 204
// @Router /admin/announcements/{id}/toggle [post]
func (h *AnnouncementHandler) Toggle(c *gin.Context) {
	h.service.Toggle(c.Request.Context(), c.Param("id"), actorFromContext(c))
	response.NoContent(c)
}

// Export godoc
// @Summary Export announcements as CSV or PDF
// @Tags Announcements
// @Produce octet-stream
// @Param format query string false "csv or pdf" default(csv)
// @Success 200
// @Router /admin/announcements/export [get]
func (h *AnnouncementHandler) Export(c *gin.Context) {
	dataset := buildDataset(h.service.List(c.Request.Context()))

	switch c.DefaultQuery("format", "csv") {
	case "pdf":
		payload, err := h.pdf.Render(dataset, "Duyurular")
		if err != nil {
			response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render pdf"))
			return
		}
		c.Header("Content-Disposition", `attachment; filename="announcements.pdf"`)
		c.Data(http.StatusOK, "application/pdf", payload)
	case "csv":
		payload, err := h.csv.Render(dataset)
		if err != nil {
			response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render csv"))
			return
		}
		c.Header("Content-Disposition", `attachment; filename="announcements.csv"`)
		c.Data(http.StatusOK, "text/csv", payload)
	default:
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "format must be csv or pdf"))
	}
}

func buildDataset(items []models.Announcement) export.Dataset {
	headers := []string{"ID", "Title", "Category", "Priority", "Active", "Start", "End", "Rooms"}
	rows := make([]map[string]string, 0, len(items))
	for _, a := range items {
		rows = append(rows, map[string]string{
			"ID":       a.ID,
			"Title":    a.Title,
			"Category": string(a.Category),
			"Priority": string(a.Priority),
			"Active":   fmt.Sprintf("%t", a.IsActive),
			"Start":    a.StartDate,
			"End":      a.EndDate,
			"Rooms":    fmt.Sprintf("%d", len(a.TargetRooms)),
		})
	}
	return export.Dataset{Headers: headers, Rows: rows}
}
