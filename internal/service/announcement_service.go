package service

import (
	"context"
	"encoding/json"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/otelqr/guest-services-api/internal/models"
	appErrors "github.com/otelqr/guest-services-api/pkg/errors"
)

// announcementStore is the mutation and query surface of the store the
// service orchestrates.
type announcementStore interface {
	Add(ctx context.Context, a models.Announcement)
	Update(ctx context.Context, id string, patch models.AnnouncementPatch)
	Remove(ctx context.Context, id string)
	ToggleActive(ctx context.Context, id string)
	Get(id string) (models.Announcement, bool)
	All() []models.Announcement
	Active() []models.Announcement
	ByRoom(roomID string) []models.Announcement
	ByCategory(category models.AnnouncementCategory) []models.Announcement
}

type auditWriter interface {
	Create(ctx context.Context, log *models.AuditLog) error
}

var isoDate = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// AnnouncementService validates admin payloads, applies them to the
// store, and records an audit trail. Store mutations themselves never
// fail; only validation errors surface to callers.
type AnnouncementService struct {
	store     announcementStore
	audit     auditWriter
	validator *validator.Validate
	logger    *zap.Logger
}

// NewAnnouncementService constructs the service and registers the custom
// enum and date validators.
func NewAnnouncementService(store announcementStore, audit auditWriter, validate *validator.Validate, logger *zap.Logger) *AnnouncementService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	svc := &AnnouncementService{store: store, audit: audit, validator: validate, logger: logger}
	svc.validator.RegisterValidation("announcement_type", func(fl validator.FieldLevel) bool {
		switch models.AnnouncementType(fl.Field().String()) {
		case models.AnnouncementTypeInfo, models.AnnouncementTypeWarning, models.AnnouncementTypePromotion,
			models.AnnouncementTypeMaintenance, models.AnnouncementTypeAdvertisement:
			return true
		default:
			return false
		}
	})
	svc.validator.RegisterValidation("announcement_category", func(fl validator.FieldLevel) bool {
		switch models.AnnouncementCategory(fl.Field().String()) {
		case models.AnnouncementCategoryGeneral, models.AnnouncementCategoryMenu,
			models.AnnouncementCategoryHotel, models.AnnouncementCategoryPromotion:
			return true
		default:
			return false
		}
	})
	svc.validator.RegisterValidation("announcement_priority", func(fl validator.FieldLevel) bool {
		switch models.AnnouncementPriority(strings.ToUpper(fl.Field().String())) {
		case models.AnnouncementPriorityLow, models.AnnouncementPriorityMedium,
			models.AnnouncementPriorityHigh, models.AnnouncementPriorityUrgent:
			return true
		default:
			return false
		}
	})
	svc.validator.RegisterValidation("iso_date", func(fl validator.FieldLevel) bool {
		value := fl.Field().String()
		if value == "" {
			return true
		}
		return isoDate.MatchString(value)
	})
	return svc
}

// CreateAnnouncementRequest describes the create payload.
type CreateAnnouncementRequest struct {
	Title        string                                `json:"title" validate:"required"`
	Content      string                                `json:"content" validate:"required"`
	Translations map[string]models.TranslationEntry    `json:"translations"`
	Type         string                                `json:"type" validate:"required,announcement_type"`
	Category     string                                `json:"category" validate:"required,announcement_category"`
	IsActive     bool                                  `json:"is_active"`
	StartDate    string                                `json:"start_date" validate:"required,iso_date"`
	EndDate      string                                `json:"end_date" validate:"omitempty,iso_date"`
	TargetRooms  []string                              `json:"target_rooms"`
	Priority     string                                `json:"priority" validate:"required,announcement_priority"`
	LinkURL      string                                `json:"link_url"`
	LinkText     string                                `json:"link_text"`
	Icon         string                                `json:"icon"`
}

// UpdateAnnouncementRequest describes the partial update payload. Absent
// fields leave the stored record untouched.
type UpdateAnnouncementRequest struct {
	Title        *string                               `json:"title"`
	Content      *string                               `json:"content"`
	Translations *map[string]models.TranslationEntry   `json:"translations"`
	Type         *string                               `json:"type" validate:"omitempty,announcement_type"`
	Category     *string                               `json:"category" validate:"omitempty,announcement_category"`
	IsActive     *bool                                 `json:"is_active"`
	StartDate    *string                               `json:"start_date" validate:"omitempty,iso_date"`
	EndDate      *string                               `json:"end_date" validate:"omitempty,iso_date"`
	TargetRooms  *[]string                             `json:"target_rooms"`
	Priority     *string                               `json:"priority" validate:"omitempty,announcement_priority"`
	LinkURL      *string                               `json:"link_url"`
	LinkText     *string                               `json:"link_text"`
	Icon         *string                               `json:"icon"`
}

// ActorMeta identifies who performed an admin action for the audit trail.
type ActorMeta struct {
	UserID    string
	IP        string
	UserAgent string
}

// List returns the full collection for the admin dashboard.
func (s *AnnouncementService) List(ctx context.Context) []models.Announcement {
	return s.store.All()
}

// Get returns a single announcement.
func (s *AnnouncementService) Get(ctx context.Context, id string) (*models.Announcement, error) {
	a, ok := s.store.Get(id)
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "announcement not found")
	}
	return &a, nil
}

// Active returns the currently displayable announcements, optionally
// scoped to a room or category.
func (s *AnnouncementService) Active(ctx context.Context, roomID string, category string) []models.Announcement {
	if roomID != "" {
		return s.store.ByRoom(roomID)
	}
	if category != "" {
		return s.store.ByCategory(models.AnnouncementCategory(category))
	}
	return s.store.Active()
}

// Create registers a new announcement. Dates are validated as YYYY-MM-DD
// at this boundary so the read path can keep its lexicographic compare.
func (s *AnnouncementService) Create(ctx context.Context, req CreateAnnouncementRequest, actor ActorMeta) (*models.Announcement, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid announcement payload")
	}

	a := models.Announcement{
		ID:           uuid.NewString(),
		Title:        req.Title,
		Content:      req.Content,
		Translations: req.Translations,
		Type:         models.AnnouncementType(req.Type),
		Category:     models.AnnouncementCategory(req.Category),
		IsActive:     req.IsActive,
		StartDate:    req.StartDate,
		EndDate:      req.EndDate,
		TargetRooms:  req.TargetRooms,
		Priority:     models.AnnouncementPriority(strings.ToUpper(req.Priority)),
		LinkURL:      req.LinkURL,
		LinkText:     req.LinkText,
		Icon:         req.Icon,
		CreatedAt:    time.Now().UTC(),
		CreatedBy:    actor.UserID,
	}

	s.store.Add(ctx, a)
	s.writeAudit(ctx, models.AuditActionAnnouncementCreate, a.ID, actor, a)
	return &a, nil
}

// Update applies a partial update. Unknown ids are a silent no-op in the
// store but reported as not found here so the dashboard can react.
func (s *AnnouncementService) Update(ctx context.Context, id string, req UpdateAnnouncementRequest, actor ActorMeta) (*models.Announcement, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid announcement payload")
	}
	if _, ok := s.store.Get(id); !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "announcement not found")
	}

	patch := models.AnnouncementPatch{
		Title:        req.Title,
		Content:      req.Content,
		Translations: req.Translations,
		IsActive:     req.IsActive,
		StartDate:    req.StartDate,
		EndDate:      req.EndDate,
		TargetRooms:  req.TargetRooms,
		LinkURL:      req.LinkURL,
		LinkText:     req.LinkText,
		Icon:         req.Icon,
	}
	if req.Type != nil {
		typed := models.AnnouncementType(*req.Type)
		patch.Type = &typed
	}
	if req.Category != nil {
		category := models.AnnouncementCategory(*req.Category)
		patch.Category = &category
	}
	if req.Priority != nil {
		priority := models.AnnouncementPriority(strings.ToUpper(*req.Priority))
		patch.Priority = &priority
	}

	s.store.Update(ctx, id, patch)
	updated, _ := s.store.Get(id)
	s.writeAudit(ctx, models.AuditActionAnnouncementUpdate, id, actor, patch)
	return &updated, nil
}

// Delete removes the announcement. Missing ids are tolerated.
func (s *AnnouncementService) Delete(ctx context.Context, id string, actor ActorMeta) {
	s.store.Remove(ctx, id)
	s.writeAudit(ctx, models.AuditActionAnnouncementDelete, id, actor, nil)
}

// Toggle flips the active flag. Missing ids are tolerated.
func (s *AnnouncementService) Toggle(ctx context.Context, id string, actor ActorMeta) {
	s.store.ToggleActive(ctx, id)
	s.writeAudit(ctx, models.AuditActionAnnouncementToggle, id, actor, nil)
}

// writeAudit records the mutation best-effort; a failed audit write never
// fails the admin action.
func (s *AnnouncementService) writeAudit(ctx context.Context, action, resourceID string, actor ActorMeta, detail interface{}) {
	if s.audit == nil {
		return
	}
	var payload []byte
	if detail != nil {
		payload, _ = json.Marshal(detail)
	}
	log := &models.AuditLog{
		Action:     action,
		Resource:   "announcement",
		ResourceID: &resourceID,
		Detail:     payload,
		IPAddress:  actor.IP,
		UserAgent:  actor.UserAgent,
	}
	if actor.UserID != "" {
		log.UserID = &actor.UserID
	}
	if err := s.audit.Create(ctx, log); err != nil {
		s.logger.Warn("failed to record audit log",
			zap.String("action", action), zap.Error(err))
	}
}
