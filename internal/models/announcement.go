package models

import "time"

// AnnouncementType drives the icon and colour shown with a banner. It has
// no effect on which announcements are selected.
type AnnouncementType string

const (
	AnnouncementTypeInfo          AnnouncementType = "info"
	AnnouncementTypeWarning       AnnouncementType = "warning"
	AnnouncementTypePromotion     AnnouncementType = "promotion"
	AnnouncementTypeMaintenance   AnnouncementType = "maintenance"
	AnnouncementTypeAdvertisement AnnouncementType = "advertisement"
)

// AnnouncementCategory is a display-context filter. The guest QR-menu
// context drops the "menu" category from the general banner because menu
// promos are rendered elsewhere.
type AnnouncementCategory string

const (
	AnnouncementCategoryGeneral   AnnouncementCategory = "general"
	AnnouncementCategoryMenu      AnnouncementCategory = "menu"
	AnnouncementCategoryHotel     AnnouncementCategory = "hotel"
	AnnouncementCategoryPromotion AnnouncementCategory = "promotion"
)

// AnnouncementPriority orders simultaneously active announcements.
type AnnouncementPriority string

const (
	AnnouncementPriorityLow    AnnouncementPriority = "LOW"
	AnnouncementPriorityMedium AnnouncementPriority = "MEDIUM"
	AnnouncementPriorityHigh   AnnouncementPriority = "HIGH"
	AnnouncementPriorityUrgent AnnouncementPriority = "URGENT"
)

// Rank maps priorities onto a total order for sorting. Unknown values
// rank below LOW.
func (p AnnouncementPriority) Rank() int {
	switch p {
	case AnnouncementPriorityUrgent:
		return 4
	case AnnouncementPriorityHigh:
		return 3
	case AnnouncementPriorityMedium:
		return 2
	case AnnouncementPriorityLow:
		return 1
	default:
		return 0
	}
}

// TranslationEntry holds the pre-authored translation of an announcement
// for one language.
type TranslationEntry struct {
	Title    string `json:"title"`
	Content  string `json:"content"`
	LinkText string `json:"link_text,omitempty"`
}

// Announcement is a timed, optionally room-targeted, optionally
// multi-language notice shown to guests. Title and Content carry the
// Turkish source text; Translations is sparse.
type Announcement struct {
	ID           string                      `json:"id"`
	Title        string                      `json:"title"`
	Content      string                      `json:"content"`
	Translations map[string]TranslationEntry `json:"translations,omitempty"`
	Type         AnnouncementType            `json:"type"`
	Category     AnnouncementCategory        `json:"category"`
	IsActive     bool                        `json:"is_active"`
	StartDate    string                      `json:"start_date"`
	EndDate      string                      `json:"end_date,omitempty"`
	TargetRooms  []string                    `json:"target_rooms,omitempty"`
	Priority     AnnouncementPriority        `json:"priority"`
	LinkURL      string                      `json:"link_url,omitempty"`
	LinkText     string                      `json:"link_text,omitempty"`
	Icon         string                      `json:"icon,omitempty"`
	CreatedAt    time.Time                   `json:"created_at"`
	CreatedBy    string                      `json:"created_by"`
}

// DisplayableOn reports whether the announcement is currently displayable
// for the given day. Dates are compared as YYYY-MM-DD strings; malformed
// dates compare lexicographically and may misclassify, which is tolerated
// on the read path (writes are validated instead).
func (a Announcement) DisplayableOn(today string) bool {
	if !a.IsActive {
		return false
	}
	if a.StartDate > today {
		return false
	}
	if a.EndDate != "" && a.EndDate < today {
		return false
	}
	return true
}

// TargetsRoom reports whether the announcement applies to the room.
// An empty target set means every room.
func (a Announcement) TargetsRoom(roomID string) bool {
	if len(a.TargetRooms) == 0 {
		return true
	}
	for _, room := range a.TargetRooms {
		if room == roomID {
			return true
		}
	}
	return false
}

// AnnouncementPatch carries the fields of a partial update. Nil fields are
// left untouched by Store.Update.
type AnnouncementPatch struct {
	Title        *string                      `json:"title,omitempty"`
	Content      *string                      `json:"content,omitempty"`
	Translations *map[string]TranslationEntry `json:"translations,omitempty"`
	Type         *AnnouncementType            `json:"type,omitempty"`
	Category     *AnnouncementCategory        `json:"category,omitempty"`
	IsActive     *bool                        `json:"is_active,omitempty"`
	StartDate    *string                      `json:"start_date,omitempty"`
	EndDate      *string                      `json:"end_date,omitempty"`
	TargetRooms  *[]string                    `json:"target_rooms,omitempty"`
	Priority     *AnnouncementPriority        `json:"priority,omitempty"`
	LinkURL      *string                      `json:"link_url,omitempty"`
	LinkText     *string                      `json:"link_text,omitempty"`
	Icon         *string                      `json:"icon,omitempty"`
}
