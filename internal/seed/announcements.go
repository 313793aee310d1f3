// Package seed holds the compiled-in announcement list used to bootstrap
// an empty store and to backfill translations during snapshot migration.
// Changing it requires a new deployment.
package seed

import (
	"time"

	"github.com/otelqr/guest-services-api/internal/models"
)

// Announcements is the built-in announcement set.
func Announcements() []models.Announcement {
	created := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)

	return []models.Announcement{
		{
			ID:      "seed-welcome",
			Title:   "Hoş Geldiniz",
			Content: "Otelimize hoş geldiniz. QR menümüzden tüm hizmetlerimize ulaşabilirsiniz.",
			Translations: map[string]models.TranslationEntry{
				"en": {Title: "Welcome", Content: "Welcome to our hotel. You can reach all our services from the QR menu."},
				"de": {Title: "Willkommen", Content: "Willkommen in unserem Hotel. Über das QR-Menü erreichen Sie alle unsere Leistungen."},
				"ru": {Title: "Добро пожаловать", Content: "Добро пожаловать в наш отель. Все услуги доступны через QR-меню."},
			},
			Type:      models.AnnouncementTypeInfo,
			Category:  models.AnnouncementCategoryHotel,
			IsActive:  true,
			StartDate: "2024-05-01",
			Priority:  models.AnnouncementPriorityMedium,
			Icon:      "hand-wave",
			CreatedAt: created,
			CreatedBy: "system",
		},
		{
			ID:      "seed-pool-maintenance",
			Title:   "Havuz Bakımı",
			Content: "Açık havuzumuz bakım nedeniyle 10:00-14:00 arası kapalı olacaktır.",
			Translations: map[string]models.TranslationEntry{
				"en": {Title: "Pool Maintenance", Content: "The outdoor pool will be closed between 10:00 and 14:00 for maintenance."},
				"de": {Title: "Poolwartung", Content: "Der Außenpool ist wegen Wartung zwischen 10:00 und 14:00 Uhr geschlossen."},
			},
			Type:      models.AnnouncementTypeMaintenance,
			Category:  models.AnnouncementCategoryHotel,
			IsActive:  true,
			StartDate: "2024-05-01",
			Priority:  models.AnnouncementPriorityHigh,
			Icon:      "wrench",
			CreatedAt: created,
			CreatedBy: "system",
		},
		{
			ID:      "seed-breakfast-promo",
			Title:   "Günün Menüsü",
			Content: "Bugüne özel kahvaltı tabağında %20 indirim. Detaylar menüde.",
			Translations: map[string]models.TranslationEntry{
				"en": {Title: "Menu of the Day", Content: "20% off today's breakfast plate. Details in the menu.", LinkText: "See the menu"},
			},
			Type:      models.AnnouncementTypePromotion,
			Category:  models.AnnouncementCategoryMenu,
			IsActive:  true,
			StartDate: "2024-05-01",
			Priority:  models.AnnouncementPriorityMedium,
			LinkURL:   "/menu",
			LinkText:  "Menüye göz atın",
			Icon:      "coffee",
			CreatedAt: created,
			CreatedBy: "system",
		},
	}
}
