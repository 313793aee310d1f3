package store

import "github.com/otelqr/guest-services-api/internal/models"

// SnapshotVersion is the current persisted schema version. Version 1
// snapshots predate per-announcement translations.
const SnapshotVersion = 2

// Snapshot is the wholesale persisted form of the announcement collection.
type Snapshot struct {
	Version       int                   `json:"version"`
	Announcements []models.Announcement `json:"announcements"`
}

// Migrate brings a loaded snapshot up to the current version. For
// pre-translation snapshots it backfills Translations from the seed list
// when a stored record shares an id with a seed record and has no
// translations of its own; everything else is left untouched. Running it
// on an already-current snapshot is a no-op, so it is idempotent.
func Migrate(snap Snapshot, seeds []models.Announcement) Snapshot {
	if snap.Version >= SnapshotVersion {
		return snap
	}

	seedByID := make(map[string]models.Announcement, len(seeds))
	for _, s := range seeds {
		seedByID[s.ID] = s
	}

	migrated := make([]models.Announcement, len(snap.Announcements))
	for i, a := range snap.Announcements {
		if len(a.Translations) == 0 {
			if s, ok := seedByID[a.ID]; ok && len(s.Translations) > 0 {
				a.Translations = s.Translations
			}
		}
		migrated[i] = a
	}

	return Snapshot{Version: SnapshotVersion, Announcements: migrated}
}
