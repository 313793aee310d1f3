// Package store owns the authoritative announcement collection. The
// collection lives in memory and is written out wholesale through an
// injected persister at each mutation boundary; derived queries are pure
// reads over the in-memory list.
package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/otelqr/guest-services-api/internal/models"
)

// SnapshotPersister loads and saves the versioned announcement snapshot.
type SnapshotPersister interface {
	Load(ctx context.Context) (*Snapshot, error)
	Save(ctx context.Context, snap Snapshot) error
}

// Store holds the announcement collection.
type Store struct {
	mu        sync.RWMutex
	items     []models.Announcement
	persister SnapshotPersister
	seeds     []models.Announcement
	logger    *zap.Logger
	now       func() time.Time
}

// Option customises a Store.
type Option func(*Store)

// WithClock overrides the time source, used by tests to pin "today".
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// New constructs an empty store. Call Load to hydrate it.
func New(persister SnapshotPersister, seeds []models.Announcement, logger *zap.Logger, opts ...Option) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Store{persister: persister, seeds: seeds, logger: logger, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load hydrates the store from the persisted snapshot, migrating older
// schema versions forward. A missing or unreadable snapshot falls back to
// the seed list; load failures never propagate.
func (s *Store) Load(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.persister == nil {
		s.items = cloneAll(s.seeds)
		return
	}

	snap, err := s.persister.Load(ctx)
	if err != nil || snap == nil {
		if err != nil {
			s.logger.Warn("announcement snapshot unreadable, seeding store", zap.Error(err))
		}
		s.items = cloneAll(s.seeds)
		s.persistLocked(ctx)
		return
	}

	migrated := Migrate(*snap, s.seeds)
	s.items = migrated.Announcements
	if migrated.Version != snap.Version {
		s.logger.Info("announcement snapshot migrated",
			zap.Int("from", snap.Version), zap.Int("to", migrated.Version))
		s.persistLocked(ctx)
	}
}

// Add appends an announcement. Ids are not checked for uniqueness; the
// admin surface generates uuids, so collisions only arise from deliberate
// caller reuse and both rows are kept.
func (s *Store) Add(ctx context.Context, a models.Announcement) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = append(s.items, a)
	s.persistLocked(ctx)
}

// Update shallow-merges the non-nil patch fields into the matching record.
// Unknown ids are silently ignored.
func (s *Store) Update(ctx context.Context, id string, patch models.AnnouncementPatch) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.items {
		if s.items[i].ID != id {
			continue
		}
		applyPatch(&s.items[i], patch)
		s.persistLocked(ctx)
		return
	}
}

// Remove deletes the matching record. Unknown ids are silently ignored.
func (s *Store) Remove(ctx context.Context, id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.items[:0]
	removed := false
	for _, a := range s.items {
		if a.ID == id {
			removed = true
			continue
		}
		kept = append(kept, a)
	}
	s.items = kept
	if removed {
		s.persistLocked(ctx)
	}
}

// ToggleActive flips IsActive on the matching record.
func (s *Store) ToggleActive(ctx context.Context, id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.items {
		if s.items[i].ID != id {
			continue
		}
		s.items[i].IsActive = !s.items[i].IsActive
		s.persistLocked(ctx)
		return
	}
}

// Get returns a copy of the first record with the given id.
func (s *Store) Get(id string) (models.Announcement, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, a := range s.items {
		if a.ID == id {
			return a, true
		}
	}
	return models.Announcement{}, false
}

// All returns a copy of the full collection in insertion order.
func (s *Store) All() []models.Announcement {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneAll(s.items)
}

// Active returns the currently displayable announcements sorted by
// priority, highest first. The sort is stable so equal priorities keep
// their insertion order.
func (s *Store) Active() []models.Announcement {
	s.mu.RLock()
	defer s.mu.RUnlock()

	today := s.now().Format("2006-01-02")
	active := make([]models.Announcement, 0, len(s.items))
	for _, a := range s.items {
		if a.DisplayableOn(today) {
			active = append(active, a)
		}
	}
	sort.SliceStable(active, func(i, j int) bool {
		return active[i].Priority.Rank() > active[j].Priority.Rank()
	})
	return active
}

// ByRoom filters Active down to announcements targeting the room.
func (s *Store) ByRoom(roomID string) []models.Announcement {
	active := s.Active()
	filtered := active[:0]
	for _, a := range active {
		if a.TargetsRoom(roomID) {
			filtered = append(filtered, a)
		}
	}
	return filtered
}

// ByCategory filters Active by exact category match.
func (s *Store) ByCategory(category models.AnnouncementCategory) []models.Announcement {
	active := s.Active()
	filtered := active[:0]
	for _, a := range active {
		if a.Category == category {
			filtered = append(filtered, a)
		}
	}
	return filtered
}

// persistLocked writes the snapshot out. Persistence failures are logged
// and absorbed; the in-memory state stays authoritative. Callers must
// hold the write lock.
func (s *Store) persistLocked(ctx context.Context) {
	if s.persister == nil {
		return
	}
	snap := Snapshot{Version: SnapshotVersion, Announcements: cloneAll(s.items)}
	if err := s.persister.Save(ctx, snap); err != nil {
		s.logger.Warn("failed to persist announcement snapshot", zap.Error(err))
	}
}

func applyPatch(a *models.Announcement, patch models.AnnouncementPatch) {
	if patch.Title != nil {
		a.Title = *patch.Title
	}
	if patch.Content != nil {
		a.Content = *patch.Content
	}
	if patch.Translations != nil {
		a.Translations = *patch.Translations
	}
	if patch.Type != nil {
		a.Type = *patch.Type
	}
	if patch.Category != nil {
		a.Category = *patch.Category
	}
	if patch.IsActive != nil {
		a.IsActive = *patch.IsActive
	}
	if patch.StartDate != nil {
		a.StartDate = *patch.StartDate
	}
	if patch.EndDate != nil {
		a.EndDate = *patch.EndDate
	}
	if patch.TargetRooms != nil {
		a.TargetRooms = *patch.TargetRooms
	}
	if patch.Priority != nil {
		a.Priority = *patch.Priority
	}
	if patch.LinkURL != nil {
		a.LinkURL = *patch.LinkURL
	}
	if patch.LinkText != nil {
		a.LinkText = *patch.LinkText
	}
	if patch.Icon != nil {
		a.Icon = *patch.Icon
	}
}

func cloneAll(items []models.Announcement) []models.Announcement {
	cloned := make([]models.Announcement, len(items))
	copy(cloned, items)
	return cloned
}
