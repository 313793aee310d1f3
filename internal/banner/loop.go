// Package banner decides which announcement a viewer sees right now. Each
// viewer session owns a Loop: a periodic refresh re-reads the store and
// re-applies the session's filters, and a rotation timer cycles through
// the filtered list while it holds more than one entry.
package banner

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/otelqr/guest-services-api/internal/models"
)

// Source supplies the room-scoped or global active announcement list.
type Source interface {
	Active() []models.Announcement
	ByRoom(roomID string) []models.Announcement
}

// Resolver translates source-language text for display.
type Resolver interface {
	Translate(ctx context.Context, text, target string) string
}

// Config fixes a loop's identity and timing.
type Config struct {
	RoomID           string
	Language         string
	MenuContext      bool
	RefreshInterval  time.Duration
	RotationInterval time.Duration
}

// View is the rendered form of the announcement currently on display.
type View struct {
	ID       string                      `json:"id"`
	Title    string                      `json:"title"`
	Content  string                      `json:"content"`
	Type     models.AnnouncementType     `json:"type"`
	Category models.AnnouncementCategory `json:"category"`
	Priority models.AnnouncementPriority `json:"priority"`
	LinkURL  string                      `json:"link_url,omitempty"`
	LinkText string                      `json:"link_text,omitempty"`
	Icon     string                      `json:"icon,omitempty"`
	Date     string                      `json:"date"`
	Position int                         `json:"position"`
	Total    int                         `json:"total"`
}

// Loop is the per-session presentation state machine.
type Loop struct {
	source   Source
	resolver Resolver
	cfg      Config
	logger   *zap.Logger

	mu        sync.Mutex
	language  string
	dismissed map[string]struct{}
	current   []models.Announcement
	index     int

	refreshStop chan struct{}
	rotateStop  chan struct{}
	started     bool
}

// NewLoop builds a stopped loop. Start launches its timers.
func NewLoop(source Source, resolver Resolver, cfg Config, logger *zap.Logger) *Loop {
	if cfg.RefreshInterval <= 0 {
		cfg.RefreshInterval = 30 * time.Second
	}
	if cfg.RotationInterval <= 0 {
		cfg.RotationInterval = 4 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loop{
		source:    source,
		resolver:  resolver,
		cfg:       cfg,
		logger:    logger,
		language:  cfg.Language,
		dismissed: make(map[string]struct{}),
	}
}

// Start performs an initial refresh and launches the periodic one. The
// rotation timer is managed by Refresh based on the filtered list size.
func (l *Loop) Start() {
	l.mu.Lock()
	if l.started {
		l.mu.Unlock()
		return
	}
	l.started = true
	l.refreshStop = make(chan struct{})
	l.mu.Unlock()

	l.Refresh()

	go func() {
		ticker := time.NewTicker(l.cfg.RefreshInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				l.Refresh()
			case <-l.refreshStop:
				return
			}
		}
	}()
}

// Stop cancels both timers.
func (l *Loop) Stop() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.started {
		return
	}
	l.started = false
	close(l.refreshStop)
	l.stopRotationLocked()
}

// Refresh recomputes the filtered list. When the list's identity changes
// the rotation index resets to zero and the rotation timer is started or
// stopped to match the new size.
func (l *Loop) Refresh() {
	var scoped []models.Announcement
	if l.cfg.RoomID != "" {
		scoped = l.source.ByRoom(l.cfg.RoomID)
	} else {
		scoped = l.source.Active()
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	filtered := make([]models.Announcement, 0, len(scoped))
	for _, a := range scoped {
		if _, gone := l.dismissed[a.ID]; gone {
			continue
		}
		if l.cfg.MenuContext && a.Category == models.AnnouncementCategoryMenu {
			continue
		}
		filtered = append(filtered, a)
	}

	if !sameIdentity(l.current, filtered) {
		l.index = 0
	}
	l.current = filtered

	if l.started {
		l.syncRotationLocked()
	}
}

// Advance moves the rotation index forward by one, wrapping at the list
// length.
func (l *Loop) Advance() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.current) > 1 {
		l.index = (l.index + 1) % len(l.current)
	}
}

// Dismiss hides the announcement for the rest of this session. Repeat
// dismissals of the same id are no-ops.
func (l *Loop) Dismiss(id string) {
	l.mu.Lock()
	l.dismissed[id] = struct{}{}
	l.mu.Unlock()
	l.Refresh()
}

// SetLanguage switches the display language and forces a refresh so the
// next snapshot renders in it.
func (l *Loop) SetLanguage(language string) {
	l.mu.Lock()
	changed := l.language != language
	l.language = language
	l.mu.Unlock()
	if changed {
		l.Refresh()
	}
}

// Current renders the announcement under the rotation index, resolving
// pre-authored translations first and routing untranslated fields through
// the pipeline. The second return is false when nothing is displayable.
func (l *Loop) Current(ctx context.Context) (View, bool) {
	l.mu.Lock()
	if len(l.current) == 0 {
		l.mu.Unlock()
		return View{}, false
	}
	if l.index >= len(l.current) {
		l.index = 0
	}
	a := l.current[l.index]
	position := l.index
	total := len(l.current)
	language := l.language
	l.mu.Unlock()

	view := View{
		ID:       a.ID,
		Type:     a.Type,
		Category: a.Category,
		Priority: a.Priority,
		LinkURL:  a.LinkURL,
		Icon:     a.Icon,
		Date:     formatDate(a.CreatedAt, models.LocaleFor(language)),
		Position: position,
		Total:    total,
	}

	// Field-by-field: an authored translation wins, anything it leaves
	// blank routes the Turkish original through the pipeline.
	entry := a.Translations[language]

	view.Title = entry.Title
	if view.Title == "" {
		view.Title = l.resolve(ctx, a.Title, language)
	}
	view.Content = entry.Content
	if view.Content == "" {
		view.Content = l.resolve(ctx, a.Content, language)
	}
	view.LinkText = entry.LinkText
	if view.LinkText == "" && a.LinkText != "" {
		view.LinkText = l.resolve(ctx, a.LinkText, language)
	}
	return view, true
}

// RotationActive reports whether the rotation timer is running.
func (l *Loop) RotationActive() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.rotateStop != nil
}

func (l *Loop) resolve(ctx context.Context, text, language string) string {
	if l.resolver == nil {
		return text
	}
	return l.resolver.Translate(ctx, text, language)
}

// syncRotationLocked starts the rotation timer when more than one entry
// is displayable and stops it otherwise. Callers hold l.mu.
func (l *Loop) syncRotationLocked() {
	if len(l.current) > 1 {
		if l.rotateStop == nil {
			l.rotateStop = make(chan struct{})
			go l.rotate(l.rotateStop)
		}
		return
	}
	l.stopRotationLocked()
}

func (l *Loop) stopRotationLocked() {
	if l.rotateStop != nil {
		close(l.rotateStop)
		l.rotateStop = nil
	}
}

func (l *Loop) rotate(stop chan struct{}) {
	ticker := time.NewTicker(l.cfg.RotationInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			l.Advance()
		case <-stop:
			return
		}
	}
}

func sameIdentity(a, b []models.Announcement) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].ID != b[i].ID {
			return false
		}
	}
	return true
}
