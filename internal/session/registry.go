// Package session keeps one workout controller per open browser tab and
// exposes the tab's events as HTTP routes.
package session

import (
	"sync"
	"time"

	"github.com/nazir19980501/mapty/internal/app"
	"github.com/nazir19980501/mapty/internal/browser"
	"github.com/nazir19980501/mapty/internal/metrics"
	"github.com/nazir19980501/mapty/internal/workout"

	"github.com/rs/zerolog/log"
)

// Session is one page's controller plus the remote collaborators it drives.
// Events are applied one at a time under mu.
type Session struct {
	ID     string
	Opened time.Time

	mu   sync.Mutex
	seen time.Time
	ctrl *app.Controller
	mapw *browser.Map
	geo  *browser.Geolocation
}

var now = time.Now

func (s *Session) do(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seen = now()
	fn()
}

func (s *Session) lastSeen() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.seen
}

type Registry struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	store    *workout.Store
	pub      browser.Publisher
}

// NewRegistry shares store between all sessions and sends their UI commands
// through pub.
func NewRegistry(store *workout.Store, pub browser.Publisher) *Registry {
	return &Registry{
		sessions: map[string]*Session{},
		store:    store,
		pub:      pub,
	}
}

// Open returns the session for id, creating it when new.
func (r *Registry) Open(id string) (*Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.sessions[id]; ok {
		return s, false
	}

	ch := browser.NewChannel(r.pub, id)
	opened := now()
	s := &Session{
		ID:     id,
		Opened: opened,
		seen:   opened,
		mapw:   browser.NewMap(ch),
		geo:    browser.NewGeolocation(ch),
	}
	s.ctrl = app.New(app.Deps{
		Locator:     s.geo,
		Notifier:    browser.NewNotifier(ch),
		Store:       r.store,
		Widget:      s.mapw,
		FormSurface: browser.NewForm(ch),
		ListSurface: browser.NewList(ch),
	})
	r.sessions[id] = s
	metrics.SessionOpened()
	log.Info().Str("session", id).Msg("session opened")
	return s, true
}

func (r *Registry) Get(id string) (*Session, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[id]
	return s, ok
}

func (r *Registry) Close(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sessions[id]; !ok {
		return false
	}
	r.remove(id)
	log.Info().Str("session", id).Msg("session closed")
	return true
}

func (r *Registry) remove(id string) {
	delete(r.sessions, id)
	metrics.SessionClosed()
}

// Expire closes sessions that saw no event for idle and have no connected
// tab. Tabs that crash never send their close request, so this is what
// eventually frees them.
func (r *Registry) Expire(idle time.Duration, connected func(id string) bool) int {
	cutoff := now().Add(-idle)
	r.mu.Lock()
	defer r.mu.Unlock()
	expired := 0
	for id, s := range r.sessions {
		if !s.lastSeen().Before(cutoff) {
			continue
		}
		if connected != nil && connected(id) {
			continue
		}
		r.remove(id)
		expired++
		log.Info().Str("session", id).Dur("idle", idle).Msg("session expired")
	}
	return expired
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}
