package workout

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/nazir19980501/mapty/internal/kv"
	"github.com/nazir19980501/mapty/internal/metrics"

	"github.com/rs/zerolog/log"
)

const DefaultKey = "workouts"

// Store is the ordered workout log, written through to a kv.Store on every
// append.
type Store struct {
	kv       kv.Store
	key      string
	mu       sync.RWMutex
	workouts []Workout
}

// NewStore loads the persisted log under key. Missing or unreadable data
// leaves the store empty; that is logged, never returned.
func NewStore(ctx context.Context, backend kv.Store, key string) *Store {
	if key == "" {
		key = DefaultKey
	}
	s := &Store{kv: backend, key: key}
	s.load(ctx)
	return s
}

func (s *Store) load(ctx context.Context) {
	raw, err := s.kv.Read(ctx, s.key)
	if errors.Is(err, kv.ErrNotFound) {
		return
	}
	if err != nil {
		metrics.PersistenceError("load")
		log.Warn().Err(err).Str("key", s.key).Msg("workout log unavailable, starting empty")
		return
	}
	var loaded []Workout
	if err := json.Unmarshal(raw, &loaded); err != nil {
		metrics.PersistenceError("load")
		log.Warn().Err(err).Str("key", s.key).Msg("workout log malformed, starting empty")
		return
	}
	s.workouts = loaded
	log.Info().Int("count", len(loaded)).Str("key", s.key).Msg("workout log restored")
}

// Append adds w to the log and persists the whole log. The in-memory append
// stands even when the write fails, but a workout that cannot be encoded is
// rejected so it never blocks later writes. Writes are serialized with the
// append so the backend never sees an older log after a newer one.
func (s *Store) Append(ctx context.Context, w Workout) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	candidate := append(s.workouts[:len(s.workouts):len(s.workouts)], w)
	payload, err := json.Marshal(candidate)
	if err != nil {
		metrics.PersistenceError("encode")
		return fmt.Errorf("workout %s not stored: %w", w.ID, err)
	}
	s.workouts = candidate
	if err := s.kv.Write(ctx, s.key, payload); err != nil {
		metrics.PersistenceError("save")
		return err
	}
	return nil
}

// All returns a copy of the log in insertion order.
func (s *Store) All() []Workout {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Workout, len(s.workouts))
	copy(out, s.workouts)
	return out
}

// FindByID returns the first workout carrying id.
func (s *Store) FindByID(id string) (Workout, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, w := range s.workouts {
		if w.ID == id {
			return w, true
		}
	}
	return Workout{}, false
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.workouts)
}
