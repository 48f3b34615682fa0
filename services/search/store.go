// File: services/search/store.go
package search

import (
	"context"
	"sync"
	"time"

	"roamify/models"

	"go.uber.org/zap"
)

type sessionEntry struct {
	mu     sync.Mutex
	sess   *models.SearchSession
	index  map[string]int // dedupe key -> position in Results
	cancel context.CancelFunc
}

// Store is the injectable registry of live and completed search sessions.
// Mutation methods are reserved for the background task that owns a session;
// everything else reads snapshots. A periodic sweep reaps sessions idle past
// the TTL regardless of status and cancels their background task.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*sessionEntry
	ttl      time.Duration
	logger   *zap.Logger

	stopOnce sync.Once
	stopCh   chan struct{}
}

// NewStore creates a session registry. sweepEvery of 0 disables the sweep
// goroutine (tests drive SweepOnce directly).
func NewStore(ttl, sweepEvery time.Duration, logger *zap.Logger) *Store {
	s := &Store{
		sessions: make(map[string]*sessionEntry),
		ttl:      ttl,
		logger:   logger,
		stopCh:   make(chan struct{}),
	}
	if sweepEvery > 0 {
		go s.sweepLoop(sweepEvery)
	}
	return s
}

// Create registers a new processing session and takes ownership of the
// background task's cancel handle.
func (s *Store) Create(id string, query models.TravelQuery, total int, cancel context.CancelFunc) {
	now := time.Now()
	entry := &sessionEntry{
		sess: &models.SearchSession{
			SessionID:     id,
			Query:         query,
			Status:        models.StatusProcessing,
			Progress:      models.Progress{Total: total},
			Results:       []models.CityRecommendation{},
			StartedAt:     now,
			LastUpdatedAt: now,
		},
		index:  make(map[string]int),
		cancel: cancel,
	}
	s.mu.Lock()
	s.sessions[id] = entry
	s.mu.Unlock()
}

func (s *Store) entry(id string) (*sessionEntry, bool) {
	s.mu.RLock()
	e, ok := s.sessions[id]
	s.mu.RUnlock()
	return e, ok
}

// Snapshot returns a client-facing copy of a session. It never blocks the
// owning writer for longer than the copy.
func (s *Store) Snapshot(id string) (models.SearchSnapshot, bool) {
	e, ok := s.entry(id)
	if !ok {
		return models.SearchSnapshot{}, false
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	results := make([]models.CityRecommendation, len(e.sess.Results))
	copy(results, e.sess.Results)
	return models.SearchSnapshot{
		SessionID:    e.sess.SessionID,
		Status:       e.sess.Status,
		Progress:     e.sess.Progress,
		Percentage:   e.sess.Progress.Percentage(),
		Results:      results,
		TotalResults: len(results),
	}, true
}

// AppendResult publishes one priced candidate into the session. A result with
// an already-seen dedupe key replaces the earlier entry in place
// (last-write-wins) instead of appending, so a slow oracle call resolving
// after a fallback can upgrade it.
func (s *Store) AppendResult(id string, rec models.CityRecommendation) {
	e, ok := s.entry(id)
	if !ok {
		return
	}
	key := rec.City.DedupeKey()
	e.mu.Lock()
	defer e.mu.Unlock()
	if pos, seen := e.index[key]; seen {
		e.sess.Results[pos] = rec
	} else {
		e.index[key] = len(e.sess.Results)
		e.sess.Results = append(e.sess.Results, rec)
		if e.sess.Progress.Processed < e.sess.Progress.Total {
			e.sess.Progress.Processed++
		}
	}
	e.sess.LastUpdatedAt = time.Now()
}

// MarkAttempt counts one candidate as finished processing, result or not.
func (s *Store) MarkAttempt(id string) {
	e, ok := s.entry(id)
	if !ok {
		return
	}
	e.mu.Lock()
	if e.sess.Progress.Attempts < e.sess.Progress.Total {
		e.sess.Progress.Attempts++
	}
	e.sess.LastUpdatedAt = time.Now()
	e.mu.Unlock()
}

// SetStatus transitions the session. Terminal statuses never revert to
// processing.
func (s *Store) SetStatus(id, status string) {
	e, ok := s.entry(id)
	if !ok {
		return
	}
	e.mu.Lock()
	if e.sess.Status == models.StatusProcessing {
		e.sess.Status = status
	}
	e.sess.LastUpdatedAt = time.Now()
	e.mu.Unlock()
}

// Len reports how many sessions are registered.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// Stop shuts the sweep down and cancels every owned task.
func (s *Store) Stop() {
	s.stopOnce.Do(func() { close(s.stopCh) })
	s.mu.Lock()
	for _, e := range s.sessions {
		if e.cancel != nil {
			e.cancel()
		}
	}
	s.mu.Unlock()
}

func (s *Store) sweepLoop(every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-s.stopCh:
			return
		case <-ticker.C:
			s.SweepOnce(time.Now())
		}
	}
}

// SweepOnce reaps sessions whose last update is older than the TTL,
// terminal or not, cancelling their background task first.
func (s *Store) SweepOnce(now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	reaped := 0
	for id, e := range s.sessions {
		e.mu.Lock()
		idle := now.Sub(e.sess.LastUpdatedAt) > s.ttl
		e.mu.Unlock()
		if !idle {
			continue
		}
		if e.cancel != nil {
			e.cancel()
		}
		delete(s.sessions, id)
		reaped++
	}
	if reaped > 0 {
		s.logger.Debug("reaped expired search sessions", zap.Int("count", reaped))
	}
	return reaped
}
