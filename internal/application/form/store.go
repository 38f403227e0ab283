package form

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sangkips/kwitansi-api/pkg/apperror"
)

// Store keeps the open forms of every user. Forms idle longer than the TTL
// are dropped by Sweep.
type Store struct {
	mu     sync.RWMutex
	drafts map[uuid.UUID]*draft
	ttl    time.Duration
	now    func() time.Time
	logger *zap.Logger
}

type draft struct {
	form     *Form
	owner    uuid.UUID
	lastSeen time.Time
}

// NewStore creates an empty store
func NewStore(ttl time.Duration, logger *zap.Logger) *Store {
	return &Store{
		drafts: make(map[uuid.UUID]*draft),
		ttl:    ttl,
		now:    time.Now,
		logger: logger,
	}
}

// Put registers f as owned by owner
func (s *Store) Put(owner uuid.UUID, f *Form) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.drafts[f.ID()] = &draft{form: f, owner: owner, lastSeen: s.now()}
}

// Get returns the form id of owner. Forms of other users are reported as
// not found.
func (s *Store) Get(owner, id uuid.UUID) (*Form, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	d, ok := s.drafts[id]
	if !ok || d.owner != owner {
		return nil, apperror.NewNotFoundError("Kwitansi form")
	}
	d.lastSeen = s.now()
	return d.form, nil
}

// Remove forgets the form id of owner
func (s *Store) Remove(owner, id uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if d, ok := s.drafts[id]; ok && d.owner == owner {
		delete(s.drafts, id)
	}
}

// Len returns the number of open forms
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.drafts)
}

// Sweep drops forms idle longer than the TTL and returns how many were
// dropped. Forms with a save in flight are kept.
func (s *Store) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := s.now().Add(-s.ttl)
	removed := 0
	for id, d := range s.drafts {
		if !d.lastSeen.Before(cutoff) {
			continue
		}
		d.form.mu.Lock()
		saving := d.form.saving
		d.form.mu.Unlock()
		if saving {
			continue
		}
		if d.form.HasUnsavedChanges() {
			s.logger.Warn("Dropping idle kwitansi form with unsaved changes",
				zap.String("form_id", id.String()),
				zap.String("owner", d.owner.String()))
		}
		delete(s.drafts, id)
		removed++
	}
	return removed
}

// Run sweeps every interval until ctx is done
func (s *Store) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.Sweep(); n > 0 {
				s.logger.Info("Swept idle kwitansi forms", zap.Int("count", n))
			}
		}
	}
}

// Stats returns current statistics about the store
func (s *Store) Stats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return map[string]interface{}{
		"open_forms": len(s.drafts),
		"ttl_ms":     s.ttl.Milliseconds(),
	}
}
