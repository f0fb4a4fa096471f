package ledger

import (
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/sangkips/ledgerbook/pkg/apperror"
)

// PendingStore holds the one pending transaction of the running gateway.
// Writers replace the current snapshot under a lock; readers get the
// snapshot itself, which is immutable. At most one submission is in flight.
type PendingStore struct {
	mu         sync.RWMutex
	current    *Pending
	submitting bool
	now        func() time.Time
}

// NewPendingStore creates a store with an empty pending transaction. now
// defaults to time.Now.
func NewPendingStore(taxPercentage decimal.Decimal, now func() time.Time) *PendingStore {
	if now == nil {
		now = time.Now
	}
	return &PendingStore{
		current: NewPending(now(), taxPercentage),
		now:     now,
	}
}

// Snapshot returns the current pending transaction
func (s *PendingStore) Snapshot() *Pending {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Update applies fn to the current snapshot and stores the result. When fn
// fails the current snapshot is kept and returned with the error.
func (s *PendingStore) Update(fn func(*Pending) (*Pending, error)) (*Pending, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := fn(s.current)
	if err != nil {
		return s.current, err
	}
	s.current = next
	return next, nil
}

// Reset clears the items and re-dates the pending transaction
func (s *PendingStore) Reset() *Pending {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.current = s.current.Reset(s.now())
	return s.current
}

// BeginSubmit claims the current snapshot for submission. It fails with
// apperror.ErrSubmitInProgress while another submission holds the claim.
// Every successful call must be paired with EndSubmit.
func (s *PendingStore) BeginSubmit() (*Pending, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.submitting {
		return nil, apperror.ErrSubmitInProgress
	}
	s.submitting = true
	return s.current, nil
}

// EndSubmit releases the claim taken by BeginSubmit. After a successful
// submission only the submitted items leave the pending transaction, so
// edits made while the request was in flight are kept. It resets once
// nothing is left.
func (s *PendingStore) EndSubmit(submitted *Pending, succeeded bool) *Pending {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.submitting = false
	if !succeeded {
		return s.current
	}

	rest := s.current.Without(submitted)
	if rest.IsEmpty() {
		rest = rest.Reset(s.now())
	}
	s.current = rest
	return rest
}
