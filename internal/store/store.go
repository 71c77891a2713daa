// Package store owns the authoritative in-memory copy of the remote
// collection. The four actions map one-to-one onto the remote calls and
// each resolves to a deterministic state transition: fetch replaces the
// slice wholesale, create appends, update replaces by id in place, delete
// removes by id. Actions are idempotent with respect to state shape, so a
// retried call cannot corrupt the slice; stale-overwrite races between
// concurrent updates on the same id are last-response-wins.
package store

import (
	"context"
	"fmt"
	"sync"

	"github.com/rosterhq/roster/pkg/types"
)

// FetchFailedMessage is the fixed store-level error string set when the
// initial fetch fails. It stays set until a later fetch succeeds.
const FetchFailedMessage = "failed to fetch users"

// Phase is the fetch lifecycle state.
type Phase int

// Fetch lifecycle phases. Create/update/delete do not move the phase; they
// layer on whichever fetch state currently holds.
const (
	PhaseIdle Phase = iota
	PhaseLoading
	PhaseReady
	PhaseErrored
)

// Remote is the client-side contract the store depends on. *api.Client
// satisfies it; tests substitute a fake.
type Remote interface {
	ListAll(ctx context.Context) ([]types.Record, error)
	Create(ctx context.Context, in types.NewRecordInput) (types.Record, error)
	Update(ctx context.Context, id string, in types.RecordInput) (types.Record, error)
	Delete(ctx context.Context, id string) error
}

// Store mediates between the remote client and the view. It is safe for
// concurrent use: remote calls resolve on their own goroutines while the
// view reads snapshots.
type Store struct {
	remote Remote

	mu      sync.RWMutex
	phase   Phase
	records []types.Record
	lastErr string
}

// New creates a store over the given remote. The store starts idle with an
// empty collection.
func New(remote Remote) *Store {
	return &Store{remote: remote}
}

// Records returns a snapshot copy of the collection in server order.
func (s *Store) Records() []types.Record {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]types.Record, len(s.records))
	copy(out, s.records)
	return out
}

// Phase returns the current fetch lifecycle phase.
func (s *Store) Phase() Phase {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.phase
}

// Loading reports whether a fetch is in flight.
func (s *Store) Loading() bool {
	return s.Phase() == PhaseLoading
}

// LastError returns the store-level fetch error message, or "" when none
// is set.
func (s *Store) LastError() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastErr
}

// Len returns the number of records currently held.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

// FetchAll loads the full collection, replacing the held records wholesale
// on success. On failure the previous records are retained and the fixed
// error message is set.
func (s *Store) FetchAll(ctx context.Context) error {
	s.mu.Lock()
	s.phase = PhaseLoading
	s.mu.Unlock()

	records, err := s.remote.ListAll(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.phase = PhaseErrored
		s.lastErr = FetchFailedMessage
		return fmt.Errorf("fetch all: %w", err)
	}
	s.phase = PhaseReady
	s.lastErr = ""
	s.records = records
	return nil
}

// Create dispatches a create and appends the server-returned record. The
// server-assigned id is trusted; no dedup check is made. On failure the
// collection is untouched and the error is returned to the caller.
func (s *Store) Create(ctx context.Context, in types.NewRecordInput) (types.Record, error) {
	created, err := s.remote.Create(ctx, in)
	if err != nil {
		return types.Record{}, fmt.Errorf("create record: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, created)
	return created, nil
}

// Update dispatches an update and replaces the matching record in place,
// preserving its position. A response for an id no longer held is silently
// discarded. On failure the collection is untouched.
func (s *Store) Update(ctx context.Context, id string, in types.RecordInput) (types.Record, error) {
	updated, err := s.remote.Update(ctx, id, in)
	if err != nil {
		return types.Record{}, fmt.Errorf("update record %s: %w", id, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.records {
		if s.records[i].ID == updated.ID {
			s.records[i] = updated
			break
		}
	}
	return updated, nil
}

// Delete dispatches a delete and removes the matching record. An id not
// held locally is a no-op. On failure the collection is untouched.
func (s *Store) Delete(ctx context.Context, id string) error {
	if err := s.remote.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete record %s: %w", id, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.records[:0]
	for _, r := range s.records {
		if r.ID != id {
			kept = append(kept, r)
		}
	}
	s.records = kept
	return nil
}
