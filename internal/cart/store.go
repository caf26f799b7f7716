package cart

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/datafoundry/bazaar/internal/model"
)

// Submitter hands finished access requests to a backend.
type Submitter interface {
	SubmitAccessRequests(ctx context.Context, requests []model.AccessRequest) error
}

// Store is the single process-wide owner of cart state. It lives only for
// the life of the process; nothing is persisted. All mutation goes through
// the action methods, which apply the pure transitions under a lock.
type Store struct {
	now   func() time.Time
	state State
	mu    sync.Mutex
}

// NewStore creates an empty cart store.
func NewStore() *Store {
	return &Store{
		state: NewState(),
		now:   time.Now,
	}
}

// Add validates and inserts an item, replacing any existing item for the
// same dataset.
func (s *Store) Add(item model.CartItem) error {
	if err := item.Validate(); err != nil {
		return fmt.Errorf("invalid cart item: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = Add(s.state, item, s.now())
	return nil
}

// Remove drops the item for the dataset ID, if present.
func (s *Store) Remove(datasetID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = Remove(s.state, datasetID)
}

// Update merges fields into the item for the dataset ID, if present.
func (s *Store) Update(datasetID string, update ItemUpdate) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = Update(s.state, datasetID, update)
}

// Clear empties the cart.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = Clear(s.state)
}

// Toggle flips the open flag.
func (s *Store) Toggle() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = Toggle(s.state)
}

// Open sets the open flag.
func (s *Store) Open() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = Open(s.state)
}

// Close clears the open flag.
func (s *Store) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = Close(s.state)
}

// Contains reports whether an item for the dataset ID exists.
func (s *Store) Contains(datasetID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return Contains(s.state, datasetID)
}

// Count returns the number of items in the cart.
func (s *Store) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.state.Items)
}

// Snapshot returns a copy of the current state.
func (s *Store) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := make([]model.CartItem, len(s.state.Items))
	copy(items, s.state.Items)
	return State{Items: items, IsOpen: s.state.IsOpen}
}

// Submit stamps every item as an access request, hands the batch to the
// submitter, then clears and closes the cart. On failure the cart is left
// untouched so the user can retry.
func (s *Store) Submit(ctx context.Context, submitter Submitter) ([]model.AccessRequest, error) {
	snapshot := s.Snapshot()
	if len(snapshot.Items) == 0 {
		return nil, nil
	}

	now := s.now()
	requests := make([]model.AccessRequest, len(snapshot.Items))
	for i, item := range snapshot.Items {
		requests[i] = model.AccessRequest{
			ID:            uuid.NewString(),
			DatasetID:     item.Dataset.ID,
			DatasetName:   item.Dataset.Name,
			RequestType:   item.RequestType,
			Priority:      item.Priority,
			Justification: item.Justification,
			SubmittedAt:   now,
		}
	}

	if err := submitter.SubmitAccessRequests(ctx, requests); err != nil {
		return nil, fmt.Errorf("failed to submit access requests: %w", err)
	}

	s.mu.Lock()
	s.state = Close(Clear(s.state))
	s.mu.Unlock()

	slog.Info("Submitted access requests", "count", len(requests))

	return requests, nil
}
