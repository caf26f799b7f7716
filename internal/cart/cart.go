// Package cart implements the access-request cart: an ordered set of pending
// requests keyed by dataset ID, plus an open/closed display flag. All
// transitions are pure functions over State; the Store wraps them for use as
// the single process-wide owner of cart state.
package cart

import (
	"time"

	"github.com/datafoundry/bazaar/internal/model"
)

// State is the full cart state. Items keep insertion order; the cart holds
// at most one item per dataset ID. State values are treated as immutable;
// every transition returns a new value.
type State struct {
	Items  []model.CartItem
	IsOpen bool
}

// NewState returns an empty, closed cart.
func NewState() State {
	return State{}
}

// ItemUpdate carries the fields an Update transition may change. Nil fields
// are left untouched.
type ItemUpdate struct {
	RequestType   *model.RequestType
	Priority      *model.RequestPriority
	Justification *string
}

// Add inserts an item, stamping AddedAt with now. If an item for the same
// dataset already exists it is replaced in place (same position, fresh
// timestamp) rather than duplicated.
func Add(s State, item model.CartItem, now time.Time) State {
	item.AddedAt = now

	items := make([]model.CartItem, len(s.Items))
	copy(items, s.Items)

	for i := range items {
		if items[i].Dataset.ID == item.Dataset.ID {
			items[i] = item
			return State{Items: items, IsOpen: s.IsOpen}
		}
	}

	return State{Items: append(items, item), IsOpen: s.IsOpen}
}

// Remove drops the item for the given dataset ID. Removing an absent ID is
// a no-op, not an error.
func Remove(s State, datasetID string) State {
	items := make([]model.CartItem, 0, len(s.Items))
	for _, item := range s.Items {
		if item.Dataset.ID != datasetID {
			items = append(items, item)
		}
	}
	return State{Items: items, IsOpen: s.IsOpen}
}

// Update merges the given fields into the item for the dataset ID, if
// present. Updating an absent ID is a no-op.
func Update(s State, datasetID string, update ItemUpdate) State {
	items := make([]model.CartItem, len(s.Items))
	copy(items, s.Items)

	for i := range items {
		if items[i].Dataset.ID != datasetID {
			continue
		}
		if update.RequestType != nil {
			items[i].RequestType = *update.RequestType
		}
		if update.Priority != nil {
			items[i].Priority = *update.Priority
		}
		if update.Justification != nil {
			items[i].Justification = *update.Justification
		}
		break
	}

	return State{Items: items, IsOpen: s.IsOpen}
}

// Clear empties the item list, leaving the open flag alone.
func Clear(s State) State {
	return State{IsOpen: s.IsOpen}
}

// Toggle flips the open flag.
func Toggle(s State) State {
	return State{Items: s.Items, IsOpen: !s.IsOpen}
}

// Open sets the open flag.
func Open(s State) State {
	return State{Items: s.Items, IsOpen: true}
}

// Close clears the open flag.
func Close(s State) State {
	return State{Items: s.Items, IsOpen: false}
}

// Contains reports whether an item for the dataset ID exists.
func Contains(s State, datasetID string) bool {
	for _, item := range s.Items {
		if item.Dataset.ID == datasetID {
			return true
		}
	}
	return false
}
