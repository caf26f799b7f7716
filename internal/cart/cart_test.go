package cart

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/datafoundry/bazaar/internal/model"
)

func item(datasetID string) model.CartItem {
	return model.CartItem{
		Dataset:     model.Dataset{ID: datasetID, Name: "Dataset " + datasetID},
		RequestType: model.RequestAccess,
		Priority:    model.PriorityStandard,
	}
}

func TestAdd(t *testing.T) {
	now := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

	s := NewState()
	s = Add(s, item("ds-1"), now)
	s = Add(s, item("ds-2"), now)

	require.Len(t, s.Items, 2)
	assert.Equal(t, "ds-1", s.Items[0].Dataset.ID)
	assert.Equal(t, now, s.Items[0].AddedAt)
}

func TestAddReplacesInPlace(t *testing.T) {
	first := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	second := first.Add(time.Hour)

	s := NewState()
	s = Add(s, item("ds-1"), first)
	s = Add(s, item("ds-2"), first)

	replacement := item("ds-1")
	replacement.Priority = model.PriorityUrgent
	s = Add(s, replacement, second)

	// Same position, updated content and timestamp, no duplicate
	require.Len(t, s.Items, 2)
	assert.Equal(t, "ds-1", s.Items[0].Dataset.ID)
	assert.Equal(t, model.PriorityUrgent, s.Items[0].Priority)
	assert.Equal(t, second, s.Items[0].AddedAt)
}

func TestAddDoesNotMutateInput(t *testing.T) {
	now := time.Now()

	original := NewState()
	original = Add(original, item("ds-1"), now)

	_ = Add(original, item("ds-2"), now)
	assert.Len(t, original.Items, 1)
}

func TestRemove(t *testing.T) {
	now := time.Now()

	s := NewState()
	s = Add(s, item("ds-1"), now)
	s = Add(s, item("ds-2"), now)

	s = Remove(s, "ds-1")
	require.Len(t, s.Items, 1)
	assert.Equal(t, "ds-2", s.Items[0].Dataset.ID)

	// Absent IDs are a no-op
	s = Remove(s, "ds-99")
	assert.Len(t, s.Items, 1)
}

func TestUpdate(t *testing.T) {
	now := time.Now()

	s := NewState()
	s = Add(s, item("ds-1"), now)

	requestType := model.RequestDownload
	justification := "quarterly reporting"
	s = Update(s, "ds-1", ItemUpdate{
		RequestType:   &requestType,
		Justification: &justification,
	})

	assert.Equal(t, model.RequestDownload, s.Items[0].RequestType)
	assert.Equal(t, "quarterly reporting", s.Items[0].Justification)
	// Untouched fields stay
	assert.Equal(t, model.PriorityStandard, s.Items[0].Priority)

	unchanged := Update(s, "ds-99", ItemUpdate{RequestType: &requestType})
	assert.Equal(t, s.Items, unchanged.Items)
}

func TestOpenCloseToggleClear(t *testing.T) {
	s := NewState()
	assert.False(t, s.IsOpen)

	s = Toggle(s)
	assert.True(t, s.IsOpen)

	s = Add(s, item("ds-1"), time.Now())
	s = Clear(s)
	assert.Empty(t, s.Items)
	// Clear leaves the open flag alone
	assert.True(t, s.IsOpen)

	s = Close(s)
	assert.False(t, s.IsOpen)
	s = Open(s)
	assert.True(t, s.IsOpen)
}

func TestContains(t *testing.T) {
	s := Add(NewState(), item("ds-1"), time.Now())
	assert.True(t, Contains(s, "ds-1"))
	assert.False(t, Contains(s, "ds-2"))
}
