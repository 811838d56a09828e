package roster

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAssignsContiguousIDs(t *testing.T) {
	r, err := New(3, 2)
	require.NoError(t, err)
	require.Equal(t, 5, r.Len())

	for i := range 3 {
		a := r.Actor(i)
		assert.Equal(t, i, a.ID)
		assert.Equal(t, Loyalist, a.Faction)
		assert.True(t, a.IsActive())
	}
	for i := 3; i < 5; i++ {
		assert.Equal(t, Traitor, r.Actor(i).Faction)
	}
}

func TestNewRejectsNonPositiveCounts(t *testing.T) {
	tests := []struct {
		name      string
		loyalists int
		traitors  int
	}{
		{"zero loyalists", 0, 1},
		{"negative loyalists", -2, 1},
		{"zero traitors", 1, 0},
		{"negative traitors", 4, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := New(tt.loyalists, tt.traitors)
			assert.Nil(t, r)
			assert.True(t, errors.Is(err, ErrInvalidCount))
		})
	}
}

func TestMarkRemovedUpdatesViews(t *testing.T) {
	r, err := New(2, 2)
	require.NoError(t, err)

	snapshot := r.Snapshot()
	r.MarkRemoved(1)
	r.MarkRemoved(2)

	assert.Len(t, snapshot, 4, "snapshot must not change after removals")
	assert.Len(t, r.Active(), 2)
	assert.Equal(t, []Actor{{ID: 0, Faction: Loyalist}}, r.ActiveLoyalists())
	assert.Equal(t, []Actor{{ID: 3, Faction: Traitor}}, r.ActiveTraitors())
	assert.Equal(t, 1, r.CountActive(Loyalist))
	assert.Equal(t, 1, r.CountActive(Traitor))

	assert.False(t, r.IsActive(1))
	assert.False(t, r.IsActive(99))
	assert.Equal(t, Removed, r.Actor(1).Status, "removed actors stay in the roster")
}

func TestMarkRemovedTwicePanics(t *testing.T) {
	r, err := New(1, 1)
	require.NoError(t, err)

	r.MarkRemoved(0)
	assert.Panics(t, func() { r.MarkRemoved(0) })
	assert.Panics(t, func() { r.MarkRemoved(5) })
}
