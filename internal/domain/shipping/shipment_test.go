package shipping

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestShipment(t *testing.T) *Shipment {
	s, err := NewShipment(uuid.New(), "ORD-2026-00001")
	require.NoError(t, err)
	return s
}

// ============================================
// Status Tests
// ============================================

func TestShipmentStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		from     Status
		to       Status
		canTrans bool
	}{
		// Forward movement
		{StatusPending, StatusProcessing, true},
		{StatusProcessing, StatusReadyToShip, true},
		{StatusReadyToShip, StatusPickedUp, true},
		{StatusPending, StatusInTransit, true}, // carriers skip hops
		{StatusProcessing, StatusPickedUp, true},
		{StatusPickedUp, StatusInTransit, true},
		{StatusInTransit, StatusOutForDel, true},
		{StatusOutForDel, StatusDelivered, true},
		{StatusPending, StatusDelivered, true},
		// Backwards rejected
		{StatusProcessing, StatusPending, false},
		{StatusPickedUp, StatusReadyToShip, false},
		{StatusInTransit, StatusPickedUp, false},
		{StatusOutForDel, StatusInTransit, false},
		// Exits always reachable from non-terminal
		{StatusPending, StatusCancelled, true},
		{StatusInTransit, StatusReturned, true},
		// Terminal states never change
		{StatusDelivered, StatusReturned, false},
		{StatusReturned, StatusInTransit, false},
		{StatusCancelled, StatusPickedUp, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"_to_"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.canTrans, tt.from.CanTransitionTo(tt.to))
		})
	}
}

// ============================================
// Shipment Tests
// ============================================

func TestNewShipment(t *testing.T) {
	s := createTestShipment(t)
	assert.Equal(t, StatusPending, s.Status)
	assert.Empty(t, s.AWB)
	assert.False(t, s.HasLabel())

	events := s.GetDomainEvents()
	require.Len(t, events, 1)
	assert.Equal(t, "shipment.created", events[0].EventType())
}

func TestShipment_AssignAWB(t *testing.T) {
	s := createTestShipment(t)

	err := s.AssignAWB("AWB123456789", "Delhivery")
	require.NoError(t, err)
	assert.Equal(t, "AWB123456789", s.AWB)
	assert.Equal(t, "Delhivery", s.Courier)

	// Same AWB again is a no-op, a different one is rejected
	assert.NoError(t, s.AssignAWB("AWB123456789", "Delhivery"))
	assert.Error(t, s.AssignAWB("AWB000000000", "BlueDart"))
	assert.Equal(t, "AWB123456789", s.AWB)
}

func TestShipment_LabelIdempotent(t *testing.T) {
	s := createTestShipment(t)

	require.NoError(t, s.SetLabelURL("https://cdn.example.com/labels/a.pdf"))
	// Second generation keeps the first URL
	require.NoError(t, s.SetLabelURL("https://cdn.example.com/labels/b.pdf"))
	assert.Equal(t, "https://cdn.example.com/labels/a.pdf", s.LabelURL)
	assert.True(t, s.HasLabel())
}

func TestShipment_TransitionTo(t *testing.T) {
	s := createTestShipment(t)

	require.NoError(t, s.TransitionTo(StatusInTransit))
	assert.Equal(t, StatusInTransit, s.Status)

	// Same status is a no-op, regression is an error
	assert.NoError(t, s.TransitionTo(StatusInTransit))
	assert.Error(t, s.TransitionTo(StatusPickedUp))

	require.NoError(t, s.TransitionTo(StatusDelivered))
	assert.Error(t, s.TransitionTo(StatusReturned))
}

func TestShipment_ReplaceTrackingHistory(t *testing.T) {
	s := createTestShipment(t)
	now := time.Now()

	s.ReplaceTrackingHistory([]TrackingEvent{
		{Activity: "Picked up", Location: "Bengaluru Hub", OccurredAt: now.Add(-48 * time.Hour)},
		{Activity: "In transit", Location: "Nagpur Hub", OccurredAt: now.Add(-24 * time.Hour)},
	}, nil)
	require.Len(t, s.TrackingHistory, 2)

	// A sync replaces the whole timeline, never appends
	eta := now.Add(24 * time.Hour)
	s.ReplaceTrackingHistory([]TrackingEvent{
		{Activity: "Out for delivery", Location: "Delhi South", OccurredAt: now},
	}, &eta)

	require.Len(t, s.TrackingHistory, 1)
	assert.Equal(t, "Out for delivery", s.TrackingHistory[0].Activity)
	assert.Equal(t, s.ID, s.TrackingHistory[0].ShipmentID)
	require.NotNil(t, s.EstimatedArrival)
	assert.NotNil(t, s.LastSyncedAt)
}
