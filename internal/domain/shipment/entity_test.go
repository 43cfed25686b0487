package shipment

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStatus(t *testing.T) {
	for _, status := range AllStatuses() {
		parsed, err := ParseStatus(status.String())
		require.NoError(t, err)
		assert.Equal(t, status, parsed)
	}

	for _, bad := range []string{"", "shipped", "PENDING", "in transit"} {
		_, err := ParseStatus(bad)
		assert.ErrorIs(t, err, ErrInvalidStatus, "expected %q to be rejected", bad)
	}
}

func TestFormatTrackingNumber(t *testing.T) {
	assert.Equal(t, "LOGI-2024-00006", FormatTrackingNumber(2024, 6))
	assert.Equal(t, "LOGI-2026-00001", FormatTrackingNumber(2026, 1))
	assert.Equal(t, "LOGI-2024-12345", FormatTrackingNumber(2024, 12345))
}

func TestAssignedTo(t *testing.T) {
	driverID := uuid.New()

	s := &Shipment{}
	assert.False(t, s.AssignedTo(driverID))

	s.DriverID = &driverID
	assert.True(t, s.AssignedTo(driverID))
	assert.False(t, s.AssignedTo(uuid.New()))
}

func TestLastTimelineEntry(t *testing.T) {
	s := &Shipment{}
	assert.Nil(t, s.LastTimelineEntry())

	s.Timeline = []TimelineEntry{
		{Status: StatusPending, Location: "Warehouse", Timestamp: time.Now()},
		{Status: StatusInTransit, Location: "Djibouti Port", Timestamp: time.Now()},
	}

	last := s.LastTimelineEntry()
	require.NotNil(t, last)
	assert.Equal(t, StatusInTransit, last.Status)
	assert.Equal(t, "Djibouti Port", last.Location)
}
