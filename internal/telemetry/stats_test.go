package telemetry

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryRepository(t *testing.T) {
	repo := NewMemoryRepository()

	require.NoError(t, repo.RecordEvent(EventCalcSpecific, EventMetadata{"monster": "gargoyles"}))
	require.NoError(t, repo.RecordEvent(EventCalcExpected, EventMetadata{"master": "nieve"}))
	require.NoError(t, repo.RecordEvent(EventCalcRefused, nil))

	t.Run("returns all events since", func(t *testing.T) {
		events, err := repo.GetEvents(time.Now().Add(-time.Minute), nil)
		require.NoError(t, err)
		assert.Len(t, events, 3)
	})

	t.Run("filters by type", func(t *testing.T) {
		events, err := repo.GetEvents(time.Now().Add(-time.Minute), []EventType{EventCalcRefused})
		require.NoError(t, err)
		require.Len(t, events, 1)
		assert.Equal(t, EventCalcRefused, events[0].Type)
	})

	t.Run("excludes events before the cutoff", func(t *testing.T) {
		events, err := repo.GetEvents(time.Now().Add(time.Minute), nil)
		require.NoError(t, err)
		assert.Empty(t, events)
	})

	t.Run("clear resets", func(t *testing.T) {
		require.NoError(t, repo.Clear())
		events, err := repo.GetEvents(time.Time{}, nil)
		require.NoError(t, err)
		assert.Empty(t, events)
	})
}

func TestCalculateStats(t *testing.T) {
	repo := NewMemoryRepository()
	require.NoError(t, repo.RecordEvent(EventCalcExpected, EventMetadata{
		"master": "nieve", "gp_hr": 800000.0, "duration_ms": 12.0,
	}))
	require.NoError(t, repo.RecordEvent(EventCalcExpected, EventMetadata{
		"master": "duradel", "gp_hr": 1200000.0, "duration_ms": 8.0,
	}))
	require.NoError(t, repo.RecordEvent(EventCalcRefused, EventMetadata{"master": "duradel"}))
	require.NoError(t, repo.RecordEvent(EventCalcFailed, nil))
	require.NoError(t, repo.RecordEvent(EventPriceLookup, EventMetadata{"item_id": 526}))
	require.NoError(t, repo.RecordEvent(EventOverrideUpdated, EventMetadata{"user": "u1"}))

	since := time.Now().Add(-time.Hour)
	events, err := repo.GetEvents(since, nil)
	require.NoError(t, err)

	stats, err := CalculateStats(events, since)
	require.NoError(t, err)

	assert.Equal(t, 2, stats.Calculations)
	assert.Equal(t, 1, stats.Refusals)
	assert.Equal(t, 1, stats.Failures)
	assert.Equal(t, 1, stats.PriceLookups)
	assert.Equal(t, 1, stats.OverrideUpdates)
	assert.Equal(t, 1, stats.CalcsByMaster["nieve"])
	assert.Equal(t, 1, stats.CalcsByMaster["duradel"])
	assert.InDelta(t, 10.0, stats.AvgDurationMS, 1e-9)
	assert.InDelta(t, 1000000.0, stats.AvgGPPerHour, 1e-9)
}
