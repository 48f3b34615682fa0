package search

import (
	"testing"
	"time"

	"roamify/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestStore(ttl time.Duration) *Store {
	return NewStore(ttl, 0, zap.NewNop())
}

func rec(code, name, cc string, total float64) models.CityRecommendation {
	return models.CityRecommendation{
		City:     models.CityCandidate{Code: code, Name: name, CountryCode: cc},
		Estimate: models.CostEstimate{Total: total},
	}
}

func TestStoreSnapshotLifecycle(t *testing.T) {
	s := newTestStore(time.Minute)
	defer s.Stop()

	s.Create("s1", models.TravelQuery{OriginCode: "JFK"}, 3, nil)

	snap, ok := s.Snapshot("s1")
	require.True(t, ok)
	assert.Equal(t, models.StatusProcessing, snap.Status)
	assert.Equal(t, 3, snap.Progress.Total)
	assert.Empty(t, snap.Results)
	assert.Equal(t, 0, snap.Percentage)

	_, ok = s.Snapshot("missing")
	assert.False(t, ok)
}

func TestStoreDedupeLastWriteWins(t *testing.T) {
	s := newTestStore(time.Minute)
	defer s.Stop()
	s.Create("s1", models.TravelQuery{}, 5, nil)

	s.AppendResult("s1", rec("LIS", "Lisbon", "PT", 900))
	s.AppendResult("s1", rec("PRG", "Prague", "CZ", 700))
	// Same city again, repriced: replaces in place, keeps its position.
	s.AppendResult("s1", rec("LIS", "Lisbon", "PT", 850))

	snap, _ := s.Snapshot("s1")
	require.Len(t, snap.Results, 2)
	assert.Equal(t, "LIS", snap.Results[0].City.Code)
	assert.Equal(t, 850.0, snap.Results[0].Estimate.Total, "later write replaced the earlier one")
	assert.Equal(t, 2, snap.Progress.Processed, "a replacement is not new progress")
}

func TestStoreDedupeKeyIgnoresCaseAndSpacing(t *testing.T) {
	s := newTestStore(time.Minute)
	defer s.Stop()
	s.Create("s1", models.TravelQuery{}, 5, nil)

	s.AppendResult("s1", rec("LIS", "Lisbon", "PT", 900))
	s.AppendResult("s1", rec("lis", "  LISBON ", "pt", 850))

	snap, _ := s.Snapshot("s1")
	assert.Len(t, snap.Results, 1)
}

func TestStoreProgressCounters(t *testing.T) {
	s := newTestStore(time.Minute)
	defer s.Stop()
	s.Create("s1", models.TravelQuery{}, 2, nil)

	s.MarkAttempt("s1")
	s.MarkAttempt("s1")
	s.MarkAttempt("s1") // over-counting is clamped at total

	snap, _ := s.Snapshot("s1")
	assert.Equal(t, 2, snap.Progress.Attempts)
	assert.Equal(t, 100, snap.Percentage)
}

func TestStoreTerminalStatusDoesNotRevert(t *testing.T) {
	s := newTestStore(time.Minute)
	defer s.Stop()
	s.Create("s1", models.TravelQuery{}, 1, nil)

	s.SetStatus("s1", models.StatusTimeout)
	s.SetStatus("s1", models.StatusCompleted)

	snap, _ := s.Snapshot("s1")
	assert.Equal(t, models.StatusTimeout, snap.Status, "first terminal status sticks")
}

func TestStoreSweepReapsIdleSessions(t *testing.T) {
	s := newTestStore(50 * time.Millisecond)
	defer s.Stop()

	cancelled := false
	s.Create("old", models.TravelQuery{}, 1, func() { cancelled = true })
	s.SetStatus("old", models.StatusCompleted)
	s.Create("fresh", models.TravelQuery{}, 1, nil)

	// Only "old" is past the TTL at this instant.
	reaped := s.SweepOnce(time.Now().Add(40 * time.Millisecond))
	assert.Equal(t, 0, reaped, "nothing idle long enough yet")

	time.Sleep(60 * time.Millisecond)
	s.MarkAttempt("fresh") // keeps it warm

	reaped = s.SweepOnce(time.Now())
	assert.Equal(t, 1, reaped)
	assert.True(t, cancelled, "reaping cancels the owned task")

	_, ok := s.Snapshot("old")
	assert.False(t, ok)
	_, ok = s.Snapshot("fresh")
	assert.True(t, ok)
	assert.Equal(t, 1, s.Len())
}

func TestStoreSnapshotIsACopy(t *testing.T) {
	s := newTestStore(time.Minute)
	defer s.Stop()
	s.Create("s1", models.TravelQuery{}, 2, nil)
	s.AppendResult("s1", rec("LIS", "Lisbon", "PT", 900))

	snap, _ := s.Snapshot("s1")
	snap.Results[0].Estimate.Total = -1

	again, _ := s.Snapshot("s1")
	assert.Equal(t, 900.0, again.Results[0].Estimate.Total,
		"mutating a snapshot must not touch the session")
}

func TestStoreIgnoresUnknownSessionMutations(t *testing.T) {
	s := newTestStore(time.Minute)
	defer s.Stop()

	// None of these may panic or create phantom sessions.
	s.AppendResult("ghost", rec("LIS", "Lisbon", "PT", 1))
	s.MarkAttempt("ghost")
	s.SetStatus("ghost", models.StatusCompleted)
	assert.Equal(t, 0, s.Len())
}
