package search

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"roamify/models"
	"roamify/services/cache"
	"roamify/services/geodata"
	"roamify/services/ratelimit"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeOracle serves canned estimates and records how often each city was
// priced. fail switches it into permanent-outage mode.
type fakeOracle struct {
	mu    sync.Mutex
	calls map[string]int
	fail  bool
	delay time.Duration
}

func newFakeOracle() *fakeOracle {
	return &fakeOracle{calls: make(map[string]int)}
}

func (f *fakeOracle) EstimateHotel(ctx context.Context, city, country string, nights, month int) (models.HotelPrices, models.Confidence, error) {
	f.mu.Lock()
	f.calls[city]++
	f.mu.Unlock()
	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return models.HotelPrices{}, "", ctx.Err()
		}
	}
	if f.fail {
		return models.HotelPrices{}, "", ratelimit.MarkRateLimited(errors.New("quota exceeded"))
	}
	return models.HotelPrices{P25: 50, P35: 62, P50: 80, P75: 130}, models.ConfidenceHigh, nil
}

func (f *fakeOracle) EstimateDaily(ctx context.Context, city, country string, month int) (models.DailyQuote, error) {
	if f.fail {
		return models.DailyQuote{}, ratelimit.MarkRateLimited(errors.New("quota exceeded"))
	}
	return models.DailyQuote{Food: 30, Transport: 10, Misc: 15}, nil
}

func (f *fakeOracle) callsFor(city string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[city]
}

type orchFixture struct {
	store *Store
	cache *cache.Memory[models.CityCostData]
	orch  *Orchestrator
}

func newOrchFixture(o *fakeOracle, workers int, deadline time.Duration) *orchFixture {
	logger := zap.NewNop()
	store := NewStore(time.Minute, 0, logger)
	mem := cache.NewMemory[models.CityCostData](100, time.Minute, 0)
	limiter := ratelimit.NewLimiter(ratelimit.Options{
		MaxConcurrent:    workers,
		MinDelay:         time.Nanosecond,
		Jitter:           time.Nanosecond,
		MaxRetries:       0,
		BackoffBase:      time.Millisecond,
		BreakerThreshold: 1000,
	}, logger)
	orch := &Orchestrator{
		Store:   store,
		Cache:   mem,
		Limiter: limiter,
		Config: OrchestratorConfig{
			Workers:     workers,
			Deadline:    deadline,
			CallTimeout: 2 * time.Second,
		},
		Logger: logger,
	}
	if o != nil {
		orch.Oracle = o
	}
	return &orchFixture{store: store, cache: mem, orch: orch}
}

func testQuery() models.TravelQuery {
	q := models.TravelQuery{
		OriginCode:  "JFK",
		Budget:      1_000_000, // keep everything in the results
		Nights:      5,
		TravelMonth: 4,
		TravelStyle: models.StyleMid,
	}
	q.Normalize()
	return q
}

func testCandidates() []models.CityCandidate {
	city := func(code, name, cc string, lat, lon float64) models.CityCandidate {
		return models.CityCandidate{
			Code: code, Name: name, Country: name + "land", CountryCode: cc,
			Latitude: lat, Longitude: lon, Region: geodata.RegionEurope,
		}
	}
	return []models.CityCandidate{
		city("LIS", "Lisbon", "PT", 38.77, -9.13),
		city("PRG", "Prague", "CZ", 50.10, 14.26),
		city("BUD", "Budapest", "HU", 47.44, 19.26),
		city("KRK", "Krakow", "PL", 50.08, 19.78),
		city("ATH", "Athens", "GR", 37.94, 23.94),
	}
}

func runToCompletion(t *testing.T, f *orchFixture, cands []models.CityCandidate) models.SearchSnapshot {
	t.Helper()
	q := testQuery()
	origin, ok := geodata.Lookup(q.OriginCode)
	require.True(t, ok)

	f.store.Create("s1", q, len(cands), nil)
	f.orch.Run(context.Background(), "s1", q, origin, cands)

	snap, ok := f.store.Snapshot("s1")
	require.True(t, ok)
	return snap
}

func TestOrchestratorScoresEveryCandidateExactlyOnce(t *testing.T) {
	o := newFakeOracle()
	f := newOrchFixture(o, 4, 10*time.Second)
	defer f.store.Stop()

	cands := testCandidates()
	// A duplicate entry must be claimed once, not priced twice.
	cands = append(cands, cands[0])

	snap := runToCompletion(t, f, cands)

	assert.Equal(t, models.StatusCompleted, snap.Status)
	assert.Len(t, snap.Results, len(cands)-1)
	assert.Equal(t, len(cands)-1, snap.Progress.Attempts)
	for _, c := range testCandidates() {
		assert.Equal(t, 1, o.callsFor(c.Name), "city %s priced exactly once", c.Name)
	}
}

func TestOrchestratorCachesOracleEstimates(t *testing.T) {
	o := newFakeOracle()
	f := newOrchFixture(o, 2, 10*time.Second)
	defer f.store.Stop()

	snap := runToCompletion(t, f, testCandidates())

	require.Equal(t, models.StatusCompleted, snap.Status)
	assert.Equal(t, len(testCandidates()), f.cache.Size(context.Background()))
	for _, r := range snap.Results {
		assert.Equal(t, models.SourceOracle, r.Estimate.HotelSource)
		assert.Equal(t, models.ConfidenceHigh, r.Estimate.HotelConfidence)
		assert.Greater(t, r.Estimate.Total, 0.0)
		assert.NotEmpty(t, r.Estimate.BudgetCategory)
	}
}

func TestOrchestratorServesCacheHitsWithoutOracleCalls(t *testing.T) {
	o := newFakeOracle()
	o.fail = true // any oracle call would fail the estimate
	f := newOrchFixture(o, 2, 10*time.Second)
	defer f.store.Stop()

	q := testQuery()
	cands := testCandidates()[:1]
	seeded := models.CityCostData{
		Hotel:      models.HotelPrices{P25: 40, P35: 50, P50: 65, P75: 100},
		Daily:      models.DailyQuote{Food: 25, Transport: 8, Misc: 10},
		Confidence: models.ConfidenceHigh,
	}
	f.cache.Set(context.Background(), cache.EstimateKey(cands[0], q.Nights, q.TravelMonth), seeded, seeded.Confidence)

	snap := runToCompletion(t, f, cands)

	require.Len(t, snap.Results, 1)
	assert.Equal(t, models.SourceOracle, snap.Results[0].Estimate.HotelSource)
	assert.Equal(t, 0, o.callsFor(cands[0].Name), "cache hit bypasses the oracle entirely")
}

func TestOrchestratorFallsBackWhenOracleFails(t *testing.T) {
	o := newFakeOracle()
	o.fail = true
	f := newOrchFixture(o, 2, 10*time.Second)
	defer f.store.Stop()

	snap := runToCompletion(t, f, testCandidates())

	require.Equal(t, models.StatusCompleted, snap.Status)
	assert.Len(t, snap.Results, len(testCandidates()), "an oracle outage still yields estimates")
	for _, r := range snap.Results {
		assert.Equal(t, models.SourceFallback, r.Estimate.HotelSource)
		assert.Equal(t, models.ConfidenceLow, r.Estimate.HotelConfidence)
		assert.Greater(t, r.Estimate.Total, 0.0)
	}
	assert.Equal(t, 0, f.cache.Size(context.Background()), "fallback estimates are never cached")
}

func TestOrchestratorWithoutOracleIsFallbackOnly(t *testing.T) {
	f := newOrchFixture(nil, 2, 10*time.Second)
	defer f.store.Stop()

	snap := runToCompletion(t, f, testCandidates()[:2])

	require.Len(t, snap.Results, 2)
	for _, r := range snap.Results {
		assert.Equal(t, models.SourceFallback, r.Estimate.HotelSource)
	}
}

func TestOrchestratorStopsClaimingPastDeadline(t *testing.T) {
	o := newFakeOracle()
	f := newOrchFixture(o, 2, -time.Millisecond) // already expired
	defer f.store.Stop()

	snap := runToCompletion(t, f, testCandidates())

	assert.Equal(t, models.StatusCompleted, snap.Status, "an exhausted budget still terminates the session")
	assert.Equal(t, 0, snap.Progress.Attempts)
	assert.Empty(t, snap.Results)
}

func TestSearchServiceEndToEnd(t *testing.T) {
	o := newFakeOracle()
	o.delay = 5 * time.Millisecond
	f := newOrchFixture(o, 3, 10*time.Second)
	defer f.store.Stop()

	svc := &DefaultSearchService{
		Store:         f.store,
		Orchestrator:  f.orch,
		MaxCandidates: 8,
		Logger:        zap.NewNop(),
	}

	snap, err := svc.StartSearch(models.TravelQuery{
		OriginCode: "JFK", Budget: 1_000_000, Nights: 4, TravelMonth: 5,
		TravelStyle: models.StyleMid, Region: geodata.RegionEurope,
	})
	require.NoError(t, err)
	assert.Equal(t, models.StatusProcessing, snap.Status)
	assert.Greater(t, snap.Progress.Total, 0)

	deadline := time.Now().Add(10 * time.Second)
	for {
		require.True(t, time.Now().Before(deadline), "search did not finish in time")
		cur, ok := svc.PollSearch(snap.SessionID)
		require.True(t, ok)
		assert.LessOrEqual(t, cur.Progress.Processed, cur.Progress.Total)
		assert.LessOrEqual(t, cur.Progress.Attempts, cur.Progress.Total)
		assert.Equal(t, len(cur.Results), cur.TotalResults)
		if cur.Status != models.StatusProcessing {
			assert.Equal(t, models.StatusCompleted, cur.Status)
			assert.Equal(t, cur.Progress.Total, cur.Progress.Attempts)
			assert.NotEmpty(t, cur.Results)
			break
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestSearchServiceValidation(t *testing.T) {
	f := newOrchFixture(nil, 1, time.Second)
	defer f.store.Stop()
	svc := &DefaultSearchService{Store: f.store, Orchestrator: f.orch, MaxCandidates: 5, Logger: zap.NewNop()}

	_, err := svc.StartSearch(models.TravelQuery{OriginCode: "NOPE", Budget: 1000})
	assert.Error(t, err, "unknown origin")

	_, err = svc.StartSearch(models.TravelQuery{OriginCode: "JFK", Budget: 0})
	assert.Error(t, err, "non-positive budget")

	_, ok := svc.PollSearch("never-started")
	assert.False(t, ok)
}
