// File: services/search/orchestrator.go
package search

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"roamify/models"
	"roamify/services/cache"
	"roamify/services/oracle"
	"roamify/services/pricing"
	"roamify/services/ratelimit"

	"go.uber.org/zap"
)

// errNoOracle routes pricing straight to the fallback tables when no oracle
// client is configured.
var errNoOracle = errors.New("no cost oracle configured")

// OrchestratorConfig tunes the progressive scoring loop.
type OrchestratorConfig struct {
	Workers     int
	Deadline    time.Duration
	CallTimeout time.Duration
}

// Orchestrator drives one background scoring task per session: a fixed pool
// of workers walks the candidate list, obtains costs (cache, then rate-limited
// oracle, then deterministic fallback), prices each candidate and publishes
// results into the session as they land.
type Orchestrator struct {
	Store   *Store
	Cache   cache.Store[models.CityCostData]
	Limiter *ratelimit.Limiter
	Oracle  oracle.CostOracle // nil means fallback-only pricing
	Config  OrchestratorConfig
	Logger  *zap.Logger
}

// Run executes the scoring task for one session and blocks until it reaches a
// terminal status. Callers launch it on its own goroutine.
func (o *Orchestrator) Run(ctx context.Context, sessionID string, query models.TravelQuery, origin models.CityCandidate, cands []models.CityCandidate) {
	defer func() {
		// A panic in the orchestration itself (not a per-candidate failure)
		// must not leave the session processing forever.
		if r := recover(); r != nil {
			o.Logger.Error("search task crashed",
				zap.String("sessionID", sessionID), zap.Any("panic", r))
			o.Store.SetStatus(sessionID, models.StatusTimeout)
		}
	}()

	deadline := time.Now().Add(o.Config.Deadline)

	var cursor atomic.Int64
	var claimed sync.Map
	var wg sync.WaitGroup

	for w := 0; w < o.Config.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				// Past the deadline, stop claiming; in-flight work finishes on
				// its own soft timeout.
				if time.Now().After(deadline) || ctx.Err() != nil {
					return
				}
				idx := cursor.Add(1) - 1
				if int(idx) >= len(cands) {
					return
				}
				c := cands[idx]
				if _, dup := claimed.LoadOrStore(c.DedupeKey(), struct{}{}); dup {
					continue
				}
				o.score(ctx, deadline, sessionID, query, origin, c)
			}
		}()
	}
	wg.Wait()

	o.Store.SetStatus(sessionID, models.StatusCompleted)
	o.Logger.Info("search completed", zap.String("sessionID", sessionID))
}

// score prices one candidate and publishes it. Dependency failures never
// escape: they degrade to the fallback tables with a low-confidence tag.
func (o *Orchestrator) score(ctx context.Context, deadline time.Time, sessionID string, query models.TravelQuery, origin, c models.CityCandidate) {
	flightCost, flightConf := pricing.FlightCost(origin, c, query.TravelMonth)

	key := cache.EstimateKey(c, query.Nights, query.TravelMonth)
	costs, hit := o.Cache.Get(ctx, key)
	source := models.SourceOracle
	if !hit {
		fetched, err := o.fetchFromOracle(ctx, deadline, c, query)
		if err != nil {
			o.Logger.Debug("oracle unavailable, using fallback estimate",
				zap.String("city", c.Name), zap.Error(err))
			costs = pricing.FallbackCosts(c)
			source = models.SourceFallback
			// Fallback figures are deliberately never cached; once the oracle
			// recovers, future queries should see real data.
		} else {
			costs = fetched
			o.Cache.Set(ctx, key, costs, costs.Confidence)
		}
	}

	rec := buildRecommendation(query, c, flightCost, flightConf, costs, source)
	category, keep := pricing.Categorize(rec.Estimate.Total, query.Budget)
	o.Store.MarkAttempt(sessionID)
	if !keep {
		return
	}
	rec.Estimate.BudgetCategory = category
	o.Store.AppendResult(sessionID, rec)
}

// fetchFromOracle schedules the hotel and daily lookups through the rate
// limiter under a soft timeout bounded by the remaining wall-clock budget.
func (o *Orchestrator) fetchFromOracle(ctx context.Context, deadline time.Time, c models.CityCandidate, query models.TravelQuery) (models.CityCostData, error) {
	if o.Oracle == nil {
		return models.CityCostData{}, errNoOracle
	}

	soft := o.Config.CallTimeout
	if remaining := time.Until(deadline); remaining < soft {
		soft = remaining
	}
	if soft < time.Second {
		soft = time.Second
	}
	cctx, cancel := context.WithTimeout(ctx, soft)
	defer cancel()

	var hotel models.HotelPrices
	var conf models.Confidence
	err := o.Limiter.Do(cctx, func(callCtx context.Context) error {
		h, cf, err := o.Oracle.EstimateHotel(callCtx, c.Name, c.Country, query.Nights, query.TravelMonth)
		if err != nil {
			return err
		}
		hotel, conf = h, cf
		return nil
	})
	if err != nil {
		return models.CityCostData{}, err
	}

	var daily models.DailyQuote
	err = o.Limiter.Do(cctx, func(callCtx context.Context) error {
		d, err := o.Oracle.EstimateDaily(callCtx, c.Name, c.Country, query.TravelMonth)
		if err != nil {
			return err
		}
		daily = d
		return nil
	})
	if err != nil {
		return models.CityCostData{}, err
	}

	return models.CityCostData{Hotel: hotel, Daily: daily, Confidence: conf}, nil
}

// buildRecommendation assembles the immutable estimate for one candidate.
func buildRecommendation(query models.TravelQuery, c models.CityCandidate, flightCost float64, flightConf models.Confidence, costs models.CityCostData, source models.Source) models.CityRecommendation {
	col := pricing.CostOfLivingFor(costs.Hotel.P50)
	baseDaily := costs.Daily.Total()
	totals := pricing.TierTotals(flightCost, query.Nights, costs.Hotel, baseDaily)

	conf := costs.Confidence
	if source == models.SourceFallback {
		conf = models.ConfidenceLow
	}

	est := models.CostEstimate{
		FlightCost:       flightCost,
		FlightSource:     models.SourceFallback, // flights are always engine-priced
		FlightConfidence: flightConf,

		Hotel:           costs.Hotel,
		HotelNightly:    pricing.HotelNightly(costs.Hotel, query.TravelStyle, col),
		HotelSource:     source,
		HotelConfidence: conf,

		DailyCost:       pricing.DailyCost(baseDaily, query.TravelStyle, col),
		DailySource:     source,
		DailyConfidence: conf,

		Totals: totals,
		Total:  pricing.TotalForStyle(totals, query.TravelStyle),
	}
	return models.CityRecommendation{City: c, Estimate: est}
}
