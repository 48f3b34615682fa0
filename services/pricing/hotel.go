// File: services/pricing/hotel.go
package pricing

import (
	"math"

	"roamify/models"
)

// CostOfLivingTier buckets a destination by its baseline lodging price.
type CostOfLivingTier string

const (
	CostLow      CostOfLivingTier = "low"
	CostMedium   CostOfLivingTier = "medium"
	CostHigh     CostOfLivingTier = "high"
	CostVeryHigh CostOfLivingTier = "very_high"
)

// CostOfLivingFor derives the tier from the oracle's mid-tier (p50) nightly
// hotel price. This is deliberately the sole signal; daily-cost data does not
// feed in.
func CostOfLivingFor(midNightly float64) CostOfLivingTier {
	switch {
	case midNightly < 60:
		return CostLow
	case midNightly < 120:
		return CostMedium
	case midNightly < 220:
		return CostHigh
	default:
		return CostVeryHigh
	}
}

type bounds struct{ floor, ceil float64 }

// Hotel style multipliers per cost-of-living tier, applied to the style's own
// percentile price. Cheap destinations see deeper budget discounts and steeper
// luxury premiums than expensive ones, where the full range is already priced
// in.
var hotelStyleMultiplier = map[string]map[CostOfLivingTier]float64{
	models.StyleBudget: {CostLow: 0.55, CostMedium: 0.65, CostHigh: 0.75, CostVeryHigh: 0.85},
	models.StyleMid:    {CostLow: 1.0, CostMedium: 1.0, CostHigh: 1.0, CostVeryHigh: 1.0},
	models.StyleLuxury: {CostLow: 2.30, CostMedium: 1.90, CostHigh: 1.60, CostVeryHigh: 1.40},
}

var hotelBounds = map[string]map[CostOfLivingTier]bounds{
	models.StyleBudget: {
		CostLow: {8, 40}, CostMedium: {15, 70}, CostHigh: {30, 120}, CostVeryHigh: {50, 180},
	},
	models.StyleMid: {
		CostLow: {15, 90}, CostMedium: {30, 160}, CostHigh: {60, 280}, CostVeryHigh: {90, 420},
	},
	models.StyleLuxury: {
		CostLow: {40, 260}, CostMedium: {80, 420}, CostHigh: {140, 650}, CostVeryHigh: {200, 900},
	},
}

// Daily living cost is adjusted independently of hotel cost.
var dailyStyleMultiplier = map[string]map[CostOfLivingTier]float64{
	models.StyleBudget: {CostLow: 0.50, CostMedium: 0.60, CostHigh: 0.70, CostVeryHigh: 0.80},
	models.StyleMid:    {CostLow: 1.0, CostMedium: 1.0, CostHigh: 1.0, CostVeryHigh: 1.0},
	models.StyleLuxury: {CostLow: 1.80, CostMedium: 1.65, CostHigh: 1.50, CostVeryHigh: 1.40},
}

var dailyBounds = map[string]map[CostOfLivingTier]bounds{
	models.StyleBudget: {
		CostLow: {10, 45}, CostMedium: {18, 70}, CostHigh: {30, 110}, CostVeryHigh: {45, 160},
	},
	models.StyleMid: {
		CostLow: {20, 90}, CostMedium: {35, 140}, CostHigh: {55, 220}, CostVeryHigh: {80, 320},
	},
	models.StyleLuxury: {
		CostLow: {35, 180}, CostMedium: {60, 280}, CostHigh: {90, 420}, CostVeryHigh: {130, 600},
	},
}

// stylePercentile picks the oracle percentile each travel style shops at.
func stylePercentile(h models.HotelPrices, style string) float64 {
	switch style {
	case models.StyleBudget:
		return h.P25
	case models.StyleLuxury:
		return h.P75
	default:
		return h.P50
	}
}

func clampTo(v float64, b bounds) float64 {
	return math.Max(b.floor, math.Min(b.ceil, v))
}

// HotelNightly returns the style-adjusted nightly hotel price for a
// destination in the given cost-of-living tier.
func HotelNightly(h models.HotelPrices, style string, col CostOfLivingTier) float64 {
	v := stylePercentile(h, style) * hotelStyleMultiplier[style][col]
	return math.Round(clampTo(v, hotelBounds[style][col]))
}

// DailyCost returns the style-adjusted daily spend.
func DailyCost(baseDaily float64, style string, col CostOfLivingTier) float64 {
	v := baseDaily * dailyStyleMultiplier[style][col]
	return math.Round(clampTo(v, dailyBounds[style][col]))
}

// TierTotals computes the full trip cost for every travel style:
// flight + nights x (hotel + daily) per tier.
func TierTotals(flight float64, nights int, h models.HotelPrices, baseDaily float64) models.TierTotals {
	col := CostOfLivingFor(h.P50)
	total := func(style string) float64 {
		return flight + float64(nights)*(HotelNightly(h, style, col)+DailyCost(baseDaily, style, col))
	}
	return models.TierTotals{
		Budget: total(models.StyleBudget),
		Mid:    total(models.StyleMid),
		Luxury: total(models.StyleLuxury),
	}
}

// TotalForStyle picks the tier-appropriate total.
func TotalForStyle(t models.TierTotals, style string) float64 {
	switch style {
	case models.StyleBudget:
		return t.Budget
	case models.StyleLuxury:
		return t.Luxury
	default:
		return t.Mid
	}
}

// Categorize compares a total against the traveler's budget. The second return
// is false when the candidate is beyond 110% of budget and must be excluded.
func Categorize(total, budget float64) (string, bool) {
	switch {
	case total <= budget:
		return models.WithinBudget, true
	case total <= budget*1.10:
		return models.SlightlyAboveBudget, true
	default:
		return "", false
	}
}
