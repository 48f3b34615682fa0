package models

// Source tags where a cost figure came from.
type Source string

const (
	SourceOracle   Source = "oracle"
	SourceFallback Source = "fallback"
)

// Confidence grades how reliable a cost figure is.
type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

// Budget categories for a priced candidate. Candidates beyond 110% of budget
// are excluded from results entirely rather than categorized.
const (
	WithinBudget        = "within_budget"
	SlightlyAboveBudget = "slightly_above_budget"
)

// HotelPrices holds the oracle's nightly price percentiles for a destination.
type HotelPrices struct {
	P25 float64 `json:"p25"`
	P35 float64 `json:"p35"`
	P50 float64 `json:"p50"`
	P75 float64 `json:"p75"`
}

// TierTotals is the full trip cost per travel style.
type TierTotals struct {
	Budget float64 `json:"budget"`
	Mid    float64 `json:"mid"`
	Luxury float64 `json:"luxury"`
}

// CostEstimate is the priced outcome for one candidate. Computed once per
// candidate per session and immutable afterward.
type CostEstimate struct {
	FlightCost       float64    `json:"flightCost"`
	FlightSource     Source     `json:"flightSource"`
	FlightConfidence Confidence `json:"flightConfidence"`

	Hotel           HotelPrices `json:"hotel"`
	HotelNightly    float64     `json:"hotelNightly"` // style-adjusted nightly price
	HotelSource     Source      `json:"hotelSource"`
	HotelConfidence Confidence  `json:"hotelConfidence"`

	DailyCost       float64    `json:"dailyCost"` // style-adjusted daily spend
	DailySource     Source     `json:"dailySource"`
	DailyConfidence Confidence `json:"dailyConfidence"`

	Totals         TierTotals `json:"totals"`
	Total          float64    `json:"total"` // total for the requested style
	BudgetCategory string     `json:"budgetCategory"`
}

// CityRecommendation pairs a candidate with its estimate, as published into a
// session's result list.
type CityRecommendation struct {
	City     CityCandidate `json:"city"`
	Estimate CostEstimate  `json:"estimate"`
}
