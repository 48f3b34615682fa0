package models

import "time"

// Search session statuses. Terminal statuses never revert to processing.
const (
	StatusProcessing = "processing"
	StatusCompleted  = "completed"
	StatusTimeout    = "timeout"
)

// Progress tracks how far a search has advanced. Processed counts candidates
// with a materialized result; Attempts counts candidates that finished
// processing whether or not they produced one. Both stay <= Total.
type Progress struct {
	Processed int `json:"processed"`
	Total     int `json:"total"`
	Attempts  int `json:"attempts"`
}

// Percentage reports completion as 0-100, by attempts over total.
func (p Progress) Percentage() int {
	if p.Total == 0 {
		return 0
	}
	pct := p.Attempts * 100 / p.Total
	if pct > 100 {
		pct = 100
	}
	return pct
}

// SearchSession is the server-side record of one progressive search. Owned and
// mutated exclusively by the background task driving it; clients only ever see
// snapshots.
type SearchSession struct {
	SessionID     string               `json:"sessionId"`
	Query         TravelQuery          `json:"query"`
	Status        string               `json:"status"`
	Progress      Progress             `json:"progress"`
	Results       []CityRecommendation `json:"results"`
	StartedAt     time.Time            `json:"startedAt"`
	LastUpdatedAt time.Time            `json:"lastUpdatedAt"`
}

// SearchSnapshot is the client-facing view of a session at one poll.
type SearchSnapshot struct {
	SessionID    string               `json:"sessionId"`
	Status       string               `json:"status"`
	Progress     Progress             `json:"progress"`
	Percentage   int                  `json:"percentage"`
	Results      []CityRecommendation `json:"results"`
	TotalResults int                  `json:"totalResults"`
}
