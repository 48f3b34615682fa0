// File: services/oracle/interface.go
package oracle

import (
	"context"

	"roamify/models"
)

// CostOracle is the external pricing service the orchestrator consults for
// lodging and daily-spend estimates. All calls must go through the rate
// limiter; implementations only translate requests and responses.
type CostOracle interface {
	// EstimateHotel returns nightly hotel price percentiles for a stay.
	EstimateHotel(ctx context.Context, city, country string, nights, month int) (models.HotelPrices, models.Confidence, error)
	// EstimateDaily returns a daily living-cost breakdown.
	EstimateDaily(ctx context.Context, city, country string, month int) (models.DailyQuote, error)
}
