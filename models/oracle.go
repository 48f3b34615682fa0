package models

// DailyQuote is the oracle's daily living-cost breakdown for one traveler.
type DailyQuote struct {
	Food      float64 `json:"food"`
	Transport float64 `json:"transport"`
	Misc      float64 `json:"misc"`
}

// Total returns the combined daily spend.
func (d DailyQuote) Total() float64 {
	return d.Food + d.Transport + d.Misc
}

// CityCostData is the oracle-sourced cost payload for one destination. This is
// the value cached between sessions; fallback-derived figures are never stored
// in this form.
type CityCostData struct {
	Hotel      HotelPrices `json:"hotel"`
	Daily      DailyQuote  `json:"daily"`
	Confidence Confidence  `json:"confidence"`
}
