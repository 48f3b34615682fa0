// File: services/oracle/parse.go
package oracle

import (
	"encoding/json"
	"fmt"
	"strings"
)

// extractJSON pulls the first JSON object out of free-form model output. The
// model is asked for bare JSON but routinely wraps it in prose or markdown
// fences; anything without a parseable object is a malformed response.
func extractJSON(text string) ([]byte, error) {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end <= start {
		return nil, fmt.Errorf("no JSON object in oracle response")
	}
	candidate := []byte(text[start : end+1])
	if !json.Valid(candidate) {
		return nil, fmt.Errorf("oracle response is not valid JSON")
	}
	return candidate, nil
}

type hotelPayload struct {
	P25        float64 `json:"p25"`
	P35        float64 `json:"p35"`
	P50        float64 `json:"p50"`
	P75        float64 `json:"p75"`
	Confidence string  `json:"confidence"`
}

type dailyPayload struct {
	Food      float64 `json:"food"`
	Transport float64 `json:"transport"`
	Misc      float64 `json:"misc"`
}

func parseHotel(text string) (hotelPayload, error) {
	raw, err := extractJSON(text)
	if err != nil {
		return hotelPayload{}, err
	}
	var p hotelPayload
	if err := json.Unmarshal(raw, &p); err != nil {
		return hotelPayload{}, fmt.Errorf("decode hotel payload: %w", err)
	}
	// Missing or zero prices are a failure, never 0-cost data.
	if p.P25 <= 0 || p.P50 <= 0 || p.P75 <= 0 {
		return hotelPayload{}, fmt.Errorf("hotel payload missing required percentiles")
	}
	if p.P25 > p.P50 || p.P50 > p.P75 {
		return hotelPayload{}, fmt.Errorf("hotel percentiles out of order")
	}
	if p.P35 <= 0 {
		p.P35 = p.P25 + 0.4*(p.P50-p.P25)
	}
	return p, nil
}

func parseDaily(text string) (dailyPayload, error) {
	raw, err := extractJSON(text)
	if err != nil {
		return dailyPayload{}, err
	}
	var p dailyPayload
	if err := json.Unmarshal(raw, &p); err != nil {
		return dailyPayload{}, fmt.Errorf("decode daily payload: %w", err)
	}
	if p.Food <= 0 || p.Transport < 0 || p.Misc < 0 {
		return dailyPayload{}, fmt.Errorf("daily payload missing required fields")
	}
	return p, nil
}
