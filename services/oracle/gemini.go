// File: services/oracle/gemini.go
package oracle

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"roamify/models"
	"roamify/services/ratelimit"

	genai "github.com/google/generative-ai-go/genai"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

// GeminiOracle implements CostOracle against the Gemini API.
type GeminiOracle struct {
	model *genai.GenerativeModel
}

// NewGeminiOracle builds the client. Failure is returned, not fatal; the
// caller is expected to run fallback-only pricing without an oracle.
func NewGeminiOracle(ctx context.Context, apiKey, modelName string) (*GeminiOracle, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &GeminiOracle{model: client.GenerativeModel(modelName)}, nil
}

func (g *GeminiOracle) generate(ctx context.Context, prompt string) (string, error) {
	resp, err := g.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", classify(err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("gemini returned no candidates")
	}
	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if textPart, ok := part.(genai.Text); ok {
			sb.WriteString(string(textPart))
		}
	}
	return sb.String(), nil
}

// classify marks quota and server-side errors as rate-limit signals so the
// limiter retries them; everything else propagates as-is.
func classify(err error) error {
	var gerr *googleapi.Error
	if errors.As(err, &gerr) && (gerr.Code == 429 || gerr.Code >= 500) {
		return ratelimit.MarkRateLimited(err)
	}
	return fmt.Errorf("gemini generate error: %w", err)
}

func (g *GeminiOracle) EstimateHotel(ctx context.Context, city, country string, nights, month int) (models.HotelPrices, models.Confidence, error) {
	prompt := fmt.Sprintf(`You are a travel cost database. For %s, %s, estimate nightly hotel prices in USD for a %d-night stay in %s.
Respond with ONLY a JSON object, no prose, in exactly this shape:
{"p25": <25th percentile nightly price>, "p35": <35th>, "p50": <median>, "p75": <75th>, "confidence": "high"|"medium"|"low"}`,
		city, country, nights, time.Month(month).String())

	text, err := g.generate(ctx, prompt)
	if err != nil {
		return models.HotelPrices{}, "", err
	}
	p, err := parseHotel(text)
	if err != nil {
		return models.HotelPrices{}, "", err
	}
	return models.HotelPrices{P25: p.P25, P35: p.P35, P50: p.P50, P75: p.P75}, parseConfidence(p.Confidence), nil
}

func (g *GeminiOracle) EstimateDaily(ctx context.Context, city, country string, month int) (models.DailyQuote, error) {
	prompt := fmt.Sprintf(`You are a travel cost database. For one traveler in %s, %s during %s, estimate daily costs in USD.
Respond with ONLY a JSON object, no prose, in exactly this shape:
{"food": <daily food cost>, "transport": <daily local transport cost>, "misc": <daily misc cost>}`,
		city, country, time.Month(month).String())

	text, err := g.generate(ctx, prompt)
	if err != nil {
		return models.DailyQuote{}, err
	}
	p, err := parseDaily(text)
	if err != nil {
		return models.DailyQuote{}, err
	}
	return models.DailyQuote{Food: p.Food, Transport: p.Transport, Misc: p.Misc}, nil
}

func parseConfidence(s string) models.Confidence {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "high":
		return models.ConfidenceHigh
	case "low":
		return models.ConfidenceLow
	default:
		return models.ConfidenceMedium
	}
}
