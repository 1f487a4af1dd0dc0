package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"
	"voyago/internal/models/agent_models"
	"voyago/pkg/utils"
)

type QueryParserInterface interface {
	Parse(ctx context.Context, rawQuery string, referenceDate time.Time) (agent_models.TripRequest, agent_models.StepTrace)
}

type QueryParser struct {
	extractor utils.ExtractorClientInterface
}

func NewQueryParser(extractor utils.ExtractorClientInterface) QueryParserInterface {
	return &QueryParser{extractor: extractor}
}

const extractionPromptTemplate = `Extract travel information from this query: "%s"

Return a JSON with these fields:
- origin: departure CITY NAME (not airport code)
- destination: arrival CITY NAME (not airport code)
- start_date: departure date (YYYY-MM-DD format)
- end_date: return date (YYYY-MM-DD format)

IMPORTANT: Extract full city names like "Dubai", "Istanbul", "Paris", NOT airport codes like "DXB", "IST", "CDG".

If dates are relative (like "next month"), calculate based on today's date: %s

Example output:
{"origin": "Dubai", "destination": "Istanbul", "start_date": "2024-11-10", "end_date": "2024-11-15"}

Only respond with valid JSON, no other text.`

type extractedTrip struct {
	Origin      string `json:"origin"`
	Destination string `json:"destination"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
}

// Parse turns a free-text travel request into a TripRequest. Extraction is
// best-effort: any failure falls back to a deterministic token scan plus a
// one-week window anchored on referenceDate, so parsing itself never fails.
func (p *QueryParser) Parse(ctx context.Context, rawQuery string, referenceDate time.Time) (agent_models.TripRequest, agent_models.StepTrace) {
	trip, err := p.parseWithExtractor(ctx, rawQuery, referenceDate)
	if err == nil {
		return trip, agent_models.StepTrace{
			Tool:   "parse_query",
			Input:  map[string]string{"query": rawQuery},
			Output: trip,
			Status: agent_models.StepSuccess,
		}
	}

	log.Printf("Parse error: %v", err)
	trip = p.fallbackParse(rawQuery, referenceDate)
	return trip, agent_models.StepTrace{
		Tool:   "parse_query",
		Input:  map[string]string{"query": rawQuery},
		Output: trip,
		Status: agent_models.StepFailed,
		Error:  err.Error(),
	}
}

func (p *QueryParser) parseWithExtractor(ctx context.Context, rawQuery string, referenceDate time.Time) (agent_models.TripRequest, error) {
	prompt := fmt.Sprintf(extractionPromptTemplate, rawQuery, utils.FormatISODate(referenceDate))

	content, err := p.extractor.Extract(ctx, prompt)
	if err != nil {
		return agent_models.TripRequest{}, err
	}

	raw, err := utils.ExtractJSONObject(content)
	if err != nil {
		return agent_models.TripRequest{}, err
	}

	var extracted extractedTrip
	if err := json.Unmarshal([]byte(raw), &extracted); err != nil {
		return agent_models.TripRequest{}, err
	}

	if extracted.Origin == "" || extracted.Destination == "" ||
		extracted.StartDate == "" || extracted.EndDate == "" {
		return agent_models.TripRequest{}, fmt.Errorf("%w: missing keys in extracted JSON", utils.ErrExtractionFailed)
	}

	return agent_models.TripRequest{
		RawQuery:    rawQuery,
		Origin:      extracted.Origin,
		Destination: extracted.Destination,
		StartDate:   extracted.StartDate,
		EndDate:     extracted.EndDate,
	}, nil
}

// fallbackParse scans for "from X" / "to Y" and anchors the trip at the
// reference date with a one-week window.
func (p *QueryParser) fallbackParse(rawQuery string, referenceDate time.Time) agent_models.TripRequest {
	return agent_models.TripRequest{
		RawQuery:    rawQuery,
		Origin:      extractCityToken(rawQuery, "from"),
		Destination: extractCityToken(rawQuery, "to"),
		StartDate:   utils.FormatISODate(referenceDate),
		EndDate:     utils.FormatISODate(referenceDate.AddDate(0, 0, 7)),
	}
}

// extractCityToken returns the punctuation-stripped token following the
// first occurrence of the given preposition.
func extractCityToken(text, preposition string) string {
	words := strings.Fields(text)
	for i, word := range words {
		if strings.EqualFold(word, preposition) && i+1 < len(words) {
			return strings.Trim(words[i+1], ",.!?;:")
		}
	}
	return ""
}
