package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
	"voyago/internal/models/agent_models"
	"voyago/pkg/utils"
)

const (
	maxAttractions          = 8
	attractionSearchLimit   = 10
	maxDescriptionLength    = 500
	attractionUserAgent     = "VoyagoTravelPlanner/1.0 (travel planning service)"
	attractionSearchPattern = "%s tourist attractions landmarks"
)

// metaTitleTokens mark generic encyclopedia pages that are not attractions.
var metaTitleTokens = []string{"list of", "history of", "culture of"}

type AttractionServiceInterface interface {
	GetAttractions(ctx context.Context, city string) ([]agent_models.Attraction, error)
}

type AttractionService struct {
	HTTP    *http.Client
	BaseURL string
}

func NewAttractionService() AttractionServiceInterface {
	return &AttractionService{
		HTTP:    &http.Client{Timeout: 30 * time.Second},
		BaseURL: "https://en.wikipedia.org/w/api.php",
	}
}

func isMetaTitle(title string) bool {
	lower := strings.ToLower(title)
	for _, token := range metaTitleTokens {
		if strings.Contains(lower, token) {
			return true
		}
	}
	return false
}

// GetAttractions full-text searches the encyclopedic source for attraction
// pages, filters out meta pages, and fetches a short lead extract per page.
// A page whose extract fetch fails is skipped without failing the lookup;
// the lookup errors only when nothing survives.
func (s *AttractionService) GetAttractions(ctx context.Context, city string) ([]agent_models.Attraction, error) {
	titles, err := s.searchPages(ctx, city)
	if err != nil {
		return nil, err
	}
	if len(titles) == 0 {
		return nil, fmt.Errorf("%w for %s", utils.ErrNoAttractionsFound, city)
	}

	attractions := make([]agent_models.Attraction, 0, maxAttractions)
	for _, title := range titles {
		extract, err := s.fetchExtract(ctx, title)
		if err != nil {
			continue
		}

		description := "Popular attraction"
		if extract != "" {
			if idx := strings.Index(extract, "."); idx != -1 {
				description = extract[:idx+1]
			} else {
				description = extract
			}
		}
		// Truncate by characters, not bytes, so multi-byte text stays valid.
		if runes := []rune(description); len(runes) > maxDescriptionLength {
			description = string(runes[:maxDescriptionLength])
		}

		attractions = append(attractions, agent_models.Attraction{
			Name:        title,
			Description: description,
		})
		if len(attractions) >= maxAttractions {
			break
		}
	}

	if len(attractions) == 0 {
		return nil, fmt.Errorf("could not retrieve attraction details for %s: %w", city, utils.ErrNoAttractionsFound)
	}
	return attractions, nil
}

func (s *AttractionService) searchPages(ctx context.Context, city string) ([]string, error) {
	q := url.Values{}
	q.Set("action", "query")
	q.Set("format", "json")
	q.Set("list", "search")
	q.Set("srsearch", fmt.Sprintf(attractionSearchPattern, city))
	q.Set("srlimit", fmt.Sprintf("%d", attractionSearchLimit))

	var payload struct {
		Query struct {
			Search []struct {
				Title string `json:"title"`
			} `json:"search"`
		} `json:"query"`
	}
	if err := s.getJSON(ctx, q, &payload); err != nil {
		return nil, err
	}

	titles := make([]string, 0, len(payload.Query.Search))
	for _, result := range payload.Query.Search {
		if isMetaTitle(result.Title) {
			continue
		}
		titles = append(titles, result.Title)
	}
	return titles, nil
}

func (s *AttractionService) fetchExtract(ctx context.Context, title string) (string, error) {
	q := url.Values{}
	q.Set("action", "query")
	q.Set("format", "json")
	q.Set("prop", "extracts")
	q.Set("exintro", "true")
	q.Set("explaintext", "true")
	q.Set("titles", title)

	var payload struct {
		Query struct {
			Pages map[string]struct {
				Extract string `json:"extract"`
			} `json:"pages"`
		} `json:"query"`
	}
	if err := s.getJSON(ctx, q, &payload); err != nil {
		return "", err
	}

	for _, page := range payload.Query.Pages {
		return page.Extract, nil
	}
	return "", fmt.Errorf("no page returned for %q", title)
}

func (s *AttractionService) getJSON(ctx context.Context, q url.Values, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.BaseURL+"?"+q.Encode(), nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", attractionUserAgent)

	resp, err := s.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("attraction http error: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		return fmt.Errorf("attraction bad status: %s", resp.Status)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("attraction decode: %w", err)
	}
	return nil
}
