package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
	"voyago/internal/models/agent_models"
	mem "voyago/pkg/memcache"
	"voyago/pkg/utils"
)

// iataToCurrency picks a display currency for a route. Origin country wins,
// then destination, then USD.
var iataToCurrency = map[string]string{
	"DEL": "INR", "BOM": "INR", "BLR": "INR", "MAA": "INR", "CCU": "INR",
	"HYD": "INR", "GOI": "INR", "COK": "INR", "PNQ": "INR",
	"DXB": "AED", "AUH": "AED", "DOH": "QAR", "RUH": "SAR",
	"LHR": "GBP", "CDG": "EUR", "FRA": "EUR", "AMS": "EUR",
	"JFK": "USD", "LAX": "USD", "ORD": "USD", "SFO": "USD",
	"NRT": "JPY", "SIN": "SGD", "HKG": "HKD", "BKK": "THB",
}

var airlineNames = map[string]string{
	"6E": "IndiGo", "AI": "Air India", "SG": "SpiceJet", "UK": "Vistara",
	"EK": "Emirates", "EY": "Etihad", "QR": "Qatar Airways", "SV": "Saudia",
	"BA": "British Airways", "LH": "Lufthansa", "AF": "Air France", "KL": "KLM",
	"TK": "Turkish Airlines", "SQ": "Singapore Airlines", "CX": "Cathay Pacific",
}

const maxFlightOffers = 3

type FlightServiceInterface interface {
	Search(ctx context.Context, origin, destination, departureDate, returnDate string) ([]agent_models.FlightOffer, error)
}

type FlightService struct {
	HTTP      *http.Client
	TokenURL  string
	OffersURL string
	APIKey    string
	APISecret string
	Tokens    mem.BearerTokenStore
}

func NewFlightService(tokens mem.BearerTokenStore) FlightServiceInterface {
	return &FlightService{
		HTTP:      &http.Client{Timeout: 30 * time.Second},
		TokenURL:  "https://test.api.amadeus.com/v1/security/oauth2/token",
		OffersURL: "https://test.api.amadeus.com/v2/shopping/flight-offers",
		APIKey:    os.Getenv("AMADEUS_API_KEY"),
		APISecret: os.Getenv("AMADEUS_API_SECRET"),
		Tokens:    tokens,
	}
}

func currencyForRoute(originCode, destCode string) string {
	if currency, ok := iataToCurrency[originCode]; ok {
		return currency
	}
	if currency, ok := iataToCurrency[destCode]; ok {
		return currency
	}
	return "USD"
}

// accessToken returns a cached bearer token or exchanges credentials for a
// fresh one. The cache expires 60 seconds before the provider-reported TTL.
func (s *FlightService) accessToken(ctx context.Context) (string, error) {
	if token, ok := s.Tokens.Get(); ok {
		return token, nil
	}

	form := url.Values{}
	form.Set("grant_type", "client_credentials")
	form.Set("client_id", s.APIKey)
	form.Set("client_secret", s.APISecret)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.TokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.HTTP.Do(req)
	if err != nil {
		return "", fmt.Errorf("amadeus token http error: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		return "", fmt.Errorf("amadeus token bad status: %s", resp.Status)
	}

	var payload struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int    `json:"expires_in"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("amadeus token decode: %w", err)
	}
	if payload.AccessToken == "" {
		return "", fmt.Errorf("amadeus token response missing access_token")
	}

	ttl := time.Duration(payload.ExpiresIn-60) * time.Second
	if ttl > 0 {
		s.Tokens.Set(payload.AccessToken, ttl)
	}
	return payload.AccessToken, nil
}

type flightOffersPayload struct {
	Data []struct {
		ValidatingAirlineCodes []string `json:"validatingAirlineCodes"`
		Price                  struct {
			Total    string `json:"total"`
			Currency string `json:"currency"`
		} `json:"price"`
		Itineraries []struct {
			Duration string `json:"duration"`
			Segments []struct {
				Departure struct {
					At string `json:"at"`
				} `json:"departure"`
				Arrival struct {
					At string `json:"at"`
				} `json:"arrival"`
			} `json:"segments"`
		} `json:"itineraries"`
	} `json:"data"`
}

// Search queries the flight provider for offers on the departure date.
// Offers are deduplicated by (departure, arrival, validating carrier) and
// capped at three in provider order. Zero usable offers is an error: a plan
// without a single flight option is not worth producing.
func (s *FlightService) Search(ctx context.Context, origin, destination, departureDate, returnDate string) ([]agent_models.FlightOffer, error) {
	token, err := s.accessToken(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get flight provider access token: %w", err)
	}

	originCode := ResolveAirportCode(origin)
	destCode := ResolveAirportCode(destination)
	currency := currencyForRoute(originCode, destCode)

	q := url.Values{}
	q.Set("originLocationCode", originCode)
	q.Set("destinationLocationCode", destCode)
	q.Set("departureDate", departureDate)
	q.Set("adults", "1")
	q.Set("currencyCode", currency)
	q.Set("max", strconv.Itoa(maxFlightOffers))
	if returnDate != "" {
		q.Set("returnDate", returnDate)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.OffersURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := s.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("flight offers http error: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		return nil, fmt.Errorf("flight offers bad status: %s", resp.Status)
	}

	var payload flightOffersPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("flight offers decode: %w", err)
	}

	type flightKey struct {
		departure string
		arrival   string
		carrier   string
	}

	flights := make([]agent_models.FlightOffer, 0, maxFlightOffers)
	seen := make(map[flightKey]bool)

	for _, offer := range payload.Data {
		if len(offer.Itineraries) == 0 || len(offer.Itineraries[0].Segments) == 0 {
			continue
		}
		itinerary := offer.Itineraries[0]
		first := itinerary.Segments[0]
		last := itinerary.Segments[len(itinerary.Segments)-1]

		carrier := ""
		if len(offer.ValidatingAirlineCodes) > 0 {
			carrier = offer.ValidatingAirlineCodes[0]
		}

		key := flightKey{departure: first.Departure.At, arrival: last.Arrival.At, carrier: carrier}
		if seen[key] {
			continue
		}
		seen[key] = true

		airlineDisplay := carrier
		if carrier == "" {
			airlineDisplay = "N/A"
		} else if name, ok := airlineNames[carrier]; ok {
			airlineDisplay = name
		}

		flights = append(flights, agent_models.FlightOffer{
			Price:     fmt.Sprintf("%s %s", offer.Price.Total, offer.Price.Currency),
			Airline:   fmt.Sprintf("%s (%s)", airlineDisplay, carrier),
			Departure: first.Departure.At,
			Arrival:   last.Arrival.At,
			Duration:  itinerary.Duration,
			Stops:     len(itinerary.Segments) - 1,
		})

		if len(flights) >= maxFlightOffers {
			break
		}
	}

	if len(flights) == 0 {
		return nil, fmt.Errorf("%w for %s (%s) to %s (%s) on %s",
			utils.ErrNoFlightsFound, origin, originCode, destination, destCode, departureDate)
	}

	return flights, nil
}
