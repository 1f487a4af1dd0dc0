package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"voyago/internal/models/agent_models"
	"voyago/pkg/utils"
)

type stubParser struct {
	trip agent_models.TripRequest
}

func (s *stubParser) Parse(_ context.Context, rawQuery string, _ time.Time) (agent_models.TripRequest, agent_models.StepTrace) {
	return s.trip, agent_models.StepTrace{
		Tool:   "parse_query",
		Input:  map[string]string{"query": rawQuery},
		Output: s.trip,
		Status: agent_models.StepSuccess,
	}
}

type stubFlights struct {
	offers []agent_models.FlightOffer
	err    error
	calls  int
}

func (s *stubFlights) Search(context.Context, string, string, string, string) ([]agent_models.FlightOffer, error) {
	s.calls++
	return s.offers, s.err
}

type stubWeather struct {
	forecast []agent_models.DayWeather
	err      error
	city     string
}

func (s *stubWeather) GetForecast(_ context.Context, city, _, _ string) ([]agent_models.DayWeather, error) {
	s.city = city
	return s.forecast, s.err
}

type stubAttractions struct {
	attractions []agent_models.Attraction
	err         error
	calls       int
}

func (s *stubAttractions) GetAttractions(context.Context, string) ([]agent_models.Attraction, error) {
	s.calls++
	return s.attractions, s.err
}

func newTestAgent(parser QueryParserInterface, flights FlightServiceInterface, weather WeatherServiceInterface, attractions AttractionServiceInterface) *AgentService {
	return &AgentService{
		parser:      parser,
		flights:     flights,
		weather:     weather,
		attractions: attractions,
		itinerary:   NewItineraryService(),
		now:         func() time.Time { return time.Date(2025, 11, 1, 0, 0, 0, 0, time.UTC) },
	}
}

func happyTrip() agent_models.TripRequest {
	return agent_models.TripRequest{
		Origin:      "DXB",
		Destination: "IST",
		StartDate:   "2025-11-10",
		EndDate:     "2025-11-12",
	}
}

func TestAgentRunRecordsStepsInPipelineOrder(t *testing.T) {
	agent := newTestAgent(
		&stubParser{trip: happyTrip()},
		&stubFlights{offers: []agent_models.FlightOffer{{Airline: "Emirates", Price: "500 USD"}}},
		&stubWeather{forecast: []agent_models.DayWeather{{Date: "2025-11-10", Condition: "Clear sky"}}},
		&stubAttractions{attractions: []agent_models.Attraction{{Name: "Hagia Sophia"}}},
	)

	result, err := agent.Run(context.Background(), "plan me a trip")
	require.NoError(t, err)
	require.Len(t, result.Steps, 4)

	tools := make([]string, 0, len(result.Steps))
	for _, step := range result.Steps {
		tools = append(tools, step.Tool)
		assert.Equal(t, agent_models.StepSuccess, step.Status)
	}
	assert.Equal(t, []string{"parse_query", "flight_search", "weather_forecast", "attractions"}, tools)

	assert.Len(t, result.Plan.DailyPlan, 3)
	assert.Len(t, result.Plan.Flights, 1)
}

func TestAgentRunDegradesOnFlightFailure(t *testing.T) {
	flights := &stubFlights{err: utils.ErrNoFlightsFound}
	attractions := &stubAttractions{attractions: []agent_models.Attraction{{Name: "Hagia Sophia"}}}
	agent := newTestAgent(
		&stubParser{trip: happyTrip()},
		flights,
		&stubWeather{},
		attractions,
	)

	result, err := agent.Run(context.Background(), "plan me a trip")
	require.NoError(t, err)

	flightStep := result.Steps[1]
	assert.Equal(t, "flight_search", flightStep.Tool)
	assert.Equal(t, agent_models.StepFailed, flightStep.Status)
	assert.NotEmpty(t, flightStep.Error)
	assert.Equal(t, []agent_models.FlightOffer{}, flightStep.Output)

	// Later stages still ran and the plan still assembled.
	assert.Equal(t, 1, attractions.calls)
	assert.Empty(t, result.Plan.Flights)
	assert.Len(t, result.Plan.DailyPlan, 3)
}

func TestAgentRunAllLookupsFailStillProducesPlan(t *testing.T) {
	agent := newTestAgent(
		&stubParser{trip: happyTrip()},
		&stubFlights{err: errors.New("flight provider down")},
		&stubWeather{err: utils.ErrGeocodingFailed},
		&stubAttractions{err: utils.ErrNoAttractionsFound},
	)

	result, err := agent.Run(context.Background(), "plan me a trip")
	require.NoError(t, err)
	require.Len(t, result.Steps, 4)

	for _, step := range result.Steps[1:] {
		assert.Equal(t, agent_models.StepFailed, step.Status, "step %s", step.Tool)
	}
	require.Len(t, result.Plan.DailyPlan, 3)
	for _, day := range result.Plan.DailyPlan {
		assert.Nil(t, day.Weather)
	}
}

func TestAgentRunFailsOnUnusableDates(t *testing.T) {
	trip := happyTrip()
	trip.StartDate = "next week"
	agent := newTestAgent(
		&stubParser{trip: trip},
		&stubFlights{},
		&stubWeather{},
		&stubAttractions{},
	)

	result, err := agent.Run(context.Background(), "plan me a trip")
	require.Error(t, err)
	assert.True(t, errors.Is(err, utils.ErrMalformedDate))
	assert.Empty(t, result.Plan.DailyPlan)
	assert.Len(t, result.Steps, 4)
}

func TestAgentRunResolvesDestinationCityForLookups(t *testing.T) {
	weather := &stubWeather{}
	agent := newTestAgent(
		&stubParser{trip: happyTrip()},
		&stubFlights{},
		weather,
		&stubAttractions{},
	)

	_, err := agent.Run(context.Background(), "plan me a trip")
	require.NoError(t, err)
	assert.Equal(t, "Istanbul", weather.city)
}
