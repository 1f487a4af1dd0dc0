package services

import (
	"context"
	"log"
	"time"
	"voyago/internal/models/agent_models"
)

// AgentServiceInterface runs the whole planning pipeline for one query.
type AgentServiceInterface interface {
	Run(ctx context.Context, rawQuery string) (agent_models.PlanResult, error)
}

type AgentService struct {
	parser      QueryParserInterface
	flights     FlightServiceInterface
	weather     WeatherServiceInterface
	attractions AttractionServiceInterface
	itinerary   ItineraryServiceInterface

	// now anchors relative-date resolution; overridable in tests.
	now func() time.Time
}

func NewAgentService(
	parser QueryParserInterface,
	flights FlightServiceInterface,
	weather WeatherServiceInterface,
	attractions AttractionServiceInterface,
	itinerary ItineraryServiceInterface,
) AgentServiceInterface {
	return &AgentService{
		parser:      parser,
		flights:     flights,
		weather:     weather,
		attractions: attractions,
		itinerary:   itinerary,
		now:         time.Now,
	}
}

// Run drives the fixed stage sequence ParseQuery, SearchFlights, GetWeather,
// GetAttractions, CreatePlan. Stage failures degrade data and are recorded
// in the trace; they never skip later stages. Only plan assembly can fail
// the run, and only on unusable trip dates.
func (a *AgentService) Run(ctx context.Context, rawQuery string) (agent_models.PlanResult, error) {
	steps := make([]agent_models.StepTrace, 0, 4)

	trip, parseStep := a.parser.Parse(ctx, rawQuery, a.now())
	steps = append(steps, parseStep)

	flights, flightStep := a.searchFlights(ctx, trip)
	steps = append(steps, flightStep)

	weather, weatherStep := a.getWeather(ctx, trip)
	steps = append(steps, weatherStep)

	attractions, attractionStep := a.getAttractions(ctx, trip)
	steps = append(steps, attractionStep)

	plan, err := a.itinerary.Assemble(trip, flights, weather, attractions)
	if err != nil {
		return agent_models.PlanResult{Steps: steps}, err
	}

	return agent_models.PlanResult{Plan: plan, Steps: steps}, nil
}

func (a *AgentService) searchFlights(ctx context.Context, trip agent_models.TripRequest) ([]agent_models.FlightOffer, agent_models.StepTrace) {
	input := map[string]string{
		"origin":         trip.Origin,
		"destination":    trip.Destination,
		"departure_date": trip.StartDate,
	}

	flights, err := a.flights.Search(ctx, trip.Origin, trip.Destination, trip.StartDate, trip.EndDate)
	if err != nil {
		log.Printf("Flight search error: %v", err)
		return nil, agent_models.StepTrace{
			Tool:   "flight_search",
			Input:  input,
			Output: []agent_models.FlightOffer{},
			Status: agent_models.StepFailed,
			Error:  err.Error(),
		}
	}

	return flights, agent_models.StepTrace{
		Tool:   "flight_search",
		Input:  input,
		Output: flights,
		Status: agent_models.StepSuccess,
	}
}

func (a *AgentService) getWeather(ctx context.Context, trip agent_models.TripRequest) ([]agent_models.DayWeather, agent_models.StepTrace) {
	city := ResolveCityName(trip.Destination)
	input := map[string]string{
		"city":       city,
		"start_date": trip.StartDate,
		"end_date":   trip.EndDate,
	}

	weather, err := a.weather.GetForecast(ctx, city, trip.StartDate, trip.EndDate)
	if err != nil {
		log.Printf("Weather error: %v", err)
		return nil, agent_models.StepTrace{
			Tool:   "weather_forecast",
			Input:  input,
			Output: []agent_models.DayWeather{},
			Status: agent_models.StepFailed,
			Error:  err.Error(),
		}
	}

	return weather, agent_models.StepTrace{
		Tool:   "weather_forecast",
		Input:  input,
		Output: weather,
		Status: agent_models.StepSuccess,
	}
}

func (a *AgentService) getAttractions(ctx context.Context, trip agent_models.TripRequest) ([]agent_models.Attraction, agent_models.StepTrace) {
	city := ResolveCityName(trip.Destination)
	input := map[string]string{"city": city}

	attractions, err := a.attractions.GetAttractions(ctx, city)
	if err != nil {
		log.Printf("Attractions error: %v", err)
		return nil, agent_models.StepTrace{
			Tool:   "attractions",
			Input:  input,
			Output: []agent_models.Attraction{},
			Status: agent_models.StepFailed,
			Error:  err.Error(),
		}
	}

	return attractions, agent_models.StepTrace{
		Tool:   "attractions",
		Input:  input,
		Output: attractions,
		Status: agent_models.StepSuccess,
	}
}
