package services

import (
	"fmt"
	"strings"
	"voyago/internal/models/agent_models"
	"voyago/pkg/utils"
)

type ItineraryServiceInterface interface {
	Assemble(trip agent_models.TripRequest, flights []agent_models.FlightOffer, weather []agent_models.DayWeather, attractions []agent_models.Attraction) (agent_models.TravelPlan, error)
}

type ItineraryService struct{}

func NewItineraryService() ItineraryServiceInterface {
	return &ItineraryService{}
}

// Assemble builds the day-indexed schedule. Malformed dates are the one hard
// failure of the pipeline; a reversed range is rejected rather than producing
// a zero-length plan.
func (s *ItineraryService) Assemble(
	trip agent_models.TripRequest,
	flights []agent_models.FlightOffer,
	weather []agent_models.DayWeather,
	attractions []agent_models.Attraction,
) (agent_models.TravelPlan, error) {

	start, err := utils.ParseISODate(trip.StartDate)
	if err != nil {
		return agent_models.TravelPlan{}, fmt.Errorf("%w: start %q", utils.ErrMalformedDate, trip.StartDate)
	}
	end, err := utils.ParseISODate(trip.EndDate)
	if err != nil {
		return agent_models.TravelPlan{}, fmt.Errorf("%w: end %q", utils.ErrMalformedDate, trip.EndDate)
	}
	if start.After(end) {
		return agent_models.TravelPlan{}, fmt.Errorf("%w: %s > %s", utils.ErrInvalidDateRange, trip.StartDate, trip.EndDate)
	}

	numDays := utils.DaysInclusive(start, end)

	dailyPlan := make([]agent_models.DayPlan, 0, numDays)
	for i := 0; i < numDays; i++ {
		day := agent_models.DayPlan{
			Day:        i + 1,
			Date:       utils.FormatISODate(start.AddDate(0, 0, i)),
			Activities: []agent_models.Activity{},
		}

		if i < len(weather) {
			w := weather[i]
			day.Weather = &w
		}

		if i == 0 {
			day.Activities = append(day.Activities, agent_models.Activity{
				Time:        agent_models.SlotMorning,
				Activity:    fmt.Sprintf("Arrival in %s", trip.Destination),
				Description: "Check into hotel and rest",
			})
		}

		// Two attractions a day: afternoon first, evening second.
		for j, attraction := range sliceAttractions(attractions, i) {
			slot := agent_models.SlotAfternoon
			if j == 1 {
				slot = agent_models.SlotEvening
			}
			day.Activities = append(day.Activities, agent_models.Activity{
				Time:        slot,
				Activity:    fmt.Sprintf("Visit %s", attraction.Name),
				Description: attraction.Description,
			})
		}

		if i == numDays-1 {
			day.Activities = append(day.Activities, agent_models.Activity{
				Time:        agent_models.SlotEvening,
				Activity:    "Departure",
				Description: fmt.Sprintf("Return flight to %s", trip.Origin),
			})
		}

		dailyPlan = append(dailyPlan, day)
	}

	plan := agent_models.TravelPlan{
		Origin:       trip.Origin,
		Destination:  trip.Destination,
		StartDate:    trip.StartDate,
		EndDate:      trip.EndDate,
		DurationDays: numDays,
		Flights:      flights,
		DailyPlan:    dailyPlan,
	}
	plan.Summary = renderSummary(plan)

	return plan, nil
}

func sliceAttractions(attractions []agent_models.Attraction, day int) []agent_models.Attraction {
	lo := day * 2
	if lo >= len(attractions) {
		return nil
	}
	hi := lo + 2
	if hi > len(attractions) {
		hi = len(attractions)
	}
	return attractions[lo:hi]
}

// renderSummary produces the fixed-format text block. It tolerates fully
// empty inputs: missing sections are omitted or shown as N/A.
func renderSummary(plan agent_models.TravelPlan) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Travel Plan: %s to %s\n\n", plan.Origin, plan.Destination)
	fmt.Fprintf(&b, "Duration: %s to %s\n\n", plan.StartDate, plan.EndDate)

	if len(plan.Flights) > 0 {
		b.WriteString("Flight Options:\n")
		for i, flight := range plan.Flights {
			if i >= 3 {
				break
			}
			fmt.Fprintf(&b, "  %d. %s - %s\n", i+1, flight.Airline, flight.Price)
		}
	}

	b.WriteString("\nDaily Itinerary:\n")
	for _, day := range plan.DailyPlan {
		fmt.Fprintf(&b, "\nDay %d (%s):\n", day.Day, day.Date)
		if day.Weather != nil {
			condition := day.Weather.Condition
			if condition == "" {
				condition = "N/A"
			}
			tempMax := day.Weather.TempMax
			if tempMax == "" {
				tempMax = "N/A"
			}
			fmt.Fprintf(&b, "  Weather: %s, %s\n", condition, tempMax)
		}
		for _, activity := range day.Activities {
			fmt.Fprintf(&b, "  - %s: %s\n", activity.Time, activity.Activity)
		}
	}

	return b.String()
}
