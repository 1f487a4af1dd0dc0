package services

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"voyago/internal/models/agent_models"
	"voyago/pkg/utils"
)

func testTrip(start, end string) agent_models.TripRequest {
	return agent_models.TripRequest{
		RawQuery:    "go from Dubai to Istanbul",
		Origin:      "Dubai",
		Destination: "Istanbul",
		StartDate:   start,
		EndDate:     end,
	}
}

func testAttractions(n int) []agent_models.Attraction {
	out := make([]agent_models.Attraction, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, agent_models.Attraction{
			Name:        fmt.Sprintf("Attraction %d", i),
			Description: fmt.Sprintf("Description %d", i),
		})
	}
	return out
}

func TestAssembleDayCountMatchesInclusiveSpan(t *testing.T) {
	svc := NewItineraryService()

	tests := []struct {
		start string
		end   string
		days  int
	}{
		{"2025-11-10", "2025-11-15", 6},
		{"2025-11-10", "2025-11-10", 1},
		{"2025-12-30", "2026-01-02", 4},
	}

	for _, tt := range tests {
		plan, err := svc.Assemble(testTrip(tt.start, tt.end), nil, nil, nil)
		require.NoError(t, err)
		assert.Equal(t, tt.days, plan.DurationDays)
		assert.Len(t, plan.DailyPlan, tt.days)
	}
}

func TestAssembleArrivalAndDepartureBracketing(t *testing.T) {
	svc := NewItineraryService()

	plan, err := svc.Assemble(testTrip("2025-11-10", "2025-11-15"), nil, nil, nil)
	require.NoError(t, err)

	first := plan.DailyPlan[0]
	require.NotEmpty(t, first.Activities)
	assert.Equal(t, agent_models.SlotMorning, first.Activities[0].Time)
	assert.Equal(t, "Arrival in Istanbul", first.Activities[0].Activity)

	last := plan.DailyPlan[len(plan.DailyPlan)-1]
	require.NotEmpty(t, last.Activities)
	departure := last.Activities[len(last.Activities)-1]
	assert.Equal(t, agent_models.SlotEvening, departure.Time)
	assert.Equal(t, "Departure", departure.Activity)
	assert.Contains(t, departure.Description, "Dubai")
}

func TestAssembleSingleDayTripHasArrivalAndDeparture(t *testing.T) {
	svc := NewItineraryService()

	plan, err := svc.Assemble(testTrip("2025-11-10", "2025-11-10"), nil, nil, nil)
	require.NoError(t, err)
	require.Len(t, plan.DailyPlan, 1)

	activities := plan.DailyPlan[0].Activities
	require.Len(t, activities, 2)
	assert.Equal(t, "Arrival in Istanbul", activities[0].Activity)
	assert.Equal(t, "Departure", activities[1].Activity)
}

func TestAssembleAttractionDistribution(t *testing.T) {
	svc := NewItineraryService()
	attractions := testAttractions(5)

	plan, err := svc.Assemble(testTrip("2025-11-10", "2025-11-13"), nil, nil, attractions)
	require.NoError(t, err)

	// Attraction k lands on day k/2, afternoon when k is even, evening when odd.
	for k, attraction := range attractions {
		day := plan.DailyPlan[k/2]
		wantSlot := agent_models.SlotAfternoon
		if k%2 == 1 {
			wantSlot = agent_models.SlotEvening
		}

		found := false
		for _, activity := range day.Activities {
			if activity.Activity == "Visit "+attraction.Name {
				found = true
				assert.Equal(t, wantSlot, activity.Time)
			}
		}
		assert.True(t, found, "attraction %d should be on day %d", k, k/2+1)
	}
}

func TestAssembleDepartureCoexistsWithEveningAttraction(t *testing.T) {
	svc := NewItineraryService()

	// Two days, four attractions: day 2 gets attractions 2 and 3, plus Departure.
	plan, err := svc.Assemble(testTrip("2025-11-10", "2025-11-11"), nil, nil, testAttractions(4))
	require.NoError(t, err)

	last := plan.DailyPlan[1]
	evenings := 0
	for _, activity := range last.Activities {
		if activity.Time == agent_models.SlotEvening {
			evenings++
		}
	}
	assert.Equal(t, 2, evenings)
	assert.Equal(t, "Departure", last.Activities[len(last.Activities)-1].Activity)
}

func TestAssembleWeatherAlignment(t *testing.T) {
	svc := NewItineraryService()

	weather := []agent_models.DayWeather{
		{Date: "2025-11-10", TempMax: "20.0°C", Condition: "Clear sky"},
		{Date: "2025-11-11", TempMax: "18.0°C", Condition: "Rain"},
	}

	plan, err := svc.Assemble(testTrip("2025-11-10", "2025-11-12"), nil, weather, nil)
	require.NoError(t, err)

	require.NotNil(t, plan.DailyPlan[0].Weather)
	assert.Equal(t, "Clear sky", plan.DailyPlan[0].Weather.Condition)
	require.NotNil(t, plan.DailyPlan[1].Weather)
	assert.Equal(t, "Rain", plan.DailyPlan[1].Weather.Condition)
	assert.Nil(t, plan.DailyPlan[2].Weather)
}

func TestAssembleRejectsReversedRange(t *testing.T) {
	svc := NewItineraryService()

	_, err := svc.Assemble(testTrip("2025-11-15", "2025-11-10"), nil, nil, nil)
	assert.True(t, errors.Is(err, utils.ErrInvalidDateRange))
}

func TestAssembleRejectsMalformedDates(t *testing.T) {
	svc := NewItineraryService()

	_, err := svc.Assemble(testTrip("not-a-date", "2025-11-10"), nil, nil, nil)
	assert.True(t, errors.Is(err, utils.ErrMalformedDate))

	_, err = svc.Assemble(testTrip("2025-11-10", ""), nil, nil, nil)
	assert.True(t, errors.Is(err, utils.ErrMalformedDate))
}

func TestSummaryWithAllSourcesEmpty(t *testing.T) {
	svc := NewItineraryService()

	plan, err := svc.Assemble(testTrip("2025-11-10", "2025-11-12"), nil, nil, nil)
	require.NoError(t, err)

	assert.NotContains(t, plan.Summary, "Flight Options")
	assert.Contains(t, plan.Summary, "Travel Plan: Dubai to Istanbul")
	assert.Contains(t, plan.Summary, "Daily Itinerary:")
	assert.Contains(t, plan.Summary, "Day 1 (2025-11-10):")
}

func TestSummaryListsAtMostThreeFlights(t *testing.T) {
	svc := NewItineraryService()

	flights := []agent_models.FlightOffer{
		{Airline: "Emirates (EK)", Price: "900 AED"},
		{Airline: "Turkish Airlines (TK)", Price: "850 AED"},
		{Airline: "Etihad (EY)", Price: "950 AED"},
	}

	plan, err := svc.Assemble(testTrip("2025-11-10", "2025-11-11"), flights, nil, nil)
	require.NoError(t, err)

	assert.Contains(t, plan.Summary, "Flight Options:")
	assert.Equal(t, 3, strings.Count(plan.Summary, "AED"))
	assert.Contains(t, plan.Summary, "1. Emirates (EK) - 900 AED")
}
