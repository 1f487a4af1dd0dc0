package agent_models

// TripRequest holds the structured parameters extracted from a free-text
// travel query. Dates stay as YYYY-MM-DD strings until plan assembly so that
// unusable extraction output surfaces there instead of being silently fixed.
type TripRequest struct {
	RawQuery    string `json:"raw_query"`
	Origin      string `json:"origin"`
	Destination string `json:"destination"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
}

type FlightOffer struct {
	Price     string `json:"price"`
	Airline   string `json:"airline"`
	Departure string `json:"departure"`
	Arrival   string `json:"arrival"`
	Duration  string `json:"duration"`
	Stops     int    `json:"stops"`
}

// DayWeather is one forecast day. Date is empty for the unavailability
// sentinel entry.
type DayWeather struct {
	Date      string `json:"date"`
	TempMax   string `json:"temp_max"`
	TempMin   string `json:"temp_min"`
	Condition string `json:"condition"`
}

type Attraction struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type Activity struct {
	Time        string `json:"time"`
	Activity    string `json:"activity"`
	Description string `json:"description"`
}

const (
	SlotMorning   = "Morning"
	SlotAfternoon = "Afternoon"
	SlotEvening   = "Evening"
)

type DayPlan struct {
	Day        int         `json:"day"`
	Date       string      `json:"date"`
	Weather    *DayWeather `json:"weather,omitempty"`
	Activities []Activity  `json:"activities"`
}

const (
	StepSuccess = "success"
	StepFailed  = "failed"
)

// StepTrace records one pipeline stage for observability. It never feeds
// back into control flow.
type StepTrace struct {
	Tool   string      `json:"tool"`
	Input  interface{} `json:"input"`
	Output interface{} `json:"output"`
	Status string      `json:"status"`
	Error  string      `json:"error,omitempty"`
}

type TravelPlan struct {
	Origin       string        `json:"origin"`
	Destination  string        `json:"destination"`
	StartDate    string        `json:"start_date"`
	EndDate      string        `json:"end_date"`
	DurationDays int           `json:"duration_days"`
	Flights      []FlightOffer `json:"flights"`
	DailyPlan    []DayPlan     `json:"daily_plan"`
	Summary      string        `json:"summary"`
}

// PlanResult is what one orchestrator run hands back: the assembled plan plus
// the ordered trace of every stage that ran.
type PlanResult struct {
	Plan  TravelPlan  `json:"plan"`
	Steps []StepTrace `json:"steps"`
}
