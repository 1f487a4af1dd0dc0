package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"time"
	"voyago/internal/models/agent_models"
	"voyago/pkg/utils"
)

// weatherCodeToCondition maps provider weather codes to display strings.
// Unknown codes map to "Unknown", never an error.
var weatherCodeToCondition = map[int]string{
	0: "Clear sky", 1: "Mainly clear", 2: "Partly cloudy", 3: "Overcast",
	45: "Foggy", 48: "Foggy", 51: "Light drizzle", 53: "Drizzle", 55: "Heavy drizzle",
	61: "Light rain", 63: "Rain", 65: "Heavy rain", 71: "Light snow", 73: "Snow", 75: "Heavy snow",
	80: "Light showers", 81: "Showers", 82: "Heavy showers", 95: "Thunderstorm",
}

func conditionForCode(code int) string {
	if condition, ok := weatherCodeToCondition[code]; ok {
		return condition
	}
	return "Unknown"
}

const forecastHorizonDays = 16

type WeatherServiceInterface interface {
	GetForecast(ctx context.Context, city, startDate, endDate string) ([]agent_models.DayWeather, error)
}

type WeatherService struct {
	HTTP         *http.Client
	GeocodingURL string
	ForecastURL  string
	ArchiveURL   string

	// Now anchors the forecast horizon; overridable in tests.
	Now func() time.Time
}

func NewWeatherService() WeatherServiceInterface {
	return &WeatherService{
		HTTP:         &http.Client{Timeout: 30 * time.Second},
		GeocodingURL: "https://geocoding-api.open-meteo.com/v1/search",
		ForecastURL:  "https://api.open-meteo.com/v1/forecast",
		ArchiveURL:   "https://archive-api.open-meteo.com/v1/archive",
		Now:          time.Now,
	}
}

// GetForecast returns one entry per trip day. Beyond the live forecast
// horizon it degrades to a climate estimate from the same dates one year
// earlier, and past that to a single sentinel entry. Only geocoding failure
// and unusable dates surface as errors.
func (s *WeatherService) GetForecast(ctx context.Context, city, startDate, endDate string) ([]agent_models.DayWeather, error) {
	lat, lon, err := s.geocode(ctx, city)
	if err != nil {
		return nil, err
	}

	start, err := utils.ParseISODate(startDate)
	if err != nil {
		return nil, fmt.Errorf("unusable start date %q: %w", startDate, err)
	}
	end, err := utils.ParseISODate(endDate)
	if err != nil {
		return nil, fmt.Errorf("unusable end date %q: %w", endDate, err)
	}

	today := s.Now().UTC().Truncate(24 * time.Hour)
	horizon := today.AddDate(0, 0, forecastHorizonDays)

	if !start.After(horizon) {
		return s.liveForecast(ctx, lat, lon, startDate, endDate)
	}

	log.Printf("Forecast not available beyond %s, estimating from climate history", utils.FormatISODate(horizon))

	estimated, err := s.climateEstimate(ctx, lat, lon, start, end)
	if err == nil {
		return estimated, nil
	}
	log.Printf("Climate estimate failed: %v", err)

	return []agent_models.DayWeather{{
		Condition: fmt.Sprintf("Weather forecast unavailable for %s to %s. "+
			"Try using historical averages or check closer to the trip date.", startDate, endDate),
	}}, nil
}

func (s *WeatherService) geocode(ctx context.Context, city string) (float64, float64, error) {
	q := url.Values{}
	q.Set("name", city)
	q.Set("count", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.GeocodingURL+"?"+q.Encode(), nil)
	if err != nil {
		return 0, 0, err
	}

	resp, err := s.HTTP.Do(req)
	if err != nil {
		return 0, 0, fmt.Errorf("geocoding http error: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		return 0, 0, fmt.Errorf("geocoding bad status: %s", resp.Status)
	}

	var payload struct {
		Results []struct {
			Latitude  float64 `json:"latitude"`
			Longitude float64 `json:"longitude"`
		} `json:"results"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return 0, 0, fmt.Errorf("geocoding decode: %w", err)
	}
	if len(payload.Results) == 0 {
		return 0, 0, fmt.Errorf("%w: could not find coordinates for city %q", utils.ErrGeocodingFailed, city)
	}

	return payload.Results[0].Latitude, payload.Results[0].Longitude, nil
}

type dailyWeatherPayload struct {
	Daily struct {
		Time           []string  `json:"time"`
		TemperatureMax []float64 `json:"temperature_2m_max"`
		TemperatureMin []float64 `json:"temperature_2m_min"`
		WeatherCode    []int     `json:"weathercode"`
	} `json:"daily"`
}

func (s *WeatherService) fetchDaily(ctx context.Context, baseURL string, lat, lon float64, startDate, endDate string) (*dailyWeatherPayload, error) {
	q := url.Values{}
	q.Set("latitude", fmt.Sprintf("%f", lat))
	q.Set("longitude", fmt.Sprintf("%f", lon))
	q.Set("daily", "temperature_2m_max,temperature_2m_min,weathercode")
	q.Set("start_date", startDate)
	q.Set("end_date", endDate)
	q.Set("timezone", "auto")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := s.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("weather http error: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		return nil, fmt.Errorf("weather bad status: %s", resp.Status)
	}

	var payload dailyWeatherPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("weather decode: %w", err)
	}
	return &payload, nil
}

func (s *WeatherService) liveForecast(ctx context.Context, lat, lon float64, startDate, endDate string) ([]agent_models.DayWeather, error) {
	payload, err := s.fetchDaily(ctx, s.ForecastURL, lat, lon, startDate, endDate)
	if err != nil {
		return nil, err
	}

	forecast := make([]agent_models.DayWeather, 0, len(payload.Daily.Time))
	for i := range payload.Daily.Time {
		if i >= len(payload.Daily.TemperatureMax) || i >= len(payload.Daily.TemperatureMin) || i >= len(payload.Daily.WeatherCode) {
			break
		}
		forecast = append(forecast, agent_models.DayWeather{
			Date:      payload.Daily.Time[i],
			TempMax:   fmt.Sprintf("%.1f°C", payload.Daily.TemperatureMax[i]),
			TempMin:   fmt.Sprintf("%.1f°C", payload.Daily.TemperatureMin[i]),
			Condition: conditionForCode(payload.Daily.WeatherCode[i]),
		})
	}

	if len(forecast) == 0 {
		log.Printf("No forecast entries returned for %s to %s", startDate, endDate)
	}
	return forecast, nil
}

// climateEstimate averages the same date span one year earlier and repeats
// the result for each trip day.
func (s *WeatherService) climateEstimate(ctx context.Context, lat, lon float64, start, end time.Time) ([]agent_models.DayWeather, error) {
	histStart := start.AddDate(-1, 0, 0)
	histEnd := end.AddDate(-1, 0, 0)

	payload, err := s.fetchDaily(ctx, s.ArchiveURL, lat, lon, utils.FormatISODate(histStart), utils.FormatISODate(histEnd))
	if err != nil {
		return nil, err
	}
	if len(payload.Daily.Time) == 0 || len(payload.Daily.TemperatureMax) == 0 || len(payload.Daily.TemperatureMin) == 0 {
		return nil, fmt.Errorf("no historical weather data returned")
	}

	var sumMax, sumMin float64
	for _, v := range payload.Daily.TemperatureMax {
		sumMax += v
	}
	for _, v := range payload.Daily.TemperatureMin {
		sumMin += v
	}
	avgMax := sumMax / float64(len(payload.Daily.TemperatureMax))
	avgMin := sumMin / float64(len(payload.Daily.TemperatureMin))

	// -1 is outside the provider's code space and maps to "Unknown", which
	// is what an archive payload without codes should report.
	codeCounts := make(map[int]int)
	common := -1
	for _, code := range payload.Daily.WeatherCode {
		codeCounts[code]++
		if common == -1 || codeCounts[code] > codeCounts[common] {
			common = code
		}
	}

	days := utils.DaysInclusive(start, end)
	estimate := make([]agent_models.DayWeather, 0, days)
	for i := 0; i < days; i++ {
		estimate = append(estimate, agent_models.DayWeather{
			Date:      utils.FormatISODate(start.AddDate(0, 0, i)),
			TempMax:   fmt.Sprintf("%.1f°C", avgMax),
			TempMin:   fmt.Sprintf("%.1f°C", avgMin),
			Condition: fmt.Sprintf("%s (estimated from climate average)", conditionForCode(common)),
		})
	}
	return estimate, nil
}
