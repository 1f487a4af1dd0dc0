package services

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"voyago/pkg/utils"
)

var weatherNow = time.Date(2025, 11, 1, 12, 0, 0, 0, time.UTC)

func geocodeHandler(t *testing.T, found bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !found {
			writeJSON(t, w, http.StatusOK, map[string]any{"results": []any{}})
			return
		}
		writeJSON(t, w, http.StatusOK, map[string]any{
			"results": []map[string]any{{"latitude": 41.01, "longitude": 28.98}},
		})
	}
}

func dailyPayload(dates []string, maxTemps, minTemps []float64, codes []int) map[string]any {
	return map[string]any{
		"daily": map[string]any{
			"time":               dates,
			"temperature_2m_max": maxTemps,
			"temperature_2m_min": minTemps,
			"weathercode":        codes,
		},
	}
}

func newWeatherTestService(t *testing.T, mux *http.ServeMux) *WeatherService {
	t.Helper()
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	return &WeatherService{
		HTTP:         &http.Client{Timeout: 5 * time.Second},
		GeocodingURL: srv.URL + "/geocode",
		ForecastURL:  srv.URL + "/forecast",
		ArchiveURL:   srv.URL + "/archive",
		Now:          func() time.Time { return weatherNow },
	}
}

func TestGetForecastWithinHorizon(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/geocode", geocodeHandler(t, true))
	mux.HandleFunc("/forecast", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "2025-11-10", r.URL.Query().Get("start_date"))
		writeJSON(t, w, http.StatusOK, dailyPayload(
			[]string{"2025-11-10", "2025-11-11"},
			[]float64{21.4, 19.8},
			[]float64{14.2, 13.1},
			[]int{0, 63},
		))
	})
	svc := newWeatherTestService(t, mux)

	forecast, err := svc.GetForecast(context.Background(), "Istanbul", "2025-11-10", "2025-11-11")
	require.NoError(t, err)
	require.Len(t, forecast, 2)

	assert.Equal(t, "2025-11-10", forecast[0].Date)
	assert.Equal(t, "21.4°C", forecast[0].TempMax)
	assert.Equal(t, "Clear sky", forecast[0].Condition)
	assert.Equal(t, "Rain", forecast[1].Condition)
}

func TestGetForecastMapsUnknownCodeToUnknown(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/geocode", geocodeHandler(t, true))
	mux.HandleFunc("/forecast", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusOK, dailyPayload(
			[]string{"2025-11-10"}, []float64{20}, []float64{10}, []int{42},
		))
	})
	svc := newWeatherTestService(t, mux)

	forecast, err := svc.GetForecast(context.Background(), "Istanbul", "2025-11-10", "2025-11-10")
	require.NoError(t, err)
	require.Len(t, forecast, 1)
	assert.Equal(t, "Unknown", forecast[0].Condition)
}

func TestGetForecastBeyondHorizonUsesClimateAverage(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/geocode", geocodeHandler(t, true))
	mux.HandleFunc("/forecast", func(w http.ResponseWriter, r *http.Request) {
		t.Error("live forecast must not be called beyond the horizon")
	})
	mux.HandleFunc("/archive", func(w http.ResponseWriter, r *http.Request) {
		// Same span shifted one year back.
		assert.Equal(t, "2024-12-24", r.URL.Query().Get("start_date"))
		assert.Equal(t, "2024-12-26", r.URL.Query().Get("end_date"))
		writeJSON(t, w, http.StatusOK, dailyPayload(
			[]string{"2024-12-24", "2024-12-25", "2024-12-26"},
			[]float64{10, 12, 14},
			[]float64{2, 4, 6},
			[]int{3, 3, 61},
		))
	})
	svc := newWeatherTestService(t, mux)

	forecast, err := svc.GetForecast(context.Background(), "Istanbul", "2025-12-24", "2025-12-26")
	require.NoError(t, err)
	require.Len(t, forecast, 3)

	for i, day := range forecast {
		assert.Equal(t, "12.0°C", day.TempMax)
		assert.Equal(t, "4.0°C", day.TempMin)
		assert.Equal(t, "Overcast (estimated from climate average)", day.Condition)
		assert.Equal(t, forecast[0].TempMax, day.TempMax, "day %d should repeat the estimate", i)
	}
	assert.Equal(t, "2025-12-24", forecast[0].Date)
	assert.Equal(t, "2025-12-26", forecast[2].Date)
}

func TestGetForecastClimateAverageWithoutCodesReportsUnknown(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/geocode", geocodeHandler(t, true))
	mux.HandleFunc("/archive", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusOK, dailyPayload(
			[]string{"2024-12-24", "2024-12-25"},
			[]float64{10, 12},
			[]float64{2, 4},
			[]int{},
		))
	})
	svc := newWeatherTestService(t, mux)

	forecast, err := svc.GetForecast(context.Background(), "Istanbul", "2025-12-24", "2025-12-25")
	require.NoError(t, err)
	require.Len(t, forecast, 2)
	assert.Equal(t, "Unknown (estimated from climate average)", forecast[0].Condition)
	assert.Equal(t, "11.0°C", forecast[0].TempMax)
}

func TestGetForecastSentinelWhenClimateLookupFails(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/geocode", geocodeHandler(t, true))
	mux.HandleFunc("/archive", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	svc := newWeatherTestService(t, mux)

	forecast, err := svc.GetForecast(context.Background(), "Istanbul", "2026-03-01", "2026-03-05")
	require.NoError(t, err)
	require.Len(t, forecast, 1)

	assert.Empty(t, forecast[0].Date)
	assert.Empty(t, forecast[0].TempMax)
	assert.Contains(t, forecast[0].Condition, "Weather forecast unavailable for 2026-03-01 to 2026-03-05")
}

func TestGetForecastGeocodingFailure(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/geocode", geocodeHandler(t, false))
	svc := newWeatherTestService(t, mux)

	_, err := svc.GetForecast(context.Background(), "Nowhere", "2025-11-10", "2025-11-11")
	assert.True(t, errors.Is(err, utils.ErrGeocodingFailed))
}

func TestGetForecastUnusableDates(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/geocode", geocodeHandler(t, true))
	svc := newWeatherTestService(t, mux)

	_, err := svc.GetForecast(context.Background(), "Istanbul", "soon", "2025-11-11")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unusable start date")
}
