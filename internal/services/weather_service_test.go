package services

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"tripmate/internal/models/trip_models"
)

var shaoxingGeocode = trip_models.GeocodeResult{
	Adcode:   "330600",
	Citycode: "0575",
	City:     "绍兴市",
	Province: "浙江省",
	Location: "120.582112,29.997117",
}

func TestGetForecast(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v3/weather/weatherInfo", r.URL.Path)
		assert.Equal(t, "330600", r.URL.Query().Get("city"))
		assert.Equal(t, "all", r.URL.Query().Get("extensions"))
		fmt.Fprint(w, `{
			"status": "1", "info": "OK",
			"forecasts": [{
				"casts": [
					{"date": "2024-03-05", "dayweather": "晴", "nightweather": "多云"},
					{"date": "2024-03-06", "dayweather": "阴转小雨", "nightweather": "晴"}
				]
			}]
		}`)
	}))
	defer srv.Close()

	svc := NewAmapWeatherService(testAmapConfig(srv.URL))
	forecast := svc.GetForecast(context.Background(), shaoxingGeocode, ForecastHorizonLong)

	require.Len(t, forecast, 2)
	assert.Equal(t, time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC), forecast[0].Date)
	assert.Equal(t, "晴", forecast[0].DayWeather)
	assert.Equal(t, "多云", forecast[0].NightWeather)
	assert.True(t, forecast[1].Date.After(forecast[0].Date))
}

func TestGetForecast_ShortHorizon(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "base", r.URL.Query().Get("extensions"))
		fmt.Fprint(w, `{"status": "1", "info": "OK", "forecasts": []}`)
	}))
	defer srv.Close()

	svc := NewAmapWeatherService(testAmapConfig(srv.URL))
	assert.Empty(t, svc.GetForecast(context.Background(), shaoxingGeocode, ForecastHorizonShort))
}

func TestGetForecast_BackendError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"status": "0", "info": "DAILY_QUERY_OVER_LIMIT"}`)
	}))
	defer srv.Close()

	svc := NewAmapWeatherService(testAmapConfig(srv.URL))
	assert.Empty(t, svc.GetForecast(context.Background(), shaoxingGeocode, ForecastHorizonLong))
}

func TestGetForecast_SkipsMalformedDates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{
			"status": "1", "info": "OK",
			"forecasts": [{
				"casts": [
					{"date": "not-a-date", "dayweather": "晴", "nightweather": "晴"},
					{"date": "2024-03-06", "dayweather": "小雨", "nightweather": "晴"}
				]
			}]
		}`)
	}))
	defer srv.Close()

	svc := NewAmapWeatherService(testAmapConfig(srv.URL))
	forecast := svc.GetForecast(context.Background(), shaoxingGeocode, ForecastHorizonLong)

	require.Len(t, forecast, 1)
	assert.Equal(t, "小雨", forecast[0].DayWeather)
}

func TestGetForecast_TransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	svc := NewAmapWeatherService(testAmapConfig(srv.URL))
	assert.Empty(t, svc.GetForecast(context.Background(), shaoxingGeocode, ForecastHorizonLong))
}
