package services

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"net/url"
	"time"

	"tripmate/internal/models/trip_models"
)

// ForecastHorizon selects how far ahead the weather lookup reaches.
type ForecastHorizon string

const (
	ForecastHorizonShort ForecastHorizon = "short"
	ForecastHorizonLong  ForecastHorizon = "long"
)

type WeatherServiceInterface interface {
	// GetForecast fetches the multi-day forecast for an already-resolved
	// geocode, keyed by its adcode. Empty on any failure.
	GetForecast(ctx context.Context, geocode trip_models.GeocodeResult, horizon ForecastHorizon) []trip_models.ForecastDay
}

type AmapWeatherService struct {
	cfg  AmapConfig
	http *http.Client
}

func NewAmapWeatherService(cfg AmapConfig) WeatherServiceInterface {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	return &AmapWeatherService{
		cfg:  cfg,
		http: &http.Client{Timeout: timeout},
	}
}

const forecastDateLayout = "2006-01-02"

func (s *AmapWeatherService) GetForecast(ctx context.Context, geocode trip_models.GeocodeResult, horizon ForecastHorizon) []trip_models.ForecastDay {
	extensions := "all"
	if horizon == ForecastHorizonShort {
		extensions = "base"
	}

	q := url.Values{}
	q.Set("city", geocode.Adcode)
	q.Set("key", s.cfg.APIKey)
	q.Set("extensions", extensions)

	u, err := url.Parse(s.cfg.WeatherURL)
	if err != nil {
		log.Printf("Bad amap weather url: %v", err)
		return nil
	}
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		log.Printf("Request amap weather api failed: %v", err)
		return nil
	}
	resp, err := s.http.Do(req)
	if err != nil {
		log.Printf("Request amap weather api failed: %v", err)
		return nil
	}
	defer resp.Body.Close()

	var payload struct {
		Status    string `json:"status"`
		Info      string `json:"info"`
		Forecasts []struct {
			Casts []struct {
				Date         string `json:"date"`
				DayWeather   string `json:"dayweather"`
				NightWeather string `json:"nightweather"`
			} `json:"casts"`
		} `json:"forecasts"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		log.Printf("Decode amap weather response failed: %v", err)
		return nil
	}
	if payload.Status == "0" {
		log.Printf("Amap weather api error: %s", payload.Info)
		return nil
	}
	if len(payload.Forecasts) == 0 {
		return nil
	}

	var forecast []trip_models.ForecastDay
	for _, cast := range payload.Forecasts[0].Casts {
		// Pure calendar date, so trip dates compare by equality.
		date, err := time.Parse(forecastDateLayout, cast.Date)
		if err != nil {
			log.Printf("Skipping forecast cast with bad date %q: %v", cast.Date, err)
			continue
		}
		forecast = append(forecast, trip_models.ForecastDay{
			Date:         date,
			DayWeather:   cast.DayWeather,
			NightWeather: cast.NightWeather,
		})
	}
	return forecast
}
