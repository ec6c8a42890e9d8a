package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"tripmate/internal/models/trip_models"
	"tripmate/pkg/utils"
)

// TripConfig bounds the planning horizon. The range is a practical
// product limit, not a technical one, so it stays configurable.
type TripConfig struct {
	MinTripDays int
	MaxTripDays int
}

func DefaultTripConfig() TripConfig {
	return TripConfig{MinTripDays: 1, MaxTripDays: 7}
}

// startDateLayouts are the accepted textual forms of a start date,
// tried in order.
var startDateLayouts = []string{"2006-01-02", "2006/01/02", "20060102"}

// unknownWeather marks trip days the forecast does not cover.
const unknownWeather = "未知"

type TripServiceInterface interface {
	// BuildBrief validates the request, resolves the city's canonical
	// geocode and aligns the forecast to the requested dates.
	BuildBrief(ctx context.Context, city string, days int, startDate string) (*trip_models.TripBrief, error)

	// PlanTrip runs the full pipeline: brief, itinerary generation,
	// stop resolution. A locating failure degrades to a plan without
	// traces rather than failing the request.
	PlanTrip(ctx context.Context, city string, days int, startDate string) (*trip_models.TripPlan, error)
}

type TripService struct {
	cfg            TripConfig
	geoService     GeoServiceInterface
	weatherService WeatherServiceInterface
	advisorService AdvisorServiceInterface
	locatorService LocatorServiceInterface
}

func NewTripService(
	cfg TripConfig,
	geoService GeoServiceInterface,
	weatherService WeatherServiceInterface,
	advisorService AdvisorServiceInterface,
	locatorService LocatorServiceInterface,
) TripServiceInterface {
	return &TripService{
		cfg:            cfg,
		geoService:     geoService,
		weatherService: weatherService,
		advisorService: advisorService,
		locatorService: locatorService,
	}
}

func (s *TripService) BuildBrief(ctx context.Context, city string, days int, startDate string) (*trip_models.TripBrief, error) {
	if days < s.cfg.MinTripDays || days > s.cfg.MaxTripDays {
		return nil, utils.ErrInvalidDayCount
	}
	start, err := parseStartDate(startDate)
	if err != nil {
		return nil, utils.ErrInvalidStartDate
	}

	geocodes := s.geoService.ResolveCanonical(ctx, city)
	if len(geocodes) == 0 {
		log.Printf("Can not resolve canonical geocode of city: %s", city)
		return nil, utils.ErrCityNotFound
	}
	canonical := geocodes[0]

	dates := make([]time.Time, days)
	for i := range dates {
		dates[i] = start.AddDate(0, 0, i)
	}

	forecast := s.weatherService.GetForecast(ctx, canonical, ForecastHorizonLong)
	if len(forecast) == 0 {
		log.Printf("Can not get forecast of city: %s (adcode %s)", city, canonical.Adcode)
	}

	weathers := make([]trip_models.ForecastDay, days)
	for i, date := range dates {
		weathers[i] = forecastForDate(forecast, date)
	}

	return &trip_models.TripBrief{
		City:         city,
		Adcode:       canonical.Adcode,
		StandardCity: canonical.City,
		Duration:     fmt.Sprintf("%d天", days),
		Dates:        dates,
		Weathers:     weathers,
	}, nil
}

func (s *TripService) PlanTrip(ctx context.Context, city string, days int, startDate string) (*trip_models.TripPlan, error) {
	brief, err := s.BuildBrief(ctx, city, days, startDate)
	if err != nil {
		return nil, err
	}

	itinerary, err := s.advisorService.Generate(ctx, brief)
	if err != nil {
		return nil, err
	}

	plan := &trip_models.TripPlan{Brief: brief, Itinerary: itinerary}

	traces, err := s.locatorService.Locate(ctx, itinerary)
	if err != nil {
		// The itinerary is still usable; the map renders with a
		// default marker instead.
		log.Printf("Locating failed for city %s: %v", city, err)
		plan.LocatingFailed = true
		return plan, nil
	}
	plan.Traces = traces
	return plan, nil
}

func parseStartDate(v string) (time.Time, error) {
	for _, layout := range startDateLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized start date: %q", v)
}

// forecastForDate picks the forecast entry whose date equals the trip
// date, synthesizing an unknown-weather sentinel when nothing covers it.
// The brief never omits a day or leaves weather text empty.
func forecastForDate(forecast []trip_models.ForecastDay, date time.Time) trip_models.ForecastDay {
	for _, f := range forecast {
		if f.Date.Equal(date) {
			return f
		}
	}
	return trip_models.ForecastDay{
		Date:         date,
		DayWeather:   unknownWeather,
		NightWeather: unknownWeather,
	}
}
