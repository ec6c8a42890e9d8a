package trip_models

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Coordinate is a longitude/latitude pair in the map provider's wire
// format, e.g. "120.582112,29.997117". It is either well-formed or absent.
type Coordinate string

func (c Coordinate) LonLat() (float64, float64, error) {
	parts := strings.SplitN(string(c), ",", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("malformed coordinate: %q", string(c))
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("malformed longitude in %q: %w", string(c), err)
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("malformed latitude in %q: %w", string(c), err)
	}
	return lon, lat, nil
}

// GeocodeResult is one candidate returned by the geocoding backend.
type GeocodeResult struct {
	Adcode           string     `json:"adcode"`
	Citycode         string     `json:"citycode"`
	City             string     `json:"city"`
	Province         string     `json:"province"`
	FormattedAddress string     `json:"formatted_address"`
	Location         Coordinate `json:"location"`
}

// ForecastDay is the weather of a single calendar date. Date carries no
// time-of-day component so trip dates can be compared by equality.
type ForecastDay struct {
	Date         time.Time `json:"date"`
	DayWeather   string    `json:"day_weather"`
	NightWeather string    `json:"night_weather"`
}

// TripBrief is the normalized generation input: destination, duration and
// one weather entry per trip day. Weathers always has exactly one entry
// per requested day, sentinel-filled when the forecast has no coverage.
type TripBrief struct {
	City         string        `json:"city"`
	Adcode       string        `json:"adcode"`
	StandardCity string        `json:"standard_city"`
	Duration     string        `json:"duration"`
	Dates        []time.Time   `json:"dates"`
	Weathers     []ForecastDay `json:"weathers"`
}

type ScheduleEntry struct {
	Time        string `json:"time"`
	Location    string `json:"location"`
	Description string `json:"description"`
}

type ItineraryDay struct {
	Date         string          `json:"date"`
	DayWeather   string          `json:"day_weather"`
	NightWeather string          `json:"night_weather"`
	Schedule     []ScheduleEntry `json:"schedule"`
}

// Itinerary is the generated day-by-day plan. Adcode is stamped from the
// originating TripBrief after generation, never taken from the model output.
type Itinerary struct {
	City   string         `json:"city"`
	Adcode string         `json:"adcode,omitempty"`
	Days   []ItineraryDay `json:"days"`
}

// TracePoint pairs a resolved coordinate with the schedule entry's
// original location text.
type TracePoint struct {
	Location Coordinate `json:"location"`
	Address  string     `json:"address"`
}

// LocatedTrace is the per-day set of resolved stops consumed by map
// rendering. Points may be empty when no stop of the day resolved.
type LocatedTrace struct {
	Label  string       `json:"label"`
	Points []TracePoint `json:"points"`
}

// TripPlan bundles everything one planning request produces.
// LocatingFailed marks the degraded case where the itinerary exists but
// stop resolution failed as a whole.
type TripPlan struct {
	Brief          *TripBrief     `json:"brief"`
	Itinerary      *Itinerary     `json:"itinerary"`
	Traces         []LocatedTrace `json:"traces"`
	LocatingFailed bool           `json:"locating_failed,omitempty"`
}
