package services

import (
	"context"
	"sync"

	"tripmate/internal/models/trip_models"
)

// Function-field fakes for the service interfaces, shared by the tests
// in this package. Counters are mutex-guarded because the locator calls
// ResolveLocation from worker goroutines.

type fakeGeoService struct {
	mu             sync.Mutex
	canonicalFn    func(ctx context.Context, query string) []trip_models.GeocodeResult
	locationFn     func(ctx context.Context, query, scope string) []trip_models.Coordinate
	canonicalCalls int
	locationCalls  int
	scopes         []string
}

func (f *fakeGeoService) ResolveCanonical(ctx context.Context, query string) []trip_models.GeocodeResult {
	f.mu.Lock()
	f.canonicalCalls++
	f.mu.Unlock()
	if f.canonicalFn != nil {
		return f.canonicalFn(ctx, query)
	}
	return nil
}

func (f *fakeGeoService) ResolveLocation(ctx context.Context, query, scope string) []trip_models.Coordinate {
	f.mu.Lock()
	f.locationCalls++
	f.scopes = append(f.scopes, scope)
	f.mu.Unlock()
	if f.locationFn != nil {
		return f.locationFn(ctx, query, scope)
	}
	return nil
}

type fakeWeatherService struct {
	forecastFn func(ctx context.Context, geocode trip_models.GeocodeResult, horizon ForecastHorizon) []trip_models.ForecastDay
	calls      int
}

func (f *fakeWeatherService) GetForecast(ctx context.Context, geocode trip_models.GeocodeResult, horizon ForecastHorizon) []trip_models.ForecastDay {
	f.calls++
	if f.forecastFn != nil {
		return f.forecastFn(ctx, geocode, horizon)
	}
	return nil
}

type fakeCompletionClient struct {
	completeFn func(ctx context.Context, prompt string) (string, error)
	calls      int
	prompts    []string
}

func (f *fakeCompletionClient) Complete(ctx context.Context, prompt string) (string, error) {
	f.calls++
	f.prompts = append(f.prompts, prompt)
	if f.completeFn != nil {
		return f.completeFn(ctx, prompt)
	}
	return "", nil
}

type fakeAdvisorService struct {
	generateFn func(ctx context.Context, brief *trip_models.TripBrief) (*trip_models.Itinerary, error)
	calls      int
}

func (f *fakeAdvisorService) Generate(ctx context.Context, brief *trip_models.TripBrief) (*trip_models.Itinerary, error) {
	f.calls++
	if f.generateFn != nil {
		return f.generateFn(ctx, brief)
	}
	return nil, nil
}

type fakeLocatorService struct {
	locateFn func(ctx context.Context, itinerary *trip_models.Itinerary) ([]trip_models.LocatedTrace, error)
	calls    int
}

func (f *fakeLocatorService) Locate(ctx context.Context, itinerary *trip_models.Itinerary) ([]trip_models.LocatedTrace, error) {
	f.calls++
	if f.locateFn != nil {
		return f.locateFn(ctx, itinerary)
	}
	return nil, nil
}
