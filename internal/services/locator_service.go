package services

import (
	"context"
	"fmt"
	"log"
	"sync"

	"tripmate/internal/models/trip_models"
	"tripmate/pkg/utils"
)

type LocatorServiceInterface interface {
	// Locate resolves every schedule entry of the itinerary to
	// coordinates, scoped by the itinerary's adcode. Entries that do not
	// resolve are dropped, never null-filled; a day may yield an empty
	// trace. A systemic failure during the walk is reported as a single
	// ErrLocatingFailed covering the whole itinerary.
	Locate(ctx context.Context, itinerary *trip_models.Itinerary) ([]trip_models.LocatedTrace, error)
}

type ItineraryLocatorService struct {
	geoService GeoServiceInterface
	workers    int
}

func NewItineraryLocatorService(geoService GeoServiceInterface, workers int) LocatorServiceInterface {
	if workers < 1 {
		workers = 4
	}
	return &ItineraryLocatorService{
		geoService: geoService,
		workers:    workers,
	}
}

func (s *ItineraryLocatorService) Locate(ctx context.Context, itinerary *trip_models.Itinerary) ([]trip_models.LocatedTrace, error) {
	scope := itinerary.Adcode
	if scope == "" {
		scope = itinerary.City
	}

	var traces []trip_models.LocatedTrace
	for _, day := range itinerary.Days {
		points, err := s.resolveSchedule(ctx, scope, day.Schedule)
		if err != nil {
			log.Printf("Locating itinerary stops failed: %v", err)
			return nil, utils.ErrLocatingFailed
		}
		traces = append(traces, trip_models.LocatedTrace{
			Label:  day.Date,
			Points: points,
		})
	}
	return traces, nil
}

// resolveSchedule fans the day's lookups out over a bounded worker pool.
// Lookups are independent; results are reassembled in schedule order and
// unresolved entries compacted away. A panic in any worker fails the
// whole walk.
func (s *ItineraryLocatorService) resolveSchedule(ctx context.Context, scope string, schedule []trip_models.ScheduleEntry) ([]trip_models.TracePoint, error) {
	resolved := make([]*trip_models.TracePoint, len(schedule))

	var wg sync.WaitGroup
	var mu sync.Mutex
	var walkErr error
	sem := make(chan struct{}, s.workers)

	for i, entry := range schedule {
		wg.Add(1)
		go func(i int, entry trip_models.ScheduleEntry) {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					mu.Lock()
					walkErr = fmt.Errorf("resolving %q panicked: %v", entry.Location, r)
					mu.Unlock()
				}
			}()
			sem <- struct{}{}
			defer func() { <-sem }()

			coords := s.geoService.ResolveLocation(ctx, entry.Location, scope)
			if len(coords) == 0 {
				log.Printf("Dropping unresolvable stop %q under scope %q", entry.Location, scope)
				return
			}
			resolved[i] = &trip_models.TracePoint{
				Location: coords[0],
				Address:  entry.Location,
			}
		}(i, entry)
	}
	wg.Wait()

	if walkErr != nil {
		return nil, walkErr
	}

	points := make([]trip_models.TracePoint, 0, len(schedule))
	for _, p := range resolved {
		if p != nil {
			points = append(points, *p)
		}
	}
	return points, nil
}
