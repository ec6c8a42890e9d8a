package trip_fx

import (
	"os"
	"strconv"

	"go.uber.org/fx"
	"tripmate/internal/api/controllers"
	"tripmate/internal/services"
)

var Module = fx.Provide(
	ProvideTripConfig,
	ProvideLocatorService,
	ProvideTripService,
	ProvideTripController,
)

func ProvideTripConfig() services.TripConfig {
	cfg := services.DefaultTripConfig()
	if v := os.Getenv("TRIP_MAX_DAYS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= cfg.MinTripDays {
			cfg.MaxTripDays = n
		}
	}
	return cfg
}

func ProvideLocatorService(geoService services.GeoServiceInterface) services.LocatorServiceInterface {
	return services.NewItineraryLocatorService(geoService, 4)
}

func ProvideTripService(
	cfg services.TripConfig,
	geoService services.GeoServiceInterface,
	weatherService services.WeatherServiceInterface,
	advisorService services.AdvisorServiceInterface,
	locatorService services.LocatorServiceInterface,
) services.TripServiceInterface {
	return services.NewTripService(cfg, geoService, weatherService, advisorService, locatorService)
}

func ProvideTripController(tripService services.TripServiceInterface) *controllers.TripController {
	return controllers.NewTripController(tripService)
}
