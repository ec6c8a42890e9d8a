package geo_fx

import (
	"log"
	"os"
	"strings"
	"time"

	"go.uber.org/fx"
	"tripmate/internal/services"
)

var Module = fx.Provide(
	ProvideAmapConfig,
	ProvideGeoCache,
	ProvideGeoService,
)

// ProvideAmapConfig builds the Amap client configuration once from the
// environment; everything downstream receives it by injection.
func ProvideAmapConfig() services.AmapConfig {
	apiKey := os.Getenv("AMAP_API_KEY")
	if apiKey == "" {
		log.Fatal("AMAP_API_KEY is required")
	}

	return services.AmapConfig{
		APIKey:               apiKey,
		GeocodeURL:           getEnvWithDefault("AMAP_GEOCODE_URL", "https://restapi.amap.com/v3/geocode/geo"),
		WeatherURL:           getEnvWithDefault("AMAP_WEATHER_URL", "https://restapi.amap.com/v3/weather/weatherInfo"),
		PlaceSearchURL:       getEnvWithDefault("AMAP_PLACE_URL", "https://restapi.amap.com/v3/place/text"),
		Timeout:              10 * time.Second,
		MunicipalityPrefixes: strings.Split(getEnvWithDefault("AMAP_MUNICIPALITY_PREFIXES", "110,120,310,500"), ","),
	}
}

func ProvideGeoCache() services.GeoCache {
	return services.NewInMemoryGeoCache()
}

func ProvideGeoService(cfg services.AmapConfig, cache services.GeoCache) services.GeoServiceInterface {
	return services.NewAmapGeoService(cfg, cache)
}

func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
