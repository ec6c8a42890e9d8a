package weather_fx

import (
	"go.uber.org/fx"
	"tripmate/internal/services"
)

var Module = fx.Provide(ProvideWeatherService)

func ProvideWeatherService(cfg services.AmapConfig) services.WeatherServiceInterface {
	return services.NewAmapWeatherService(cfg)
}
