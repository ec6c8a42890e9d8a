package utils

import "errors"

var (
	ErrInvalidDayCount        = errors.New("trip day count out of range")
	ErrInvalidStartDate       = errors.New("unparseable trip start date")
	ErrCityNotFound           = errors.New("city not resolvable")
	ErrAdviseGenerationFailed = errors.New("trip advise generation failed")
	ErrLocatingFailed         = errors.New("itinerary locating failed")
)
