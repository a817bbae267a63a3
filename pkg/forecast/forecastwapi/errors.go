package forecastwapi

import (
	"net/http"

	"github.com/Abraxas-365/packwright/pkg/errx"
)

var (
	errorRegistry = errx.NewRegistry("WEATHERAPI")

	ErrMissingAPIKey = errorRegistry.Register(
		"MISSING_API_KEY",
		errx.TypeValidation,
		http.StatusBadRequest,
		"WeatherAPI key not provided",
	)

	ErrInvalidRange = errorRegistry.Register(
		"INVALID_RANGE",
		errx.TypeValidation,
		http.StatusBadRequest,
		"Forecast date range is invalid",
	)

	ErrAPIRequest = errorRegistry.Register(
		"API_REQUEST_FAILED",
		errx.TypeExternal,
		http.StatusBadGateway,
		"WeatherAPI request failed",
	)

	ErrAPIResponse = errorRegistry.Register(
		"API_RESPONSE_INVALID",
		errx.TypeExternal,
		http.StatusBadGateway,
		"WeatherAPI returned an unparseable response",
	)
)
