package plangen

import (
	"net/http"

	"github.com/Abraxas-365/packwright/pkg/errx"
)

var (
	// Error registry for the plan generator
	genErrors = errx.NewRegistry("PLANGEN")

	ErrAllTravelersFailed = genErrors.Register(
		"ALL_TRAVELERS_FAILED",
		errx.TypeExternal,
		http.StatusBadGateway,
		"Failed to generate a packing list for any traveler",
	)

	ErrUnparsableResponse = genErrors.Register(
		"UNPARSABLE_RESPONSE",
		errx.TypeInternal,
		http.StatusInternalServerError,
		"Generator response did not contain valid JSON",
	)

	ErrEmptyList = genErrors.Register(
		"EMPTY_LIST",
		errx.TypeExternal,
		http.StatusBadGateway,
		"Generator returned a packing list with no items",
	)
)
