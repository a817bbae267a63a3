package plan

import (
	"net/http"

	"github.com/Abraxas-365/packwright/pkg/errx"
)

var (
	planErrors = errx.NewRegistry("PLAN")

	ErrNotFound = planErrors.Register(
		"NOT_FOUND",
		errx.TypeNotFound,
		http.StatusNotFound,
		"Plan not found",
	)

	ErrInvalidRequest = planErrors.Register(
		"INVALID_REQUEST",
		errx.TypeValidation,
		http.StatusBadRequest,
		"Invalid plan generation request",
	)

	ErrStoreFailed = planErrors.Register(
		"STORE_FAILED",
		errx.TypeExternal,
		http.StatusInternalServerError,
		"Failed to persist plan",
	)
)
