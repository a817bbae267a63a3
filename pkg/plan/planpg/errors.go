package planpg

import (
	"net/http"

	"github.com/Abraxas-365/packwright/pkg/errx"
)

var (
	// Error registry for the Postgres artifact store
	storeErrors = errx.NewRegistry("PLANPG")

	ErrNotFound = storeErrors.Register(
		"NOT_FOUND",
		errx.TypeNotFound,
		http.StatusNotFound,
		"Plan artifact not found",
	)

	ErrDuplicate = storeErrors.Register(
		"DUPLICATE",
		errx.TypeConflict,
		http.StatusConflict,
		"Plan artifact already exists",
	)
)
