package genjobhttp

import (
	"net/http"

	"github.com/Abraxas-365/packwright/pkg/errx"
)

var httpErrors = errx.NewRegistry("GENJOB_HTTP")

var (
	ErrInvalidBody = httpErrors.Register(
		"INVALID_BODY",
		errx.TypeValidation,
		http.StatusBadRequest,
		"Request body could not be parsed",
	)
)
