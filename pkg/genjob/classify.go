package genjob

import (
	"context"
	"errors"
	"strings"

	"github.com/Abraxas-365/packwright/pkg/errx"
)

var (
	transientWords  = []string{"timeout", "timed out", "connection", "network", "temporary", "unavailable", "overloaded", "reset by peer", "eof"}
	apiErrorWords   = []string{"api", "rate limit", "rate_limit", "quota", "unauthorized", "forbidden"}
	validationWords = []string{"validation", "invalid", "required", "malformed"}
)

// Classify maps a failure onto one of the five error kinds. It is pure and
// total: any non-nil error yields exactly one kind, never a panic.
//
// Structured errors are inspected first, then the message heuristics the
// engine has always used. A message merely containing "timeout" classifies
// as transient; KindTimeout is reserved for an actually exceeded deadline.
func Classify(err error) Kind {
	if err == nil {
		return KindUnknown
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return KindTimeout
	}

	var e *errx.Error
	if errors.As(err, &e) {
		switch e.Type {
		case errx.TypeValidation:
			return KindValidation
		case errx.TypeTimeout:
			return KindTimeout
		}
	}

	msg := strings.ToLower(err.Error())

	if containsAny(msg, transientWords) {
		return KindTransient
	}
	if containsAny(msg, apiErrorWords) {
		return KindAPIError
	}
	if containsAny(msg, validationWords) {
		return KindValidation
	}

	return KindUnknown
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}
