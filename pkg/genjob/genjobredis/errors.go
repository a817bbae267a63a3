package genjobredis

import "github.com/Abraxas-365/packwright/pkg/errx"

var storeErrors = errx.NewRegistry("GENJOB_REDIS")

var (
	ErrRead      = storeErrors.Register("READ", errx.TypeExternal, 500, "Redis read failed")
	ErrWrite     = storeErrors.Register("WRITE", errx.TypeExternal, 500, "Redis write failed")
	ErrMarshal   = storeErrors.Register("MARSHAL", errx.TypeInternal, 500, "Failed to marshal job record")
	ErrUnmarshal = storeErrors.Register("UNMARSHAL", errx.TypeInternal, 500, "Failed to unmarshal job record")
)
