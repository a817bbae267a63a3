// Package asyncx provides small generic concurrency helpers: settle-all
// fan-out, deadline enforcement, and retry with exponential backoff.
//
// These primitives carry the concurrency policy for plan generation: the
// per-traveler fan-out uses AllSettled so one traveler's failure never tears
// down the others, and the job runner races the whole generation against a
// deadline with WithTimeout.
package asyncx
