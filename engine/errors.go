/*
errors.go - Error types for the engine

PURPOSE:
  The engine degrades gracefully: nothing here aborts a batch. The one
  signal callers must be able to distinguish is "we do not know the price"
  (ErrNoRateMatch) from "the price is zero" (a plain zero decimal), so the
  unmatched case is an error value rather than a sentinel amount.

SEE ALSO:
  - pricing.go: where these errors are produced
*/
package engine

import (
	"errors"
	"fmt"
)

// ErrNoRateMatch is returned when no catalog row prices an appointment.
// Deliberately distinct from a zero price: an unverified pet-count match
// would silently misprice, so the resolver refuses to guess.
var ErrNoRateMatch = errors.New("no matching catalog rate")

// NoRateMatchError carries the appointment fields the match ran on.
type NoRateMatchError struct {
	ServiceType  string
	Minutes      int
	NumberOfPets string

	// EndTimeBased is true when the appointment has no duration at all;
	// such appointments never price.
	EndTimeBased bool
}

func (e *NoRateMatchError) Error() string {
	if e.EndTimeBased {
		return fmt.Sprintf("no rate for %s: end-time-based appointments have no charge block", e.ServiceType)
	}
	return fmt.Sprintf("no rate for %s, %d minutes, %q", e.ServiceType, e.Minutes, e.NumberOfPets)
}

func (e *NoRateMatchError) Unwrap() error {
	return ErrNoRateMatch
}
