package domain

import "errors"

// Failure kinds surfaced by the core. Callers classify with errors.Is;
// the HTTP layer maps each to a distinct status and stable code, so a
// client can tell "fix your input" from "pick another seat" from
// "maybe retry".
var (
	// ErrValidation is a caller error: missing or malformed input. No
	// state was touched.
	ErrValidation = errors.New("invalid input")

	// ErrFlightNotFound means the flight identifier resolves to nothing.
	ErrFlightNotFound = errors.New("flight not found")

	// ErrSeatNotFound means the flight exists but has no such seat.
	ErrSeatNotFound = errors.New("seat not found")

	// ErrRouteNotFound means no sequence of flights connects the
	// requested airports, or an airport is absent from the catalog.
	ErrRouteNotFound = errors.New("no route found")

	// ErrSeatTaken means the seat was already booked, or a concurrent
	// reservation won the race. Immediate, non-retrying: picking a
	// different seat is the caller's decision.
	ErrSeatTaken = errors.New("seat already booked")

	// ErrPersistence means the storage layer failed to commit. The seat
	// invariant (booking exists iff seat booked) still holds unless the
	// wrapped message says compensation itself failed.
	ErrPersistence = errors.New("storage failure")
)
