package ports

import (
	"context"
	"time"

	"github.com/arjunmehra/skyfare/internal/core/domain"
)

// FlightRepository persists the flight catalog and owns the seat flags.
type FlightRepository interface {
	Insert(ctx context.Context, flight *domain.Flight) error
	GetByID(ctx context.Context, id string) (*domain.Flight, error)
	// List returns the full catalog snapshot the route graph is built
	// from. Seat lists are not required to be populated.
	List(ctx context.Context) ([]domain.Flight, error)
	// Search filters by source/destination codes and, when day is
	// non-nil, by departures on that calendar day.
	Search(ctx context.Context, source, destination string, day *time.Time) ([]domain.Flight, error)

	// ReserveSeat atomically transitions the seat from free to booked.
	// Exactly one of N concurrent calls for the same seat succeeds; the
	// rest get domain.ErrSeatTaken. Missing flight or seat yields the
	// matching not-found error.
	ReserveSeat(ctx context.Context, flightID, seatNumber string) error
	// ReleaseSeat reverts a reservation whose booking could not be
	// persisted. Compensation only; never exposed as an API operation.
	ReleaseSeat(ctx context.Context, flightID, seatNumber string) error
}

// BookingRepository persists booking records.
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) error
	ListByUser(ctx context.Context, userID string) ([]domain.BookingWithFlight, error)
	CountBySeat(ctx context.Context, flightID, seatNumber string) (int, error)
}
