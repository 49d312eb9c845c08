package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/arjunmehra/skyfare/internal/core/domain"
)

// BookingRepo is an in-memory ports.BookingRepository.
type BookingRepo struct {
	mu       sync.Mutex
	bookings []domain.Booking
	flights  *FlightRepo
}

// NewBookingRepo creates an empty in-memory booking repository. The
// flight repo is used to attach flight summaries in ListByUser; it may
// be nil when summaries are not needed.
func NewBookingRepo(flights *FlightRepo) *BookingRepo {
	return &BookingRepo{flights: flights}
}

// Create stores a booking, assigning an ID when absent.
func (r *BookingRepo) Create(ctx context.Context, b *domain.Booking) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	if b.CreatedAt.IsZero() {
		b.CreatedAt = time.Now()
	}

	r.mu.Lock()
	r.bookings = append(r.bookings, *b)
	r.mu.Unlock()
	return nil
}

// ListByUser returns a user's bookings, newest first.
func (r *BookingRepo) ListByUser(ctx context.Context, userID string) ([]domain.BookingWithFlight, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []domain.BookingWithFlight
	for i := len(r.bookings) - 1; i >= 0; i-- {
		b := r.bookings[i]
		if b.UserID != userID {
			continue
		}
		bw := domain.BookingWithFlight{Booking: b}
		if r.flights != nil {
			if f, err := r.flights.GetByID(ctx, b.FlightID); err == nil {
				f.Seats = nil
				bw.Flight = f
			}
		}
		out = append(out, bw)
	}
	return out, nil
}

// CountBySeat returns how many bookings reference a seat.
func (r *BookingRepo) CountBySeat(ctx context.Context, flightID, seatNumber string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := 0
	for _, b := range r.bookings {
		if b.FlightID == flightID && b.SeatNumber == seatNumber {
			n++
		}
	}
	return n, nil
}
