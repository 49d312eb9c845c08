package usecases

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/arjunmehra/skyfare/internal/core/domain"
	"github.com/arjunmehra/skyfare/internal/core/ports"
	"github.com/arjunmehra/skyfare/internal/pkg/metrics"
)

// BookingService coordinates seat reservations. The seat flag is the
// unit of mutual exclusion: the repository's ReserveSeat is a single
// conditional write, so under N simultaneous attempts for one seat
// exactly one caller wins and the rest get domain.ErrSeatTaken.
type BookingService struct {
	flights   ports.FlightRepository
	bookings  ports.BookingRepository
	publisher ports.EventPublisher
	cache     ports.CacheService
}

// NewBookingService creates a new BookingService.
func NewBookingService(
	flights ports.FlightRepository,
	bookings ports.BookingRepository,
	publisher ports.EventPublisher,
	cache ports.CacheService,
) *BookingService {
	return &BookingService{
		flights:   flights,
		bookings:  bookings,
		publisher: publisher,
		cache:     cache,
	}
}

// Reserve books a seat for a user and returns the confirmed booking.
//
// The flag transition commits first; the booking record follows. If the
// record cannot be persisted the flag is reverted, keeping the
// invariant that a booking exists iff the seat is flagged booked. The
// seat-booked event is fired after commit and its failure never rolls
// back the reservation.
func (s *BookingService) Reserve(ctx context.Context, flightID, seatNumber, userID string) (*domain.Booking, error) {
	if flightID == "" || seatNumber == "" {
		return nil, fmt.Errorf("%w: flight id and seat number are required", domain.ErrValidation)
	}
	if userID == "" {
		return nil, fmt.Errorf("%w: user identity is required", domain.ErrValidation)
	}

	if err := s.flights.ReserveSeat(ctx, flightID, seatNumber); err != nil {
		if errors.Is(err, domain.ErrSeatTaken) {
			metrics.BookingConflictsTotal.Inc()
		}
		return nil, err
	}

	booking := &domain.Booking{
		UserID:     userID,
		FlightID:   flightID,
		SeatNumber: seatNumber,
		Status:     domain.BookingStatusConfirmed,
		CreatedAt:  time.Now(),
	}

	if err := s.bookings.Create(ctx, booking); err != nil {
		// Compensate: put the seat back so no booked-but-recordless seat
		// survives the failure.
		if relErr := s.flights.ReleaseSeat(ctx, flightID, seatNumber); relErr != nil {
			return nil, fmt.Errorf("%w: booking create failed (%v) and seat revert failed (%v)",
				domain.ErrPersistence, err, relErr)
		}
		return nil, fmt.Errorf("%w: create booking: %v", domain.ErrPersistence, err)
	}

	metrics.BookingsTotal.Inc()

	// Seat flags changed; drop the cached flight detail.
	if s.cache != nil {
		_ = s.cache.Delete(ctx, flightCacheKey(flightID))
	}

	if s.publisher != nil {
		event := &domain.SeatBookedEvent{
			FlightID:   flightID,
			SeatNumber: seatNumber,
			BookedAt:   booking.CreatedAt,
		}
		if err := s.publisher.PublishSeatBooked(ctx, event); err != nil {
			slog.Warn("seat booked event not published",
				"flight_id", flightID, "seat", seatNumber, "error", err)
		}
	}

	return booking, nil
}

// ListByUser returns the caller's bookings with flight summaries.
func (s *BookingService) ListByUser(ctx context.Context, userID string) ([]domain.BookingWithFlight, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: user identity is required", domain.ErrValidation)
	}
	return s.bookings.ListByUser(ctx, userID)
}
