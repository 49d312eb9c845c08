package postgres

import (
	"context"
	"fmt"

	"github.com/arjunmehra/skyfare/internal/core/domain"
)

// BookingRepo implements ports.BookingRepository.
type BookingRepo struct {
	db *DB
}

// NewBookingRepo creates a new BookingRepo.
func NewBookingRepo(db *DB) *BookingRepo {
	return &BookingRepo{db: db}
}

// Create persists a booking and fills in its generated ID.
func (r *BookingRepo) Create(ctx context.Context, b *domain.Booking) error {
	err := r.db.Pool.QueryRow(ctx, `
		INSERT INTO bookings (user_id, flight_id, seat_number, status)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`, b.UserID, b.FlightID, b.SeatNumber, b.Status).Scan(&b.ID, &b.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert booking: %w", err)
	}
	return nil
}

// ListByUser returns a user's bookings, newest first, each with a
// flight summary (no seat maps).
func (r *BookingRepo) ListByUser(ctx context.Context, userID string) ([]domain.BookingWithFlight, error) {
	rows, err := r.db.Pool.Query(ctx, `
		SELECT b.id, b.user_id, b.flight_id, b.seat_number, b.status, b.created_at,
		       f.id, f.flight_number, f.airline, f.source, f.destination,
		       f.departure_time, f.arrival_time, f.price, f.created_at
		FROM bookings b
		JOIN flights f ON f.id = b.flight_id
		WHERE b.user_id = $1
		ORDER BY b.created_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bookings []domain.BookingWithFlight
	for rows.Next() {
		var bw domain.BookingWithFlight
		var f domain.Flight
		if err := rows.Scan(
			&bw.ID, &bw.UserID, &bw.FlightID, &bw.SeatNumber, &bw.Status, &bw.CreatedAt,
			&f.ID, &f.FlightNumber, &f.Airline, &f.Source, &f.Destination,
			&f.DepartureTime, &f.ArrivalTime, &f.Price, &f.CreatedAt,
		); err != nil {
			return nil, err
		}
		bw.Flight = &f
		bookings = append(bookings, bw)
	}
	return bookings, rows.Err()
}

// CountBySeat returns how many bookings reference a seat. Used by
// invariant checks; in a healthy store the answer is 0 or 1.
func (r *BookingRepo) CountBySeat(ctx context.Context, flightID, seatNumber string) (int, error) {
	var n int
	err := r.db.Pool.QueryRow(ctx, `
		SELECT count(*) FROM bookings WHERE flight_id = $1 AND seat_number = $2
	`, flightID, seatNumber).Scan(&n)
	return n, err
}
