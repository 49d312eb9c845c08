package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/arjunmehra/skyfare/internal/core/domain"
)

// FlightRepo implements ports.FlightRepository with pgx.
type FlightRepo struct {
	db *DB
}

// NewFlightRepo creates a new FlightRepo.
func NewFlightRepo(db *DB) *FlightRepo {
	return &FlightRepo{db: db}
}

// Insert stores a flight and its seat list.
func (r *FlightRepo) Insert(ctx context.Context, f *domain.Flight) error {
	err := r.db.Pool.QueryRow(ctx, `
		INSERT INTO flights (flight_number, airline, source, destination, departure_time, arrival_time, price)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at
	`, f.FlightNumber, f.Airline, f.Source, f.Destination,
		f.DepartureTime, f.ArrivalTime, f.Price).Scan(&f.ID, &f.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert flight: %w", err)
	}

	batch := &pgx.Batch{}
	for _, s := range f.Seats {
		batch.Queue(`
			INSERT INTO seats (flight_id, seat_number, booked)
			VALUES ($1, $2, $3)
		`, f.ID, s.SeatNumber, s.Booked)
	}
	br := r.db.Pool.SendBatch(ctx, batch)
	defer br.Close()
	for range f.Seats {
		if _, err := br.Exec(); err != nil {
			return fmt.Errorf("insert seats: %w", err)
		}
	}
	return nil
}

// GetByID returns a flight with its seat map ordered by seat number.
func (r *FlightRepo) GetByID(ctx context.Context, id string) (*domain.Flight, error) {
	var f domain.Flight
	err := r.db.Pool.QueryRow(ctx, `
		SELECT id, flight_number, airline, source, destination,
		       departure_time, arrival_time, price, created_at
		FROM flights WHERE id = $1
	`, id).Scan(
		&f.ID, &f.FlightNumber, &f.Airline, &f.Source, &f.Destination,
		&f.DepartureTime, &f.ArrivalTime, &f.Price, &f.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrFlightNotFound
	}
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Pool.Query(ctx, `
		SELECT seat_number, booked FROM seats
		WHERE flight_id = $1 ORDER BY id
	`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var s domain.Seat
		if err := rows.Scan(&s.SeatNumber, &s.Booked); err != nil {
			return nil, err
		}
		f.Seats = append(f.Seats, s)
	}
	return &f, rows.Err()
}

// List returns the full catalog without seat maps; the route graph
// only needs prices and airport codes.
func (r *FlightRepo) List(ctx context.Context) ([]domain.Flight, error) {
	rows, err := r.db.Pool.Query(ctx, `
		SELECT id, flight_number, airline, source, destination,
		       departure_time, arrival_time, price, created_at
		FROM flights
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanFlights(rows)
}

// Search filters by source/destination and optionally by departure day.
func (r *FlightRepo) Search(ctx context.Context, source, destination string, day *time.Time) ([]domain.Flight, error) {
	query := `
		SELECT id, flight_number, airline, source, destination,
		       departure_time, arrival_time, price, created_at
		FROM flights
		WHERE source = $1 AND destination = $2`
	args := []interface{}{source, destination}

	if day != nil {
		start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
		query += ` AND departure_time >= $3 AND departure_time < $4`
		args = append(args, start, start.Add(24*time.Hour))
	}
	query += ` ORDER BY departure_time`

	rows, err := r.db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanFlights(rows)
}

// ReserveSeat flips the booked flag with a single conditional write.
// The WHERE clause is the compare-and-swap: zero rows affected means
// the seat was gone or already booked, disambiguated afterwards.
func (r *FlightRepo) ReserveSeat(ctx context.Context, flightID, seatNumber string) error {
	tag, err := r.db.Pool.Exec(ctx, `
		UPDATE seats SET booked = TRUE
		WHERE flight_id = $1 AND seat_number = $2 AND booked = FALSE
	`, flightID, seatNumber)
	if err != nil {
		return fmt.Errorf("%w: reserve seat: %v", domain.ErrPersistence, err)
	}
	if tag.RowsAffected() == 1 {
		return nil
	}

	var flightExists, seatExists bool
	err = r.db.Pool.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM flights WHERE id = $1),
		       EXISTS (SELECT 1 FROM seats WHERE flight_id = $1 AND seat_number = $2)
	`, flightID, seatNumber).Scan(&flightExists, &seatExists)
	if err != nil {
		return fmt.Errorf("%w: reserve seat lookup: %v", domain.ErrPersistence, err)
	}
	if !flightExists {
		return domain.ErrFlightNotFound
	}
	if !seatExists {
		return domain.ErrSeatNotFound
	}
	return domain.ErrSeatTaken
}

// ReleaseSeat reverts a reservation. Compensation path only.
func (r *FlightRepo) ReleaseSeat(ctx context.Context, flightID, seatNumber string) error {
	_, err := r.db.Pool.Exec(ctx, `
		UPDATE seats SET booked = FALSE
		WHERE flight_id = $1 AND seat_number = $2 AND booked = TRUE
	`, flightID, seatNumber)
	if err != nil {
		return fmt.Errorf("%w: release seat: %v", domain.ErrPersistence, err)
	}
	return nil
}

func scanFlights(rows pgx.Rows) ([]domain.Flight, error) {
	var flights []domain.Flight
	for rows.Next() {
		var f domain.Flight
		if err := rows.Scan(
			&f.ID, &f.FlightNumber, &f.Airline, &f.Source, &f.Destination,
			&f.DepartureTime, &f.ArrivalTime, &f.Price, &f.CreatedAt,
		); err != nil {
			return nil, err
		}
		flights = append(flights, f)
	}
	return flights, rows.Err()
}
