// Package memory provides in-memory repository implementations used by
// tests and local development. Semantics mirror the postgres adapters,
// including the atomic seat transition.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/arjunmehra/skyfare/internal/core/domain"
)

// seatState carries its own lock so reservations on one seat never
// serialize against other seats or other flights.
type seatState struct {
	mu     sync.Mutex
	booked bool
}

type flightRecord struct {
	flight domain.Flight
	seats  map[string]*seatState
	order  []string
}

// FlightRepo is an in-memory ports.FlightRepository.
type FlightRepo struct {
	mu      sync.RWMutex
	flights map[string]*flightRecord
}

// NewFlightRepo creates an empty in-memory flight repository.
func NewFlightRepo() *FlightRepo {
	return &FlightRepo{flights: make(map[string]*flightRecord)}
}

// Insert stores a flight, assigning an ID when absent.
func (r *FlightRepo) Insert(ctx context.Context, f *domain.Flight) error {
	if f.ID == "" {
		f.ID = uuid.NewString()
	}
	if f.CreatedAt.IsZero() {
		f.CreatedAt = time.Now()
	}

	rec := &flightRecord{
		flight: *f,
		seats:  make(map[string]*seatState, len(f.Seats)),
	}
	rec.flight.Seats = nil
	for _, s := range f.Seats {
		rec.seats[s.SeatNumber] = &seatState{booked: s.Booked}
		rec.order = append(rec.order, s.SeatNumber)
	}

	r.mu.Lock()
	r.flights[f.ID] = rec
	r.mu.Unlock()
	return nil
}

// GetByID returns a copy of the flight with its current seat map.
func (r *FlightRepo) GetByID(ctx context.Context, id string) (*domain.Flight, error) {
	r.mu.RLock()
	rec, ok := r.flights[id]
	r.mu.RUnlock()
	if !ok {
		return nil, domain.ErrFlightNotFound
	}

	f := rec.flight
	f.Seats = make([]domain.Seat, 0, len(rec.order))
	for _, num := range rec.order {
		st := rec.seats[num]
		st.mu.Lock()
		booked := st.booked
		st.mu.Unlock()
		f.Seats = append(f.Seats, domain.Seat{SeatNumber: num, Booked: booked})
	}
	return &f, nil
}

// List returns every flight without seat maps, in stable ID order.
func (r *FlightRepo) List(ctx context.Context) ([]domain.Flight, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	flights := make([]domain.Flight, 0, len(r.flights))
	for _, rec := range r.flights {
		flights = append(flights, rec.flight)
	}
	sort.Slice(flights, func(i, j int) bool { return flights[i].ID < flights[j].ID })
	return flights, nil
}

// Search filters by exact source/destination and optional departure day.
func (r *FlightRepo) Search(ctx context.Context, source, destination string, day *time.Time) ([]domain.Flight, error) {
	all, err := r.List(ctx)
	if err != nil {
		return nil, err
	}

	var out []domain.Flight
	for _, f := range all {
		if f.Source != source || f.Destination != destination {
			continue
		}
		if day != nil {
			y1, m1, d1 := f.DepartureTime.Date()
			y2, m2, d2 := day.Date()
			if y1 != y2 || m1 != m2 || d1 != d2 {
				continue
			}
		}
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DepartureTime.Before(out[j].DepartureTime) })
	return out, nil
}

// ReserveSeat takes the seat's own lock and performs the free->booked
// transition, so exactly one of any number of concurrent callers wins.
func (r *FlightRepo) ReserveSeat(ctx context.Context, flightID, seatNumber string) error {
	st, err := r.seat(flightID, seatNumber)
	if err != nil {
		return err
	}

	st.mu.Lock()
	defer st.mu.Unlock()
	if st.booked {
		return domain.ErrSeatTaken
	}
	st.booked = true
	return nil
}

// ReleaseSeat reverts a reservation. Compensation path only.
func (r *FlightRepo) ReleaseSeat(ctx context.Context, flightID, seatNumber string) error {
	st, err := r.seat(flightID, seatNumber)
	if err != nil {
		return err
	}

	st.mu.Lock()
	st.booked = false
	st.mu.Unlock()
	return nil
}

func (r *FlightRepo) seat(flightID, seatNumber string) (*seatState, error) {
	r.mu.RLock()
	rec, ok := r.flights[flightID]
	r.mu.RUnlock()
	if !ok {
		return nil, domain.ErrFlightNotFound
	}
	st, ok := rec.seats[seatNumber]
	if !ok {
		return nil, domain.ErrSeatNotFound
	}
	return st, nil
}
