package usecases_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/arjunmehra/skyfare/internal/adapters/memory"
	"github.com/arjunmehra/skyfare/internal/core/domain"
	"github.com/arjunmehra/skyfare/internal/core/usecases"
)

// --- Mock BookingRepository ---

type mockBookingRepo struct {
	createFn     func(ctx context.Context, b *domain.Booking) error
	listByUserFn func(ctx context.Context, userID string) ([]domain.BookingWithFlight, error)
}

func (m *mockBookingRepo) Create(ctx context.Context, b *domain.Booking) error {
	if m.createFn != nil {
		return m.createFn(ctx, b)
	}
	return nil
}

func (m *mockBookingRepo) ListByUser(ctx context.Context, userID string) ([]domain.BookingWithFlight, error) {
	if m.listByUserFn != nil {
		return m.listByUserFn(ctx, userID)
	}
	return nil, nil
}

func (m *mockBookingRepo) CountBySeat(ctx context.Context, flightID, seatNumber string) (int, error) {
	return 0, nil
}

// --- Mock EventPublisher ---

type mockPublisher struct {
	mu     sync.Mutex
	events []*domain.SeatBookedEvent
	err    error
}

func (m *mockPublisher) PublishSeatBooked(ctx context.Context, e *domain.SeatBookedEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.events = append(m.events, e)
	return nil
}

// --- Helpers ---

func seedFlight(t *testing.T, repo *memory.FlightRepo, seats ...string) *domain.Flight {
	t.Helper()
	f := &domain.Flight{
		FlightNumber:  "AI-101",
		Airline:       "Air India",
		Source:        "DEL",
		Destination:   "MUM",
		DepartureTime: time.Date(2025, 10, 2, 9, 0, 0, 0, time.UTC),
		ArrivalTime:   time.Date(2025, 10, 2, 11, 0, 0, 0, time.UTC),
		Price:         5000,
	}
	for _, s := range seats {
		f.Seats = append(f.Seats, domain.Seat{SeatNumber: s})
	}
	if err := repo.Insert(context.Background(), f); err != nil {
		t.Fatalf("seed flight: %v", err)
	}
	return f
}

// --- Tests ---

func TestBookingService_Reserve_Success(t *testing.T) {
	flights := memory.NewFlightRepo()
	bookings := memory.NewBookingRepo(flights)
	pub := &mockPublisher{}
	svc := usecases.NewBookingService(flights, bookings, pub, nil)

	f := seedFlight(t, flights, "1A", "1B")

	b, err := svc.Reserve(context.Background(), f.ID, "1A", "u1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b.Status != domain.BookingStatusConfirmed {
		t.Errorf("expected CONFIRMED, got %s", b.Status)
	}
	if b.SeatNumber != "1A" {
		t.Errorf("expected seat 1A, got %s", b.SeatNumber)
	}

	// The seat flag must be flipped
	got, _ := flights.GetByID(context.Background(), f.ID)
	if s := got.Seat("1A"); s == nil || !s.Booked {
		t.Error("expected seat 1A to be booked")
	}
	if s := got.Seat("1B"); s == nil || s.Booked {
		t.Error("expected seat 1B to stay free")
	}

	// Event fired after commit
	if len(pub.events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(pub.events))
	}
	if pub.events[0].FlightID != f.ID || pub.events[0].SeatNumber != "1A" {
		t.Errorf("unexpected event payload: %+v", pub.events[0])
	}
}

func TestBookingService_Reserve_SeatTaken(t *testing.T) {
	flights := memory.NewFlightRepo()
	bookings := memory.NewBookingRepo(flights)
	svc := usecases.NewBookingService(flights, bookings, nil, nil)

	f := seedFlight(t, flights, "1A")

	if _, err := svc.Reserve(context.Background(), f.ID, "1A", "u1"); err != nil {
		t.Fatalf("first reserve failed: %v", err)
	}

	_, err := svc.Reserve(context.Background(), f.ID, "1A", "u2")
	if !errors.Is(err, domain.ErrSeatTaken) {
		t.Fatalf("expected ErrSeatTaken, got %v", err)
	}

	// Only the winner's booking exists
	n, _ := bookings.CountBySeat(context.Background(), f.ID, "1A")
	if n != 1 {
		t.Errorf("expected exactly 1 booking for the seat, got %d", n)
	}
}

func TestBookingService_Reserve_Concurrent_ExactlyOneWins(t *testing.T) {
	flights := memory.NewFlightRepo()
	bookings := memory.NewBookingRepo(flights)
	svc := usecases.NewBookingService(flights, bookings, &mockPublisher{}, nil)

	f := seedFlight(t, flights, "1A")

	const n = 64
	var wg sync.WaitGroup
	var successes, conflicts int32
	var mu sync.Mutex

	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := svc.Reserve(context.Background(), f.ID, "1A", fmt.Sprintf("user-%d", i))
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				successes++
			case errors.Is(err, domain.ErrSeatTaken):
				conflicts++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}(i)
	}
	wg.Wait()

	if successes != 1 {
		t.Errorf("expected exactly 1 success, got %d", successes)
	}
	if conflicts != n-1 {
		t.Errorf("expected %d conflicts, got %d", n-1, conflicts)
	}

	count, _ := bookings.CountBySeat(context.Background(), f.ID, "1A")
	if count != 1 {
		t.Errorf("expected exactly 1 booking record, got %d", count)
	}
}

func TestBookingService_Reserve_DistinctSeatsDoNotConflict(t *testing.T) {
	flights := memory.NewFlightRepo()
	bookings := memory.NewBookingRepo(flights)
	svc := usecases.NewBookingService(flights, bookings, nil, nil)

	f := seedFlight(t, flights, "1A", "1B", "1C", "1D")

	var wg sync.WaitGroup
	errs := make(chan error, 4)
	for _, seat := range []string{"1A", "1B", "1C", "1D"} {
		wg.Add(1)
		go func(seat string) {
			defer wg.Done()
			_, err := svc.Reserve(context.Background(), f.ID, seat, "user-"+seat)
			errs <- err
		}(seat)
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		if err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	}
}

func TestBookingService_Reserve_CompensatesOnCreateFailure(t *testing.T) {
	flights := memory.NewFlightRepo()
	failing := &mockBookingRepo{
		createFn: func(ctx context.Context, b *domain.Booking) error {
			return errors.New("insert failed")
		},
	}
	svc := usecases.NewBookingService(flights, failing, nil, nil)

	f := seedFlight(t, flights, "1A")

	_, err := svc.Reserve(context.Background(), f.ID, "1A", "u1")
	if !errors.Is(err, domain.ErrPersistence) {
		t.Fatalf("expected ErrPersistence, got %v", err)
	}

	// The seat must be free again: no booked seat without a booking record
	got, _ := flights.GetByID(context.Background(), f.ID)
	if s := got.Seat("1A"); s == nil || s.Booked {
		t.Error("expected seat 1A to be released after failed create")
	}

	// And a retry must succeed
	ok := memory.NewBookingRepo(flights)
	svc2 := usecases.NewBookingService(flights, ok, nil, nil)
	if _, err := svc2.Reserve(context.Background(), f.ID, "1A", "u1"); err != nil {
		t.Fatalf("retry after compensation failed: %v", err)
	}
}

func TestBookingService_Reserve_UnknownFlight(t *testing.T) {
	flights := memory.NewFlightRepo()
	svc := usecases.NewBookingService(flights, memory.NewBookingRepo(flights), nil, nil)

	_, err := svc.Reserve(context.Background(), "no-such-flight", "1A", "u1")
	if !errors.Is(err, domain.ErrFlightNotFound) {
		t.Fatalf("expected ErrFlightNotFound, got %v", err)
	}
}

func TestBookingService_Reserve_UnknownSeat(t *testing.T) {
	flights := memory.NewFlightRepo()
	svc := usecases.NewBookingService(flights, memory.NewBookingRepo(flights), nil, nil)

	f := seedFlight(t, flights, "1A")

	_, err := svc.Reserve(context.Background(), f.ID, "99Z", "u1")
	if !errors.Is(err, domain.ErrSeatNotFound) {
		t.Fatalf("expected ErrSeatNotFound, got %v", err)
	}
}

func TestBookingService_Reserve_Validation(t *testing.T) {
	svc := usecases.NewBookingService(memory.NewFlightRepo(), memory.NewBookingRepo(nil), nil, nil)

	cases := []struct {
		name                         string
		flightID, seatNumber, userID string
	}{
		{"missing flight", "", "1A", "u1"},
		{"missing seat", "f1", "", "u1"},
		{"missing user", "f1", "1A", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Reserve(context.Background(), tc.flightID, tc.seatNumber, tc.userID)
			if !errors.Is(err, domain.ErrValidation) {
				t.Errorf("expected ErrValidation, got %v", err)
			}
		})
	}
}

func TestBookingService_Reserve_PublisherFailureDoesNotRollBack(t *testing.T) {
	flights := memory.NewFlightRepo()
	bookings := memory.NewBookingRepo(flights)
	pub := &mockPublisher{err: errors.New("broker down")}
	svc := usecases.NewBookingService(flights, bookings, pub, nil)

	f := seedFlight(t, flights, "1A")

	b, err := svc.Reserve(context.Background(), f.ID, "1A", "u1")
	if err != nil {
		t.Fatalf("reserve must survive publish failure: %v", err)
	}
	if b.Status != domain.BookingStatusConfirmed {
		t.Errorf("expected CONFIRMED, got %s", b.Status)
	}

	got, _ := flights.GetByID(context.Background(), f.ID)
	if s := got.Seat("1A"); s == nil || !s.Booked {
		t.Error("expected seat to stay booked despite publish failure")
	}
}

func TestBookingService_ListByUser(t *testing.T) {
	flights := memory.NewFlightRepo()
	bookings := memory.NewBookingRepo(flights)
	svc := usecases.NewBookingService(flights, bookings, nil, nil)

	f := seedFlight(t, flights, "1A", "1B")

	if _, err := svc.Reserve(context.Background(), f.ID, "1A", "u1"); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Reserve(context.Background(), f.ID, "1B", "u2"); err != nil {
		t.Fatal(err)
	}

	mine, err := svc.ListByUser(context.Background(), "u1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(mine) != 1 {
		t.Fatalf("expected 1 booking, got %d", len(mine))
	}
	if mine[0].SeatNumber != "1A" {
		t.Errorf("expected seat 1A, got %s", mine[0].SeatNumber)
	}
	if mine[0].Flight == nil || mine[0].Flight.FlightNumber != "AI-101" {
		t.Error("expected flight summary attached")
	}
}

func TestBookingService_ListByUser_EmptyUser(t *testing.T) {
	svc := usecases.NewBookingService(memory.NewFlightRepo(), memory.NewBookingRepo(nil), nil, nil)
	_, err := svc.ListByUser(context.Background(), "")
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}
