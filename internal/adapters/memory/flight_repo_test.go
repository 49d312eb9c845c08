package memory_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/arjunmehra/skyfare/internal/adapters/memory"
	"github.com/arjunmehra/skyfare/internal/core/domain"
)

func newFlight(num, source, destination string, dep time.Time, seats ...string) *domain.Flight {
	f := &domain.Flight{
		FlightNumber:  num,
		Airline:       "IndiGo",
		Source:        source,
		Destination:   destination,
		DepartureTime: dep,
		ArrivalTime:   dep.Add(2 * time.Hour),
		Price:         4000,
	}
	for _, s := range seats {
		f.Seats = append(f.Seats, domain.Seat{SeatNumber: s})
	}
	return f
}

func TestFlightRepo_InsertAndGet(t *testing.T) {
	repo := memory.NewFlightRepo()
	f := newFlight("6E-101", "DEL", "MUM", time.Now(), "1A", "1B")

	if err := repo.Insert(context.Background(), f); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if f.ID == "" {
		t.Fatal("expected generated ID")
	}

	got, err := repo.GetByID(context.Background(), f.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.FlightNumber != "6E-101" {
		t.Errorf("expected 6E-101, got %s", got.FlightNumber)
	}
	if len(got.Seats) != 2 {
		t.Errorf("expected 2 seats, got %d", len(got.Seats))
	}
}

func TestFlightRepo_GetByID_NotFound(t *testing.T) {
	repo := memory.NewFlightRepo()
	_, err := repo.GetByID(context.Background(), "missing")
	if !errors.Is(err, domain.ErrFlightNotFound) {
		t.Fatalf("expected ErrFlightNotFound, got %v", err)
	}
}

func TestFlightRepo_Search_DayFilter(t *testing.T) {
	repo := memory.NewFlightRepo()
	day1 := time.Date(2025, 10, 2, 9, 0, 0, 0, time.UTC)
	day2 := time.Date(2025, 10, 3, 9, 0, 0, 0, time.UTC)

	_ = repo.Insert(context.Background(), newFlight("6E-1", "DEL", "MUM", day1))
	_ = repo.Insert(context.Background(), newFlight("6E-2", "DEL", "MUM", day2))
	_ = repo.Insert(context.Background(), newFlight("6E-3", "DEL", "BLR", day1))

	all, err := repo.Search(context.Background(), "DEL", "MUM", nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(all))
	}

	filtered, err := repo.Search(context.Background(), "DEL", "MUM", &day1)
	if err != nil {
		t.Fatal(err)
	}
	if len(filtered) != 1 || filtered[0].FlightNumber != "6E-1" {
		t.Fatalf("expected only 6E-1 on day 1, got %v", filtered)
	}
}

func TestFlightRepo_ReserveSeat_ExactlyOnce(t *testing.T) {
	repo := memory.NewFlightRepo()
	f := newFlight("6E-1", "DEL", "MUM", time.Now(), "1A")
	_ = repo.Insert(context.Background(), f)

	const n = 32
	var wg sync.WaitGroup
	var mu sync.Mutex
	wins, conflicts := 0, 0

	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := repo.ReserveSeat(context.Background(), f.ID, "1A")
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				wins++
			case errors.Is(err, domain.ErrSeatTaken):
				conflicts++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	if wins != 1 {
		t.Errorf("expected 1 winner, got %d", wins)
	}
	if conflicts != n-1 {
		t.Errorf("expected %d conflicts, got %d", n-1, conflicts)
	}
}

func TestFlightRepo_ReleaseSeat(t *testing.T) {
	repo := memory.NewFlightRepo()
	f := newFlight("6E-1", "DEL", "MUM", time.Now(), "1A")
	_ = repo.Insert(context.Background(), f)

	if err := repo.ReserveSeat(context.Background(), f.ID, "1A"); err != nil {
		t.Fatal(err)
	}
	if err := repo.ReleaseSeat(context.Background(), f.ID, "1A"); err != nil {
		t.Fatal(err)
	}
	// Reservable again after release
	if err := repo.ReserveSeat(context.Background(), f.ID, "1A"); err != nil {
		t.Fatalf("expected seat reservable after release, got %v", err)
	}
}

func TestFlightRepo_ReserveSeat_UnknownSeat(t *testing.T) {
	repo := memory.NewFlightRepo()
	f := newFlight("6E-1", "DEL", "MUM", time.Now(), "1A")
	_ = repo.Insert(context.Background(), f)

	err := repo.ReserveSeat(context.Background(), f.ID, "9Z")
	if !errors.Is(err, domain.ErrSeatNotFound) {
		t.Fatalf("expected ErrSeatNotFound, got %v", err)
	}
}
