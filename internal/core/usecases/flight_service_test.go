package usecases_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/arjunmehra/skyfare/internal/core/domain"
	"github.com/arjunmehra/skyfare/internal/core/usecases"
)

func TestFlightService_Search_NormalizesCodes(t *testing.T) {
	var gotSource, gotDestination string
	repo := &mockFlightRepo{
		searchFn: func(ctx context.Context, source, destination string, day *time.Time) ([]domain.Flight, error) {
			gotSource, gotDestination = source, destination
			return []domain.Flight{{ID: "f1"}}, nil
		},
	}
	svc := usecases.NewFlightService(repo, nil)

	flights, err := svc.Search(context.Background(), " del ", "mum", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotSource != "DEL" || gotDestination != "MUM" {
		t.Errorf("expected normalized DEL/MUM, got %s/%s", gotSource, gotDestination)
	}
	if len(flights) != 1 {
		t.Errorf("expected 1 flight, got %d", len(flights))
	}
}

func TestFlightService_Search_Validation(t *testing.T) {
	svc := usecases.NewFlightService(&mockFlightRepo{}, nil)
	_, err := svc.Search(context.Background(), "DEL", "  ", nil)
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestFlightService_Search_DayFilterPassedThrough(t *testing.T) {
	day := time.Date(2025, 10, 2, 0, 0, 0, 0, time.UTC)
	var gotDay *time.Time
	repo := &mockFlightRepo{
		searchFn: func(ctx context.Context, source, destination string, d *time.Time) ([]domain.Flight, error) {
			gotDay = d
			return nil, nil
		},
	}
	svc := usecases.NewFlightService(repo, nil)

	if _, err := svc.Search(context.Background(), "DEL", "MUM", &day); err != nil {
		t.Fatal(err)
	}
	if gotDay == nil || !gotDay.Equal(day) {
		t.Errorf("expected day filter %v, got %v", day, gotDay)
	}
}

func TestFlightService_GetByID_Success(t *testing.T) {
	repo := &mockFlightRepo{
		getByIDFn: func(ctx context.Context, id string) (*domain.Flight, error) {
			return &domain.Flight{ID: id, FlightNumber: "AI-101"}, nil
		},
	}
	svc := usecases.NewFlightService(repo, nil)

	f, err := svc.GetByID(context.Background(), "f1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.FlightNumber != "AI-101" {
		t.Errorf("expected AI-101, got %s", f.FlightNumber)
	}
}

func TestFlightService_GetByID_NotFound(t *testing.T) {
	svc := usecases.NewFlightService(&mockFlightRepo{}, nil)
	_, err := svc.GetByID(context.Background(), "missing")
	if !errors.Is(err, domain.ErrFlightNotFound) {
		t.Fatalf("expected ErrFlightNotFound, got %v", err)
	}
}

func TestFlightService_GetByID_EmptyID(t *testing.T) {
	svc := usecases.NewFlightService(&mockFlightRepo{}, nil)
	_, err := svc.GetByID(context.Background(), "")
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestFlightService_GetByID_ReadThroughCache(t *testing.T) {
	calls := 0
	repo := &mockFlightRepo{
		getByIDFn: func(ctx context.Context, id string) (*domain.Flight, error) {
			calls++
			return &domain.Flight{ID: id, FlightNumber: "AI-101"}, nil
		},
	}
	svc := usecases.NewFlightService(repo, newMockCache())

	if _, err := svc.GetByID(context.Background(), "f1"); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.GetByID(context.Background(), "f1"); err != nil {
		t.Fatal(err)
	}

	if calls != 1 {
		t.Errorf("expected 1 repository load, got %d", calls)
	}
}
