package usecases

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/arjunmehra/skyfare/internal/core/domain"
	"github.com/arjunmehra/skyfare/internal/core/ports"
)

// FlightService handles catalog lookups and search.
type FlightService struct {
	flights ports.FlightRepository
	cache   ports.CacheService
}

// NewFlightService creates a new FlightService.
func NewFlightService(flights ports.FlightRepository, cache ports.CacheService) *FlightService {
	return &FlightService{flights: flights, cache: cache}
}

// Search returns flights matching source and destination codes, and
// optionally departing on the given day. Codes are case-insensitive.
func (s *FlightService) Search(ctx context.Context, source, destination string, day *time.Time) ([]domain.Flight, error) {
	source = strings.ToUpper(strings.TrimSpace(source))
	destination = strings.ToUpper(strings.TrimSpace(destination))
	if source == "" || destination == "" {
		return nil, fmt.Errorf("%w: source and destination are required", domain.ErrValidation)
	}
	return s.flights.Search(ctx, source, destination, day)
}

// GetByID returns a single flight with its seat map.
func (s *FlightService) GetByID(ctx context.Context, id string) (*domain.Flight, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: flight id is required", domain.ErrValidation)
	}

	cacheKey := flightCacheKey(id)
	if s.cache != nil {
		if data, err := s.cache.Get(ctx, cacheKey); err == nil {
			var f domain.Flight
			if err := json.Unmarshal(data, &f); err == nil {
				return &f, nil
			}
		}
	}

	f, err := s.flights.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// Short TTL: seat flags go stale the moment someone books, and the
	// booking path deletes this key on commit.
	if s.cache != nil {
		if data, err := json.Marshal(f); err == nil {
			_ = s.cache.Set(ctx, cacheKey, data, 30)
		}
	}

	return f, nil
}

func flightCacheKey(id string) string {
	return "flights:id:" + id
}
