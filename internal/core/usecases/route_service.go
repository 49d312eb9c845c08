package usecases

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/arjunmehra/skyfare/internal/core/domain"
	"github.com/arjunmehra/skyfare/internal/core/ports"
	"github.com/arjunmehra/skyfare/internal/core/routing"
	"github.com/arjunmehra/skyfare/internal/pkg/metrics"
)

const catalogCacheKey = "flights:catalog"

// RouteService finds cheapest multi-hop itineraries. Each query builds
// a fresh graph from the current catalog snapshot; resolution is pure
// and read-only, so concurrent queries need no coordination.
type RouteService struct {
	flights ports.FlightRepository
	cache   ports.CacheService
}

// NewRouteService creates a new RouteService.
func NewRouteService(flights ports.FlightRepository, cache ports.CacheService) *RouteService {
	return &RouteService{flights: flights, cache: cache}
}

// Cheapest returns the minimum-total-price itinerary between two
// airports. Codes are case-insensitive and normalized upper-case.
func (s *RouteService) Cheapest(ctx context.Context, source, destination string) (*routing.Itinerary, error) {
	source = strings.ToUpper(strings.TrimSpace(source))
	destination = strings.ToUpper(strings.TrimSpace(destination))
	if source == "" || destination == "" {
		return nil, fmt.Errorf("%w: source and destination are required", domain.ErrValidation)
	}

	flights, err := s.catalogSnapshot(ctx)
	if err != nil {
		return nil, err
	}

	timer := metrics.GraphBuildTimer()
	graph := routing.BuildGraph(flights)
	timer.ObserveDuration()

	it, err := graph.Cheapest(source, destination)
	if err != nil {
		metrics.RouteQueriesTotal.WithLabelValues("not_found").Inc()
		return nil, err
	}

	metrics.RouteQueriesTotal.WithLabelValues("ok").Inc()
	return it, nil
}

// catalogSnapshot loads the full flight set, read-through cached. Seat
// state is irrelevant here (the graph only uses price and topology),
// so a slightly stale snapshot is harmless.
func (s *RouteService) catalogSnapshot(ctx context.Context) ([]domain.Flight, error) {
	if s.cache != nil {
		if data, err := s.cache.Get(ctx, catalogCacheKey); err == nil {
			var flights []domain.Flight
			if err := json.Unmarshal(data, &flights); err == nil {
				metrics.CacheHits.WithLabelValues("catalog").Inc()
				return flights, nil
			}
		}
		metrics.CacheMisses.WithLabelValues("catalog").Inc()
	}

	flights, err := s.flights.List(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if data, err := json.Marshal(flights); err == nil {
			_ = s.cache.Set(ctx, catalogCacheKey, data, 60)
		}
	}

	return flights, nil
}
