package ports

import (
	"context"

	"github.com/arjunmehra/skyfare/internal/core/domain"
)

// EventPublisher publishes domain events to a message broker. Consumers
// (WebSocket relay, notification fan-out) live outside the core; no
// acknowledgement or ordering is relied upon.
type EventPublisher interface {
	PublishSeatBooked(ctx context.Context, event *domain.SeatBookedEvent) error
}

// CacheService provides read-through caching.
type CacheService interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttlSeconds int) error
	Delete(ctx context.Context, key string) error
}
