package http

import (
	"github.com/nats-io/nats.go"

	"github.com/arjunmehra/skyfare/internal/adapters/postgres"
	"github.com/arjunmehra/skyfare/internal/adapters/valkey"
	"github.com/arjunmehra/skyfare/internal/core/usecases"
)

// Dependencies holds all services needed by HTTP handlers.
type Dependencies struct {
	Flights  *usecases.FlightService
	Routes   *usecases.RouteService
	Bookings *usecases.BookingService
	NATS     *nats.Conn
	DB       *postgres.DB
	Cache    *valkey.Cache
}
