package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/arjunmehra/skyfare/internal/core/routing"
)

// SearchFlightsHandler lists flights between two airports, optionally
// filtered to a single departure day.
// GET /v1/flights/search?source=DEL&destination=MUM&date=2025-10-02
func SearchFlightsHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		source := c.Query("source")
		destination := c.Query("destination")
		if source == "" || destination == "" {
			return errBadRequest(c, "source and destination are required")
		}

		var day *time.Time
		if raw := c.Query("date"); raw != "" {
			t, err := time.Parse("2006-01-02", raw)
			if err != nil {
				return errBadRequest(c, "date must be YYYY-MM-DD")
			}
			day = &t
		}

		flights, err := deps.Flights.Search(c.Context(), source, destination, day)
		if err != nil {
			return domainError(c, err)
		}

		// Apply offset/limit pagination on the full list
		offset := c.QueryInt("offset", 0)
		limit := c.QueryInt("limit", 100)
		if offset < 0 {
			offset = 0
		}
		if limit <= 0 || limit > 200 {
			limit = 100
		}

		total := len(flights)
		if offset >= total {
			flights = nil
		} else {
			end := offset + limit
			if end > total {
				end = total
			}
			flights = flights[offset:end]
		}

		pg := Pagination{Offset: offset, Limit: limit, Total: total}
		SetLinkHeaders(c, pg)
		c.Set("Cache-Control", "public, max-age=60")
		return c.JSON(PaginatedResponse{Data: flights, Pagination: pg})
	}
}

// GetFlightHandler returns a single flight with its seat map.
func GetFlightHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if id == "" {
			return errBadRequest(c, "flight id is required")
		}
		flight, err := deps.Flights.GetByID(c.Context(), id)
		if err != nil {
			return domainError(c, err)
		}
		return c.JSON(flight)
	}
}

// CheapestRouteHandler resolves the minimum-price itinerary between two
// airports, allowing connections.
// GET /v1/flights/route?source=KOL&destination=DEL
func CheapestRouteHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		source := c.Query("source")
		destination := c.Query("destination")
		if source == "" || destination == "" {
			return errBadRequest(c, "source and destination are required")
		}

		itinerary, err := deps.Routes.Cheapest(c.Context(), source, destination)
		if err != nil {
			return domainError(c, err)
		}

		return c.JSON(itineraryResponse(itinerary))
	}
}

// itineraryResponse formats an itinerary with per-leg flight summaries.
func itineraryResponse(it *routing.Itinerary) fiber.Map {
	type legResp struct {
		FlightID      string  `json:"flight_id"`
		FlightNumber  string  `json:"flight_number"`
		Airline       string  `json:"airline"`
		Source        string  `json:"source"`
		Destination   string  `json:"destination"`
		DepartureTime string  `json:"departure_time"`
		ArrivalTime   string  `json:"arrival_time"`
		Price         float64 `json:"price"`
	}

	legs := make([]legResp, 0, len(it.Legs))
	for _, l := range it.Legs {
		legs = append(legs, legResp{
			FlightID:      l.ID,
			FlightNumber:  l.FlightNumber,
			Airline:       l.Airline,
			Source:        l.Source,
			Destination:   l.Destination,
			DepartureTime: l.DepartureTime.Format(time.RFC3339),
			ArrivalTime:   l.ArrivalTime.Format(time.RFC3339),
			Price:         l.Price,
		})
	}

	return fiber.Map{
		"total_price": it.TotalPrice,
		"transfers":   it.Transfers(),
		"legs":        legs,
	}
}

// CreateBookingHandler reserves a seat for the authenticated user.
// POST /v1/bookings {"flight_id": "...", "seat_number": "1A"}
func CreateBookingHandler(deps *Dependencies) fiber.Handler {
	type request struct {
		FlightID   string `json:"flight_id"`
		SeatNumber string `json:"seat_number"`
	}

	return func(c *fiber.Ctx) error {
		var req request
		if err := c.BodyParser(&req); err != nil {
			return errBadRequest(c, "invalid request body")
		}
		if req.FlightID == "" || req.SeatNumber == "" {
			return errBadRequest(c, "flight_id and seat_number are required")
		}

		booking, err := deps.Bookings.Reserve(c.Context(), req.FlightID, req.SeatNumber, userID(c))
		if err != nil {
			return domainError(c, err)
		}

		return c.Status(fiber.StatusCreated).JSON(booking)
	}
}

// MyBookingsHandler lists the authenticated user's bookings with
// flight summaries.
func MyBookingsHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		bookings, err := deps.Bookings.ListByUser(c.Context(), userID(c))
		if err != nil {
			return domainError(c, err)
		}
		return c.JSON(bookings)
	}
}
