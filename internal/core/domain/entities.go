package domain

import (
	"time"
)

// Seat is a single bookable seat on a flight. SeatNumber is unique
// within its flight. Booked flips false->true exactly once; there is
// no release flow exposed to callers.
type Seat struct {
	SeatNumber string `json:"seat_number"`
	Booked     bool   `json:"booked"`
}

// Flight is one scheduled flight between two airports. Everything but
// the seat flags is immutable once the flight is in the catalog.
type Flight struct {
	ID            string    `json:"id"`
	FlightNumber  string    `json:"flight_number"`
	Airline       string    `json:"airline"`
	Source        string    `json:"source"`
	Destination   string    `json:"destination"`
	DepartureTime time.Time `json:"departure_time"`
	ArrivalTime   time.Time `json:"arrival_time"`
	Price         float64   `json:"price"`
	Seats         []Seat    `json:"seats,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// Seat returns the seat with the given number, or nil.
func (f *Flight) Seat(seatNumber string) *Seat {
	for i := range f.Seats {
		if f.Seats[i].SeatNumber == seatNumber {
			return &f.Seats[i]
		}
	}
	return nil
}

// BookingStatusConfirmed is the only booking status in scope; bookings
// are created confirmed and never mutated.
const BookingStatusConfirmed = "CONFIRMED"

// Booking records a confirmed seat reservation. A booking exists iff
// the referenced seat's booked flag is set.
type Booking struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id"`
	FlightID   string    `json:"flight_id"`
	SeatNumber string    `json:"seat_number"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
}

// BookingWithFlight pairs a booking with a summary of its flight, for
// listing a user's bookings without a second round-trip.
type BookingWithFlight struct {
	Booking
	Flight *Flight `json:"flight,omitempty"`
}

// SeatBookedEvent is published after a reservation commits. Fan-out is
// best-effort and carries no acknowledgement back into the core.
type SeatBookedEvent struct {
	FlightID   string    `json:"flight_id"`
	SeatNumber string    `json:"seat_number"`
	BookedAt   time.Time `json:"booked_at"`
}
