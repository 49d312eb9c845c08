package main

import (
	"context"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/arjunmehra/skyfare/internal/adapters/postgres"
	"github.com/arjunmehra/skyfare/internal/core/domain"
	"github.com/arjunmehra/skyfare/internal/pkg/config"
)

// generateSeats builds the standard 40-seat cabin: rows 1-10, columns A-D.
func generateSeats() []domain.Seat {
	var seats []domain.Seat
	for row := 1; row <= 10; row++ {
		for _, col := range []string{"A", "B", "C", "D"} {
			seats = append(seats, domain.Seat{SeatNumber: strconv.Itoa(row) + col})
		}
	}
	return seats
}

// at builds a departure/arrival timestamp relative to the base schedule day.
func at(day, hour, minute int) time.Time {
	base := time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC)
	return base.AddDate(0, 0, day).Add(time.Duration(hour)*time.Hour + time.Duration(minute)*time.Minute)
}

// Cities: DEL, MUM, BLR, KOL, PUNE, GOA
func catalog() []domain.Flight {
	return []domain.Flight{
		// Day 1: October 2nd
		{FlightNumber: "AI-101", Airline: "Air India", Source: "DEL", Destination: "MUM", DepartureTime: at(1, 6, 0), ArrivalTime: at(1, 8, 5), Price: 5800},
		{FlightNumber: "6E-204", Airline: "IndiGo", Source: "DEL", Destination: "MUM", DepartureTime: at(1, 9, 30), ArrivalTime: at(1, 11, 40), Price: 6300},
		{FlightNumber: "UK-995", Airline: "Vistara", Source: "MUM", Destination: "DEL", DepartureTime: at(1, 10, 0), ArrivalTime: at(1, 12, 5), Price: 6100},
		{FlightNumber: "AI-502", Airline: "Air India", Source: "DEL", Destination: "BLR", DepartureTime: at(1, 14, 0), ArrivalTime: at(1, 16, 45), Price: 7200},
		{FlightNumber: "SG-481", Airline: "SpiceJet", Source: "MUM", Destination: "GOA", DepartureTime: at(1, 8, 45), ArrivalTime: at(1, 10, 0), Price: 3500},
		{FlightNumber: "6E-621", Airline: "IndiGo", Source: "KOL", Destination: "BLR", DepartureTime: at(1, 7, 0), ArrivalTime: at(1, 9, 30), Price: 5500},
		{FlightNumber: "UK-831", Airline: "Vistara", Source: "BLR", Destination: "PUNE", DepartureTime: at(1, 10, 30), ArrivalTime: at(1, 11, 45), Price: 3200},

		// Day 2: October 3rd
		{FlightNumber: "SG-101", Airline: "SpiceJet", Source: "BLR", Destination: "PUNE", DepartureTime: at(2, 9, 0), ArrivalTime: at(2, 10, 15), Price: 3400},
		{FlightNumber: "6E-601", Airline: "IndiGo", Source: "PUNE", Destination: "BLR", DepartureTime: at(2, 11, 30), ArrivalTime: at(2, 12, 45), Price: 3600},
		{FlightNumber: "AI-607", Airline: "Air India", Source: "MUM", Destination: "KOL", DepartureTime: at(2, 13, 0), ArrivalTime: at(2, 15, 40), Price: 6800},
		{FlightNumber: "6E-501", Airline: "IndiGo", Source: "GOA", Destination: "BLR", DepartureTime: at(2, 18, 0), ArrivalTime: at(2, 19, 10), Price: 3900},

		// Day 3: October 4th. The cheap-but-long chain KOL -> PUNE -> MUM -> DEL
		// totals 12700 against the 15000 direct.
		{FlightNumber: "SG-333", Airline: "SpiceJet", Source: "KOL", Destination: "PUNE", DepartureTime: at(3, 6, 0), ArrivalTime: at(3, 8, 45), Price: 4800},
		{FlightNumber: "6E-444", Airline: "IndiGo", Source: "PUNE", Destination: "MUM", DepartureTime: at(3, 9, 30), ArrivalTime: at(3, 10, 30), Price: 2900},
		{FlightNumber: "AI-888", Airline: "Air India", Source: "MUM", Destination: "DEL", DepartureTime: at(3, 12, 30), ArrivalTime: at(3, 14, 30), Price: 5000},
		{FlightNumber: "UK-707", Airline: "Vistara", Source: "KOL", Destination: "DEL", DepartureTime: at(3, 8, 0), ArrivalTime: at(3, 10, 30), Price: 15000},
		{FlightNumber: "AI-480", Airline: "Air India", Source: "DEL", Destination: "GOA", DepartureTime: at(3, 11, 0), ArrivalTime: at(3, 13, 30), Price: 6800},
	}
}

func main() {
	cfg, err := config.Load("skyfare-seed")
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	ctx := context.Background()
	db, err := postgres.New(ctx, cfg.Database.DSN())
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	defer db.Close()

	if len(os.Args) > 1 && os.Args[1] == "-d" {
		destroy(ctx, db)
		return
	}

	// Re-seed from scratch
	destroy(ctx, db)

	repo := postgres.NewFlightRepo(db)
	for _, f := range catalog() {
		f.Seats = generateSeats()
		if err := repo.Insert(ctx, &f); err != nil {
			log.Fatalf("seed %s: %v", f.FlightNumber, err)
		}
		log.Printf("seeded %s %s->%s at %v", f.FlightNumber, f.Source, f.Destination, f.DepartureTime)
	}

	log.Println("catalog seeded")
}

func destroy(ctx context.Context, db *postgres.DB) {
	for _, table := range []string{"bookings", "seats", "flights"} {
		if _, err := db.Pool.Exec(ctx, "DELETE FROM "+table); err != nil {
			log.Fatalf("clear %s: %v", table, err)
		}
	}
	log.Println("existing data cleared")
}
