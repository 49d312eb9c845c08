package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/graphql-go/graphql"
)

// buildSchema creates the GraphQL schema wired to our services.
func buildSchema(deps *Dependencies) (graphql.Schema, error) {
	seatType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Seat",
		Fields: graphql.Fields{
			"seat_number": &graphql.Field{Type: graphql.String},
			"booked":      &graphql.Field{Type: graphql.Boolean},
		},
	})

	flightType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Flight",
		Fields: graphql.Fields{
			"id":             &graphql.Field{Type: graphql.String},
			"flight_number":  &graphql.Field{Type: graphql.String},
			"airline":        &graphql.Field{Type: graphql.String},
			"source":         &graphql.Field{Type: graphql.String},
			"destination":    &graphql.Field{Type: graphql.String},
			"departure_time": &graphql.Field{Type: graphql.String},
			"arrival_time":   &graphql.Field{Type: graphql.String},
			"price":          &graphql.Field{Type: graphql.Float},
			"seats":          &graphql.Field{Type: graphql.NewList(seatType)},
		},
	})

	itineraryType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Itinerary",
		Fields: graphql.Fields{
			"total_price": &graphql.Field{Type: graphql.Float},
			"transfers":   &graphql.Field{Type: graphql.Int},
			"legs":        &graphql.Field{Type: graphql.NewList(flightType)},
		},
	})

	queryType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"flight": &graphql.Field{
				Type:        flightType,
				Description: "Get a flight by ID with its seat map",
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					id := p.Args["id"].(string)
					return deps.Flights.GetByID(p.Context, id)
				},
			},
			"searchFlights": &graphql.Field{
				Type:        graphql.NewList(flightType),
				Description: "Direct flights between two airports",
				Args: graphql.FieldConfigArgument{
					"source":      &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"destination": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"date":        &graphql.ArgumentConfig{Type: graphql.String},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					source := p.Args["source"].(string)
					destination := p.Args["destination"].(string)
					var day *time.Time
					if raw, ok := p.Args["date"].(string); ok && raw != "" {
						t, err := time.Parse("2006-01-02", raw)
						if err != nil {
							return nil, err
						}
						day = &t
					}
					return deps.Flights.Search(p.Context, source, destination, day)
				},
			},
			"cheapestRoute": &graphql.Field{
				Type:        itineraryType,
				Description: "Minimum-price itinerary between two airports, connections allowed",
				Args: graphql.FieldConfigArgument{
					"source":      &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"destination": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					source := p.Args["source"].(string)
					destination := p.Args["destination"].(string)
					it, err := deps.Routes.Cheapest(p.Context, source, destination)
					if err != nil {
						return nil, err
					}
					return map[string]interface{}{
						"total_price": it.TotalPrice,
						"transfers":   it.Transfers(),
						"legs":        it.Legs,
					}, nil
				},
			},
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{
		Query: queryType,
	})
}

// GraphQLHandler serves the GraphQL endpoint.
func GraphQLHandler(deps *Dependencies) fiber.Handler {
	schema, err := buildSchema(deps)
	if err != nil {
		// This would be a programming error in the schema definition
		panic("graphql schema build: " + err.Error())
	}

	type gqlRequest struct {
		Query         string                 `json:"query"`
		OperationName string                 `json:"operationName"`
		Variables     map[string]interface{} `json:"variables"`
	}

	return func(c *fiber.Ctx) error {
		var req gqlRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "invalid request body"})
		}

		result := graphql.Do(graphql.Params{
			Schema:         schema,
			RequestString:  req.Query,
			VariableValues: req.Variables,
			OperationName:  req.OperationName,
			Context:        c.Context(),
		})

		return c.JSON(result)
	}
}
