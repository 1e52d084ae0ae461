package types

// BookTicketInput identifies the customer and screening a ticket is issued against.
// IdempotencyKey is optional; a repeated key replays the ticket it first produced.
type BookTicketInput struct {
	CustomerID     int64
	ScreeningID    int64
	NumSeats       int `validate:"gt=0,lte=10"`
	IdempotencyKey string
}
