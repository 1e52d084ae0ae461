package ports

import (
	"context"

	"github.com/Apurer/cinema-booking-api/internal/domains/cinema/domain"
)

// TicketNotifier announces tickets after they have been persisted. Implementations
// report their own delivery failures; a committed ticket is never rolled back.
type TicketNotifier interface {
	TicketIssued(ctx context.Context, ticket *domain.Ticket)
}
