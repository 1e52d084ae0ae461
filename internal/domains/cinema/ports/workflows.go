package ports

import (
	"context"

	"github.com/Apurer/cinema-booking-api/internal/domains/cinema/application/types"
	"github.com/Apurer/cinema-booking-api/internal/domains/cinema/domain"
)

// WorkflowOrchestrator runs ticket issuance, durably when a workflow engine is configured.
type WorkflowOrchestrator interface {
	BookTicket(ctx context.Context, input types.BookTicketInput) (*domain.Ticket, error)
}
