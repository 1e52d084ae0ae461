package tickets

import (
	"go.temporal.io/sdk/workflow"

	"github.com/Apurer/cinema-booking-api/internal/authz"
	"github.com/Apurer/cinema-booking-api/internal/domains/cinema/application/types"
	"github.com/Apurer/cinema-booking-api/internal/domains/cinema/domain"
	"github.com/Apurer/cinema-booking-api/internal/durable/temporal/sequences"
	ticketactivities "github.com/Apurer/cinema-booking-api/internal/platform/temporal/activities/tickets"
)

const (
	// TicketIssuanceWorkflowName is the public identifier for registering the workflow.
	TicketIssuanceWorkflowName = "cinema.workflows.TicketIssuance"
	// TicketIssuanceTaskQueue is the queue consumed by the worker processing bookings.
	TicketIssuanceTaskQueue = "TICKET_ISSUANCE"
)

// TicketIssuanceWorkflowInput captures the booking and the caller it was requested by.
type TicketIssuanceWorkflowInput struct {
	Command  types.BookTicketInput
	Identity authz.Identity
	TraceID  string
}

// TicketIssuanceWorkflow orchestrates the activities needed to issue a ticket.
func TicketIssuanceWorkflow(ctx workflow.Context, input TicketIssuanceWorkflowInput) (*domain.Ticket, error) {
	logger := workflow.GetLogger(ctx)
	cmd := input.Command
	logger.Info("TicketIssuanceWorkflow started", withTraceID(input.TraceID, "customerId", cmd.CustomerID, "screeningId", cmd.ScreeningID)...)
	ticket, err := sequences.RunTicketIssuanceSequence(ctx, ticketactivities.IssueTicketInput{
		Command:  cmd,
		Identity: input.Identity,
	})
	if err != nil {
		logger.Error("TicketIssuanceWorkflow failed", withTraceID(input.TraceID, "customerId", cmd.CustomerID, "error", err)...)
		return nil, err
	}
	logger.Info("TicketIssuanceWorkflow completed", withTraceID(input.TraceID, "ticketId", ticket.ID)...)
	return ticket, nil
}

func withTraceID(traceID string, keyvals ...interface{}) []interface{} {
	if traceID == "" {
		return keyvals
	}
	return append(keyvals, "traceId", traceID)
}
