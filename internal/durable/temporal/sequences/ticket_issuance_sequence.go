package sequences

import (
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	"github.com/Apurer/cinema-booking-api/internal/domains/cinema/domain"
	ticketactivities "github.com/Apurer/cinema-booking-api/internal/platform/temporal/activities/tickets"
)

// RunTicketIssuanceSequence executes the activity that writes the ticket. The write is
// attempted once: a retried insert could issue the same seats twice.
func RunTicketIssuanceSequence(ctx workflow.Context, input ticketactivities.IssueTicketInput) (*domain.Ticket, error) {
	logger := workflow.GetLogger(ctx)
	cmd := input.Command
	logger.Info("ticket issuance sequence started", "customerId", cmd.CustomerID, "screeningId", cmd.ScreeningID)
	options := workflow.ActivityOptions{
		StartToCloseTimeout: 30 * time.Second,
		RetryPolicy: &temporal.RetryPolicy{
			MaximumAttempts: 1,
		},
	}
	ctx = workflow.WithActivityOptions(ctx, options)

	var ticket domain.Ticket
	err := workflow.ExecuteActivity(ctx, ticketactivities.IssueTicketActivityName, input).Get(ctx, &ticket)
	if err != nil {
		logger.Error("ticket issuance sequence failed", "customerId", cmd.CustomerID, "error", err)
		return nil, err
	}
	logger.Info("ticket issuance sequence completed", "ticketId", ticket.ID)
	return &ticket, nil
}
