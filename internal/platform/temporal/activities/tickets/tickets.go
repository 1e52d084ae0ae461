package tickets

import (
	"context"
	"errors"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/temporal"

	"github.com/Apurer/cinema-booking-api/internal/authz"
	"github.com/Apurer/cinema-booking-api/internal/domains/cinema/application"
	"github.com/Apurer/cinema-booking-api/internal/domains/cinema/application/types"
	"github.com/Apurer/cinema-booking-api/internal/domains/cinema/domain"
	"github.com/Apurer/cinema-booking-api/internal/domains/cinema/ports"
)

// IssueTicketActivityName resolves the references and writes a ticket.
const IssueTicketActivityName = "cinema.activities.IssueTicket"

// IssueTicketInput carries the booking and the caller it is performed for.
type IssueTicketInput struct {
	Command  types.BookTicketInput
	Identity authz.Identity
}

// Activities groups activities that operate on the cinema bounded context.
type Activities struct {
	service ports.Service
}

// NewActivities wires the cinema service into the Temporal activities bundle.
func NewActivities(service ports.Service) *Activities {
	return &Activities{service: service}
}

// IssueTicket books a ticket on behalf of the caller recorded in the input.
// Classified failures are returned as non-retryable application errors whose type is
// the failure kind and whose first detail is the failure message.
func (a *Activities) IssueTicket(ctx context.Context, input IssueTicketInput) (*domain.Ticket, error) {
	logger := activity.GetLogger(ctx)
	if a == nil || a.service == nil {
		logger.Error("ticket issuance activity not initialized")
		return nil, errors.New("ticket issuance activity not initialized")
	}
	cmd := input.Command
	logger.Info("IssueTicket activity started", "customerId", cmd.CustomerID, "screeningId", cmd.ScreeningID)
	ctx = authz.WithIdentity(ctx, input.Identity)
	ticket, err := a.service.BookTicket(ctx, cmd)
	if err != nil {
		logger.Error("IssueTicket activity failed", "customerId", cmd.CustomerID, "screeningId", cmd.ScreeningID, "error", err)
		return nil, EncodeFailure(err)
	}
	logger.Info("IssueTicket activity completed", "ticketId", ticket.ID)
	return ticket, nil
}

// EncodeFailure converts a classified failure into a Temporal application error so that
// its kind and message survive serialization. Other errors are returned unchanged.
func EncodeFailure(err error) error {
	var failure *application.Failure
	if !errors.As(err, &failure) {
		return err
	}
	return temporal.NewNonRetryableApplicationError(failure.Message, string(failure.Kind), nil, failure.Message)
}

// DecodeFailure rebuilds the classified failure carried by a Temporal error chain.
// Errors without an application error are returned unchanged.
func DecodeFailure(err error) error {
	var appErr *temporal.ApplicationError
	if !errors.As(err, &appErr) || appErr.Type() == "" {
		return err
	}
	message := appErr.Error()
	if appErr.HasDetails() {
		var detail string
		if derr := appErr.Details(&detail); derr == nil && detail != "" {
			message = detail
		}
	}
	return &application.Failure{Kind: application.Kind(appErr.Type()), Message: message, Err: err}
}
