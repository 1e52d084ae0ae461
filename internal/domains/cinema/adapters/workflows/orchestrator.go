package workflows

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	oteltrace "go.opentelemetry.io/otel/trace"
	"go.temporal.io/api/serviceerror"
	"go.temporal.io/sdk/client"

	"github.com/Apurer/cinema-booking-api/internal/authz"
	"github.com/Apurer/cinema-booking-api/internal/domains/cinema/application/types"
	"github.com/Apurer/cinema-booking-api/internal/domains/cinema/domain"
	"github.com/Apurer/cinema-booking-api/internal/domains/cinema/ports"
	ticketworkflows "github.com/Apurer/cinema-booking-api/internal/durable/temporal/workflows/tickets"
	ticketactivities "github.com/Apurer/cinema-booking-api/internal/platform/temporal/activities/tickets"
)

var (
	_ ports.WorkflowOrchestrator = (*TemporalTicketWorkflows)(nil)
	_ ports.WorkflowOrchestrator = (*InlineTicketWorkflows)(nil)
)

// TemporalTicketWorkflows starts ticket issuance workflows on a Temporal cluster.
type TemporalTicketWorkflows struct {
	client    client.Client
	taskQueue string
}

// NewTemporalTicketWorkflows wires a Temporal client into the orchestrator.
func NewTemporalTicketWorkflows(c client.Client) *TemporalTicketWorkflows {
	return &TemporalTicketWorkflows{client: c, taskQueue: ticketworkflows.TicketIssuanceTaskQueue}
}

// BookTicket starts the issuance workflow and waits for the ticket. A repeated
// idempotency key joins the run that was already started for it.
func (o *TemporalTicketWorkflows) BookTicket(ctx context.Context, input types.BookTicketInput) (*domain.Ticket, error) {
	if o == nil || o.client == nil {
		return nil, errors.New("temporal ticket workflows not configured")
	}
	var identity authz.Identity
	if caller := authz.IdentityFrom(ctx); caller != nil {
		identity = *caller
	}
	workflowID := buildTicketIssuanceWorkflowID(input)
	options := client.StartWorkflowOptions{
		ID:        workflowID,
		TaskQueue: o.taskQueue,
	}
	run, err := o.client.ExecuteWorkflow(
		ctx,
		options,
		ticketworkflows.TicketIssuanceWorkflow,
		ticketworkflows.TicketIssuanceWorkflowInput{Command: input, Identity: identity, TraceID: workflowTraceID(ctx)},
	)
	if err != nil {
		var alreadyStarted *serviceerror.WorkflowExecutionAlreadyStarted
		if errors.As(err, &alreadyStarted) && strings.TrimSpace(input.IdempotencyKey) != "" {
			existing := o.client.GetWorkflow(ctx, workflowID, alreadyStarted.RunId)
			var ticket domain.Ticket
			if err := existing.Get(ctx, &ticket); err != nil {
				return nil, ticketactivities.DecodeFailure(err)
			}
			return &ticket, nil
		}
		return nil, err
	}
	var ticket domain.Ticket
	if err := run.Get(ctx, &ticket); err != nil {
		return nil, ticketactivities.DecodeFailure(err)
	}
	return &ticket, nil
}

// InlineTicketWorkflows books directly through the service, used when Temporal is not configured.
type InlineTicketWorkflows struct {
	service ports.Service
}

// NewInlineTicketWorkflows wraps the cinema service for synchronous execution.
func NewInlineTicketWorkflows(service ports.Service) *InlineTicketWorkflows {
	return &InlineTicketWorkflows{service: service}
}

// BookTicket delegates to the application service without durable orchestration.
func (o *InlineTicketWorkflows) BookTicket(ctx context.Context, input types.BookTicketInput) (*domain.Ticket, error) {
	if o == nil || o.service == nil {
		return nil, errors.New("inline ticket workflows not configured")
	}
	return o.service.BookTicket(ctx, input)
}

func buildTicketIssuanceWorkflowID(input types.BookTicketInput) string {
	if key := strings.TrimSpace(input.IdempotencyKey); key != "" {
		return fmt.Sprintf("ticket-issuance-idem-%s", hashIdempotencyKey(key))
	}
	return fmt.Sprintf("ticket-issuance-%d-%d-%s", input.CustomerID, input.ScreeningID, uuid.NewString())
}

func hashIdempotencyKey(key string) string {
	sum := sha256.Sum256([]byte(key))
	return hex.EncodeToString(sum[:8])
}

func workflowTraceID(ctx context.Context) string {
	spanCtx := oteltrace.SpanContextFromContext(ctx)
	if !spanCtx.IsValid() {
		return ""
	}
	return spanCtx.TraceID().String()
}
