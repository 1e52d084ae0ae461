package cinemaserver

import (
	"context"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"

	cinemahttp "github.com/Apurer/cinema-booking-api/internal/domains/cinema/adapters/http/mapper"
	"github.com/Apurer/cinema-booking-api/internal/domains/cinema/application/types"
	"github.com/Apurer/cinema-booking-api/internal/domains/cinema/domain"
	"github.com/Apurer/cinema-booking-api/internal/domains/cinema/ports"
)

// IdempotencyKeyHeader lets a client retry a booking without issuing a second ticket.
const IdempotencyKeyHeader = "Idempotency-Key"

// BookingAPI wires HTTP transport with ticket issuance.
type BookingAPI struct {
	service   ports.Service
	workflows ports.WorkflowOrchestrator
}

// NewBookingAPI creates a BookingAPI. A nil orchestrator books through the service directly.
func NewBookingAPI(service ports.Service, workflows ports.WorkflowOrchestrator) BookingAPI {
	return BookingAPI{service: service, workflows: workflows}
}

// Post /customers/:id/screenings/:screeningId
// Book seats for a screening
func (api *BookingAPI) BookTicket(c *gin.Context) {
	customerID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	screeningID, ok := parseIDParam(c, "screeningId")
	if !ok {
		return
	}
	var payload cinemahttp.TicketRequest
	if !bindJSON(c, &payload) {
		return
	}
	key := strings.TrimSpace(c.GetHeader(IdempotencyKeyHeader))
	ticket, err := api.bookTicket(c.Request.Context(), cinemahttp.ToBookTicketInput(customerID, screeningID, payload, key))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	location := fmt.Sprintf("/customers/%d/screenings/%d", customerID, screeningID)
	responder.Created(c, location, cinemahttp.FromTicket(ticket))
}

func (api *BookingAPI) bookTicket(ctx context.Context, input types.BookTicketInput) (*domain.Ticket, error) {
	if api.workflows != nil {
		return api.workflows.BookTicket(ctx, input)
	}
	return api.service.BookTicket(ctx, input)
}

// Get /customers/:id/screenings/:screeningId
// List the tickets a customer holds for a screening
func (api *BookingAPI) ListTickets(c *gin.Context) {
	customerID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	screeningID, ok := parseIDParam(c, "screeningId")
	if !ok {
		return
	}
	tickets, err := api.service.ListTickets(c.Request.Context(), customerID, screeningID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	responder.OK(c, cinemahttp.FromTickets(tickets))
}
