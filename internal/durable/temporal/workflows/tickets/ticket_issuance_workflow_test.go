package tickets

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/testsuite"

	"github.com/Apurer/cinema-booking-api/internal/authz"
	"github.com/Apurer/cinema-booking-api/internal/domains/cinema/adapters/memory"
	"github.com/Apurer/cinema-booking-api/internal/domains/cinema/application"
	"github.com/Apurer/cinema-booking-api/internal/domains/cinema/application/types"
	"github.com/Apurer/cinema-booking-api/internal/domains/cinema/domain"
	ticketactivities "github.com/Apurer/cinema-booking-api/internal/platform/temporal/activities/tickets"
)

func newEnvironment(t *testing.T) (*testsuite.TestWorkflowEnvironment, *domain.Customer, *domain.Screening) {
	t.Helper()
	store := memory.NewStore()
	svc := application.NewService(application.Gateways{
		Customers:  store.Customers(),
		Movies:     store.Movies(),
		Screenings: store.Screenings(),
		Tickets:    store.Tickets(),
	})
	ctx := context.Background()
	customer, err := store.Customers().Add(ctx, &domain.Customer{Name: "Cristiano Ronaldo", Email: "cr7@example.com", Phone: "+351912345678"})
	require.NoError(t, err)
	movie, err := store.Movies().Add(ctx, &domain.Movie{Title: "The Matrix", Rating: "R", Description: "Red pill.", RuntimeMins: 136})
	require.NoError(t, err)
	screening, err := store.Screenings().Add(ctx, &domain.Screening{MovieID: movie.ID, ScreenNumber: 3, Capacity: 60, StartsAt: time.Now()})
	require.NoError(t, err)

	var suite testsuite.WorkflowTestSuite
	env := suite.NewTestWorkflowEnvironment()
	env.RegisterWorkflow(TicketIssuanceWorkflow)
	env.RegisterActivityWithOptions(ticketactivities.NewActivities(svc).IssueTicket, activity.RegisterOptions{Name: ticketactivities.IssueTicketActivityName})
	return env, customer, screening
}

func TestTicketIssuanceWorkflow_IssuesTicket(t *testing.T) {
	env, customer, screening := newEnvironment(t)

	env.ExecuteWorkflow(TicketIssuanceWorkflow, TicketIssuanceWorkflowInput{
		Command:  types.BookTicketInput{CustomerID: customer.ID, ScreeningID: screening.ID, NumSeats: 4},
		Identity: authz.Identity{Subject: "cr7", Role: authz.RoleUser},
	})

	require.True(t, env.IsWorkflowCompleted())
	require.NoError(t, env.GetWorkflowError())
	var ticket domain.Ticket
	require.NoError(t, env.GetWorkflowResult(&ticket))
	assert.Positive(t, ticket.ID)
	assert.Equal(t, 4, ticket.NumSeats)
	assert.Equal(t, customer.ID, ticket.CustomerID)
}

func TestTicketIssuanceWorkflow_FailureKindSurvives(t *testing.T) {
	env, customer, screening := newEnvironment(t)

	env.ExecuteWorkflow(TicketIssuanceWorkflow, TicketIssuanceWorkflowInput{
		Command:  types.BookTicketInput{CustomerID: customer.ID, ScreeningID: screening.ID, NumSeats: 11},
		Identity: authz.Identity{Subject: "cr7", Role: authz.RoleUser},
	})

	require.True(t, env.IsWorkflowCompleted())
	err := env.GetWorkflowError()
	require.Error(t, err)
	var appErr *temporal.ApplicationError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, string(application.KindInvalidPayload), appErr.Type())
	assert.True(t, appErr.NonRetryable())

	decoded := ticketactivities.DecodeFailure(err)
	assert.ErrorIs(t, decoded, application.ErrInvalidPayload)
	assert.EqualError(t, decoded, "Cannot book more than 10 seats at once.")
}

func TestTicketIssuanceWorkflow_AnonymousCaller(t *testing.T) {
	env, customer, screening := newEnvironment(t)

	env.ExecuteWorkflow(TicketIssuanceWorkflow, TicketIssuanceWorkflowInput{
		Command: types.BookTicketInput{CustomerID: customer.ID, ScreeningID: screening.ID, NumSeats: 1},
	})

	require.True(t, env.IsWorkflowCompleted())
	decoded := ticketactivities.DecodeFailure(env.GetWorkflowError())
	assert.ErrorIs(t, decoded, application.ErrUnauthorized)
}
