package authz

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrUnauthenticated is returned when an operation needs a caller and none is present.
	ErrUnauthenticated = errors.New("authentication required")
	// ErrForbidden is returned when the caller lacks the required role.
	ErrForbidden = errors.New("insufficient role")
)

// Resource is an entity exposed through the API.
type Resource string

const (
	ResourceCustomer  Resource = "customer"
	ResourceMovie     Resource = "movie"
	ResourceScreening Resource = "screening"
	ResourceTicket    Resource = "ticket"
)

// Action is an operation on a resource.
type Action string

const (
	ActionReadOne Action = "read-one"
	ActionReadAll Action = "read-all"
	ActionCreate  Action = "create"
	ActionUpdate  Action = "update"
	ActionDelete  Action = "delete"
)

// Access is the level a caller needs to perform an operation.
type Access int

const (
	AccessPublic Access = iota + 1
	AccessAuthenticated
	AccessAdmin
)

// Operation is one cell of the policy matrix.
type Operation struct {
	Resource Resource
	Action   Action
}

func (o Operation) String() string {
	return fmt.Sprintf("%s %s", o.Action, o.Resource)
}

// Matrix is the single source of truth for who may do what. Operations missing from
// the table are not exposed and are refused for every caller.
var Matrix = map[Operation]Access{
	{ResourceCustomer, ActionReadOne}: AccessAuthenticated,
	{ResourceCustomer, ActionReadAll}: AccessAdmin,
	{ResourceCustomer, ActionCreate}:  AccessAuthenticated,
	{ResourceCustomer, ActionUpdate}:  AccessAuthenticated,
	{ResourceCustomer, ActionDelete}:  AccessAdmin,

	{ResourceMovie, ActionReadOne}: AccessAuthenticated,
	{ResourceMovie, ActionReadAll}: AccessAuthenticated,
	{ResourceMovie, ActionCreate}:  AccessAuthenticated,
	{ResourceMovie, ActionUpdate}:  AccessAdmin,
	{ResourceMovie, ActionDelete}:  AccessAdmin,

	{ResourceScreening, ActionReadOne}: AccessAuthenticated,
	{ResourceScreening, ActionReadAll}: AccessAuthenticated,
	{ResourceScreening, ActionCreate}:  AccessAdmin,

	// Tickets are read per customer and screening pair.
	{ResourceTicket, ActionReadOne}: AccessAuthenticated,
	{ResourceTicket, ActionCreate}:  AccessAuthenticated,
}

// Authorize checks the matrix for the given caller. A nil identity is anonymous.
func Authorize(identity *Identity, resource Resource, action Action) error {
	op := Operation{Resource: resource, Action: action}
	access, ok := Matrix[op]
	if !ok {
		return fmt.Errorf("%w: %s is not exposed", ErrForbidden, op)
	}
	if access == AccessPublic {
		return nil
	}
	if !identity.Authenticated() {
		return ErrUnauthenticated
	}
	if access == AccessAdmin && !identity.IsAdmin() {
		return fmt.Errorf("%w: %s requires the %s role", ErrForbidden, op, RoleAdmin)
	}
	return nil
}

// AuthorizeContext checks the matrix for the caller carried by ctx.
func AuthorizeContext(ctx context.Context, resource Resource, action Action) error {
	return Authorize(IdentityFrom(ctx), resource, action)
}
