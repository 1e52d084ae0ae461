package authz

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthorize_Matrix(t *testing.T) {
	admin := &Identity{Subject: "admin@cinema", Role: RoleAdmin}
	user := &Identity{Subject: "user@cinema", Role: RoleUser}

	cases := []struct {
		resource Resource
		action   Action
		adminOK  bool
		userOK   bool
	}{
		{ResourceCustomer, ActionReadOne, true, true},
		{ResourceCustomer, ActionReadAll, true, false},
		{ResourceCustomer, ActionCreate, true, true},
		{ResourceCustomer, ActionUpdate, true, true},
		{ResourceCustomer, ActionDelete, true, false},
		{ResourceMovie, ActionReadOne, true, true},
		{ResourceMovie, ActionReadAll, true, true},
		{ResourceMovie, ActionCreate, true, true},
		{ResourceMovie, ActionUpdate, true, false},
		{ResourceMovie, ActionDelete, true, false},
		{ResourceScreening, ActionReadOne, true, true},
		{ResourceScreening, ActionReadAll, true, true},
		{ResourceScreening, ActionCreate, true, false},
		{ResourceTicket, ActionReadOne, true, true},
		{ResourceTicket, ActionCreate, true, true},
	}
	for _, tc := range cases {
		t.Run(string(tc.resource)+"/"+string(tc.action), func(t *testing.T) {
			assertAllowed(t, Authorize(admin, tc.resource, tc.action), tc.adminOK)
			assertAllowed(t, Authorize(user, tc.resource, tc.action), tc.userOK)
			assert.ErrorIs(t, Authorize(nil, tc.resource, tc.action), ErrUnauthenticated)
		})
	}
}

func assertAllowed(t *testing.T, err error, allowed bool) {
	t.Helper()
	if allowed {
		assert.NoError(t, err)
		return
	}
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestAuthorize_UnexposedOperationsAreForbidden(t *testing.T) {
	admin := &Identity{Subject: "admin@cinema", Role: RoleAdmin}

	require.ErrorIs(t, Authorize(admin, ResourceScreening, ActionUpdate), ErrForbidden)
	require.ErrorIs(t, Authorize(admin, ResourceTicket, ActionDelete), ErrForbidden)
	require.ErrorIs(t, Authorize(nil, ResourceTicket, ActionUpdate), ErrForbidden)
}

func TestAuthorize_BlankSubjectIsAnonymous(t *testing.T) {
	err := Authorize(&Identity{Subject: "  ", Role: RoleAdmin}, ResourceMovie, ActionReadAll)
	require.ErrorIs(t, err, ErrUnauthenticated)
}

func TestIdentityContextRoundTrip(t *testing.T) {
	ctx := context.Background()
	assert.Nil(t, IdentityFrom(ctx))

	ctx = WithIdentity(ctx, Identity{Subject: "42", Role: RoleUser})
	identity := IdentityFrom(ctx)
	require.NotNil(t, identity)
	assert.Equal(t, "42", identity.Subject)
	assert.NoError(t, AuthorizeContext(ctx, ResourceMovie, ActionReadAll))
	assert.ErrorIs(t, AuthorizeContext(ctx, ResourceMovie, ActionDelete), ErrForbidden)
}
