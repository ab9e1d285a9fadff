package policy

import (
	"testing"

	"github.com/MarioWinter/coderr/internal/identity"
	"github.com/bwmarrin/snowflake"
	"github.com/stretchr/testify/assert"
)

func business(id int64) identity.Principal {
	return identity.Principal{UserID: snowflake.ID(id), Type: identity.TypeBusiness, Authenticated: true}
}

func customer(id int64) identity.Principal {
	return identity.Principal{UserID: snowflake.ID(id), Type: identity.TypeCustomer, Authenticated: true}
}

func admin(id int64) identity.Principal {
	return identity.Principal{UserID: snowflake.ID(id), Type: identity.TypeCustomer, Admin: true, Authenticated: true}
}

func TestCanCreateOffer(t *testing.T) {
	assert.NoError(t, CanCreateOffer(business(1)))
	// Admins moderate offers but do not own new ones.
	assert.ErrorIs(t, CanCreateOffer(admin(2)), ErrForbidden)
	assert.ErrorIs(t, CanCreateOffer(customer(3)), ErrForbidden)
	assert.ErrorIs(t, CanCreateOffer(identity.Anonymous()), ErrUnauthenticated)
}

func TestCanMutateOffer(t *testing.T) {
	owner := snowflake.ID(10)

	assert.NoError(t, CanMutateOffer(business(10), owner))
	assert.NoError(t, CanMutateOffer(admin(99), owner))
	assert.ErrorIs(t, CanMutateOffer(business(11), owner), ErrForbidden)
	assert.ErrorIs(t, CanMutateOffer(identity.Anonymous(), owner), ErrUnauthenticated)
}

func TestCanCreateOrder(t *testing.T) {
	assert.NoError(t, CanCreateOrder(customer(1)))
	assert.ErrorIs(t, CanCreateOrder(business(2)), ErrForbidden)
	assert.ErrorIs(t, CanCreateOrder(identity.Anonymous()), ErrUnauthenticated)
}

func TestCanMutateOrderStatus(t *testing.T) {
	businessID := snowflake.ID(20)

	assert.NoError(t, CanMutateOrderStatus(business(20), businessID))
	assert.NoError(t, CanMutateOrderStatus(admin(99), businessID))
	// The customer party may read the order but never drive its status.
	assert.ErrorIs(t, CanMutateOrderStatus(customer(21), businessID), ErrForbidden)
	assert.ErrorIs(t, CanMutateOrderStatus(identity.Anonymous(), businessID), ErrUnauthenticated)
}

func TestCanDeleteOrder(t *testing.T) {
	assert.NoError(t, CanDeleteOrder(admin(1)))
	assert.ErrorIs(t, CanDeleteOrder(business(2)), ErrForbidden)
	assert.ErrorIs(t, CanDeleteOrder(customer(3)), ErrForbidden)
	assert.ErrorIs(t, CanDeleteOrder(identity.Anonymous()), ErrUnauthenticated)
}

func TestCanMutateReview(t *testing.T) {
	reviewer := snowflake.ID(30)

	assert.NoError(t, CanMutateReview(customer(30), reviewer))
	assert.NoError(t, CanMutateReview(admin(99), reviewer))
	assert.ErrorIs(t, CanMutateReview(customer(31), reviewer), ErrForbidden)
	assert.ErrorIs(t, CanMutateReview(identity.Anonymous(), reviewer), ErrUnauthenticated)
}
