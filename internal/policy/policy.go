// Package policy holds the authorization decisions shared by the offer,
// order and review services. Every check is a plain predicate over a
// Principal and an ownership fact; denials distinguish missing credentials
// from insufficient ones so the boundary can render 401 vs 403.
package policy

import (
	"errors"

	"github.com/MarioWinter/coderr/internal/identity"
	"github.com/bwmarrin/snowflake"
)

var (
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrForbidden       = errors.New("forbidden")
)

// deny returns the error matching the principal's authentication state.
func deny(p identity.Principal) error {
	if !p.Authenticated {
		return ErrUnauthenticated
	}
	return ErrForbidden
}

// CanCreateOffer allows authenticated business users only. Admins manage
// existing offers through CanMutateOffer but never own new ones.
func CanCreateOffer(p identity.Principal) error {
	if p.IsBusiness() {
		return nil
	}
	return deny(p)
}

// CanMutateOffer allows the offer owner or an admin. Reads are open to
// everyone and never pass through here.
func CanMutateOffer(p identity.Principal, ownerID snowflake.ID) error {
	if p.Authenticated && (p.UserID == ownerID || p.Admin) {
		return nil
	}
	return deny(p)
}

// CanCreateOrder allows authenticated customers only.
func CanCreateOrder(p identity.Principal) error {
	if p.IsCustomer() {
		return nil
	}
	return deny(p)
}

// CanMutateOrderStatus allows the order's business party or an admin. The
// customer party may read the order but never change its status.
func CanMutateOrderStatus(p identity.Principal, businessID snowflake.ID) error {
	if p.Authenticated && (p.UserID == businessID || p.Admin) {
		return nil
	}
	return deny(p)
}

// CanDeleteOrder allows admins only.
func CanDeleteOrder(p identity.Principal) error {
	if p.Authenticated && p.Admin {
		return nil
	}
	return deny(p)
}

// CanCreateReview allows authenticated customers only.
func CanCreateReview(p identity.Principal) error {
	if p.IsCustomer() {
		return nil
	}
	return deny(p)
}

// CanMutateReview allows the review's author or an admin.
func CanMutateReview(p identity.Principal, reviewerID snowflake.ID) error {
	if p.Authenticated && (p.UserID == reviewerID || p.Admin) {
		return nil
	}
	return deny(p)
}
