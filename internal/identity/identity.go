package identity

import "github.com/bwmarrin/snowflake"

// UserType classifies an account. The two types are mutually exclusive:
// business accounts publish offers, customer accounts place orders and
// write reviews.
type UserType string

const (
	TypeBusiness UserType = "business"
	TypeCustomer UserType = "customer"
)

func (t UserType) Valid() bool {
	return t == TypeBusiness || t == TypeCustomer
}

// Principal is the authenticated identity making a request. It is passed
// explicitly into every service operation; there is no ambient request state.
type Principal struct {
	UserID        snowflake.ID
	Type          UserType
	Admin         bool
	Authenticated bool
}

// Anonymous is the principal for requests without credentials.
func Anonymous() Principal {
	return Principal{}
}

func (p Principal) IsBusiness() bool {
	return p.Authenticated && p.Type == TypeBusiness
}

func (p Principal) IsCustomer() bool {
	return p.Authenticated && p.Type == TypeCustomer
}
