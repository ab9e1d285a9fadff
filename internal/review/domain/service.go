package domain

import (
	"context"
	"errors"
	"time"

	"github.com/MarioWinter/coderr/internal/identity"
)

type Service interface {
	Create(ctx context.Context, principal identity.Principal, req CreateRequest) (*Response, error)
	Update(ctx context.Context, principal identity.Principal, req UpdateRequest) (*Response, error)
	Delete(ctx context.Context, principal identity.Principal, id string) error
	Get(ctx context.Context, principal identity.Principal, id string) (*Response, error)
	List(ctx context.Context, principal identity.Principal, req ListRequest) ([]Response, error)
}

type CreateRequest struct {
	BusinessID  string  `json:"business_user"`
	Rating      float64 `json:"rating"`
	Description string  `json:"description"`
}

// UpdateRequest carries the only two fields a patch may change. The handler
// rejects payloads naming anything else.
type UpdateRequest struct {
	ID          string
	Rating      *float64 `json:"rating"`
	Description *string  `json:"description"`
}

type ListRequest struct {
	BusinessID string
	ReviewerID string
	Ordering   string
}

type Response struct {
	ID          string    `json:"id"`
	BusinessID  string    `json:"business_user"`
	ReviewerID  string    `json:"reviewer"`
	Rating      float64   `json:"rating"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

var (
	ErrNotFound         = errors.New("review_not_found")
	ErrBusinessNotFound = errors.New("review_business_user_not_found")
	ErrInvalidID        = errors.New("invalid_review_id")
	ErrInvalidRating    = errors.New("invalid_review_rating")
	ErrInvalidOrdering  = errors.New("invalid_review_ordering")
	ErrDuplicateReview  = errors.New("review_already_exists")
	ErrUnsupportedField = errors.New("unsupported_review_field")
)
