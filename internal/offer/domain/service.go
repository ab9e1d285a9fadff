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
	Get(ctx context.Context, id string) (*DetailResponse, error)
	List(ctx context.Context, req ListRequest) (*ListResponse, error)
	GetTier(ctx context.Context, id string) (*TierView, error)
}

// TierRequest carries one detail of a create or patch payload. All value
// fields are pointers so a patch can update a subset of them; create
// requires every field to be present.
type TierRequest struct {
	Tier         string   `json:"offer_type"`
	Title        *string  `json:"title"`
	Revisions    *int     `json:"revisions"`
	DeliveryDays *int     `json:"delivery_time_in_days"`
	Price        *float64 `json:"price"`
	Features     []string `json:"features"`
}

type CreateRequest struct {
	Title       string        `json:"title"`
	Description string        `json:"description"`
	ImageURL    *string       `json:"image"`
	Details     []TierRequest `json:"details"`
}

type UpdateRequest struct {
	ID          string
	Title       *string       `json:"title"`
	Description *string       `json:"description"`
	ImageURL    *string       `json:"image"`
	Details     []TierRequest `json:"details"`
}

type ListRequest struct {
	CreatorID       string
	MinPrice        *float64
	MaxDeliveryTime *int
	Search          string
	Ordering        string
	Page            int
}

// PageSize is fixed for offer listings.
const PageSize = 6

// TierView is the full detail body embedded in list and write responses.
type TierView struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	Revisions    int      `json:"revisions"`
	DeliveryDays int      `json:"delivery_time_in_days"`
	Price        float64  `json:"price"`
	Features     []string `json:"features"`
	Tier         string   `json:"offer_type"`
}

// DetailRef is the {id, url} pointer used by the single-offer read view.
type DetailRef struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

type Response struct {
	ID              string     `json:"id"`
	UserID          string     `json:"user"`
	Title           string     `json:"title"`
	ImageURL        *string    `json:"image"`
	Description     string     `json:"description"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
	Details         []TierView `json:"details"`
	MinPrice        float64    `json:"min_price"`
	MinDeliveryTime int        `json:"min_delivery_time"`
}

// DetailResponse is the retrieve-by-id projection: tier bodies are replaced
// by references into /api/offerdetails/{id}/.
type DetailResponse struct {
	ID              string      `json:"id"`
	UserID          string      `json:"user"`
	Title           string      `json:"title"`
	ImageURL        *string     `json:"image"`
	Description     string      `json:"description"`
	CreatedAt       time.Time   `json:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at"`
	Details         []DetailRef `json:"details"`
	MinPrice        float64     `json:"min_price"`
	MinDeliveryTime int         `json:"min_delivery_time"`
}

type ListResponse struct {
	Count    int64      `json:"count"`
	Results  []Response `json:"results"`
	Page     int        `json:"page"`
	PageSize int        `json:"page_size"`
}

var (
	ErrNotFound          = errors.New("offer_not_found")
	ErrDetailNotFound    = errors.New("offer_detail_not_found")
	ErrInvalidID         = errors.New("invalid_offer_id")
	ErrInvalidTitle      = errors.New("invalid_title")
	ErrTierCount         = errors.New("exactly_three_details_required")
	ErrTierSet           = errors.New("all_three_types_required")
	ErrInvalidTierType   = errors.New("invalid_offer_type")
	ErrDuplicateTierType = errors.New("duplicate_offer_type")
	ErrInvalidRevisions  = errors.New("invalid_revisions")
	ErrInvalidDelivery   = errors.New("invalid_delivery_time")
	ErrInvalidPrice      = errors.New("invalid_price")
	ErrInvalidOrdering   = errors.New("invalid_ordering")
	ErrOfferInUse        = errors.New("offer_in_use")
)
