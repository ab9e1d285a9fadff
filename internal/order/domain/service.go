package domain

import (
	"context"
	"errors"
	"time"

	"github.com/MarioWinter/coderr/internal/identity"
)

type Service interface {
	Create(ctx context.Context, principal identity.Principal, req CreateRequest) (*Response, error)
	UpdateStatus(ctx context.Context, principal identity.Principal, req UpdateStatusRequest) (*Response, error)
	Delete(ctx context.Context, principal identity.Principal, id string) error
	Get(ctx context.Context, principal identity.Principal, id string) (*Response, error)
	List(ctx context.Context, principal identity.Principal) ([]Response, error)
	CountInProgress(ctx context.Context, businessUserID string) (*CountResponse, error)
	CountCompleted(ctx context.Context, businessUserID string) (*CompletedCountResponse, error)
}

type CreateRequest struct {
	OfferDetailID string `json:"offer_detail_id"`
}

type UpdateStatusRequest struct {
	ID     string
	Status string `json:"status"`
}

type Response struct {
	ID           string    `json:"id"`
	CustomerID   string    `json:"customer_user"`
	BusinessID   string    `json:"business_user"`
	Title        string    `json:"title"`
	Revisions    int       `json:"revisions"`
	DeliveryDays int       `json:"delivery_time_in_days"`
	Price        float64   `json:"price"`
	Features     []string  `json:"features"`
	Tier         string    `json:"offer_type"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type CountResponse struct {
	OrderCount int64 `json:"order_count"`
}

type CompletedCountResponse struct {
	CompletedOrderCount int64 `json:"completed_order_count"`
}

var (
	ErrNotFound         = errors.New("order_not_found")
	ErrDetailNotFound   = errors.New("offer_detail_not_found")
	ErrBusinessNotFound = errors.New("business_user_not_found")
	ErrInvalidID        = errors.New("invalid_order_id")
	ErrInvalidStatus    = errors.New("invalid_order_status")
	ErrOrderClosed      = errors.New("order_already_closed")
)
