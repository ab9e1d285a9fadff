package domain

import (
	"context"

	"gorm.io/gorm"
)

// ListFilter is the repository-level filter derived from ListRequest.
type ListFilter struct {
	CreatorID       int64
	MinPrice        *float64
	MaxDeliveryTime *int
	Search          string
	OrderClause     string
	Offset          int
	Limit           int
}

type Repository interface {
	Create(ctx context.Context, db *gorm.DB, offer *Offer) error
	FindByID(ctx context.Context, db *gorm.DB, id int64) (*Offer, error)
	FindDetailByID(ctx context.Context, db *gorm.DB, id int64) (*OfferDetail, error)
	List(ctx context.Context, db *gorm.DB, filter ListFilter) ([]Offer, int64, error)
	UpdateOffer(ctx context.Context, db *gorm.DB, offer *Offer) error
	UpdateDetail(ctx context.Context, db *gorm.DB, detail *OfferDetail) error
	RefreshAggregates(ctx context.Context, db *gorm.DB, offerID int64) error
	Delete(ctx context.Context, db *gorm.DB, offerID int64) error
	CountActiveOrders(ctx context.Context, db *gorm.DB, offerID int64) (int64, error)
}
