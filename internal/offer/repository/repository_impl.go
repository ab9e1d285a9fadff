package repository

import (
	"context"
	"errors"

	"github.com/MarioWinter/coderr/internal/offer/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Create(ctx context.Context, db *gorm.DB, offer *domain.Offer) error {
	return db.WithContext(ctx).Create(offer).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id int64) (*domain.Offer, error) {
	var o domain.Offer
	err := db.WithContext(ctx).
		Preload("Details").
		First(&o, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *repo) FindDetailByID(ctx context.Context, db *gorm.DB, id int64) (*domain.OfferDetail, error) {
	var d domain.OfferDetail
	err := db.WithContext(ctx).First(&d, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, filter domain.ListFilter) ([]domain.Offer, int64, error) {
	stmt := db.WithContext(ctx).Model(&domain.Offer{})

	if filter.CreatorID != 0 {
		stmt = stmt.Where("owner_id = ?", filter.CreatorID)
	}
	if filter.MinPrice != nil {
		stmt = stmt.Where("min_price >= ?", *filter.MinPrice)
	}
	if filter.MaxDeliveryTime != nil {
		stmt = stmt.Where("min_delivery_days <= ?", *filter.MaxDeliveryTime)
	}
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		stmt = stmt.Where("LOWER(title) LIKE LOWER(?) OR LOWER(description) LIKE LOWER(?)", like, like)
	}

	var total int64
	if err := stmt.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var items []domain.Offer
	err := stmt.
		Preload("Details").
		Order(filter.OrderClause).
		Offset(filter.Offset).
		Limit(filter.Limit).
		Find(&items).Error
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *repo) UpdateOffer(ctx context.Context, db *gorm.DB, offer *domain.Offer) error {
	if offer == nil {
		return gorm.ErrInvalidData
	}
	return db.WithContext(ctx).Exec(
		`UPDATE offers SET title = ?, description = ?, image_url = ?, updated_at = ? WHERE id = ?`,
		offer.Title,
		offer.Description,
		offer.ImageURL,
		offer.UpdatedAt,
		offer.ID,
	).Error
}

func (r *repo) UpdateDetail(ctx context.Context, db *gorm.DB, detail *domain.OfferDetail) error {
	if detail == nil {
		return gorm.ErrInvalidData
	}
	return db.WithContext(ctx).Exec(
		`UPDATE offer_details
		 SET title = ?, revisions = ?, delivery_time_in_days = ?, price = ?, features = ?
		 WHERE id = ?`,
		detail.Title,
		detail.Revisions,
		detail.DeliveryDays,
		detail.Price,
		detail.Features,
		detail.ID,
	).Error
}

// RefreshAggregates recomputes the denormalized minimums from the current
// detail rows. Must run inside the same transaction as the tier mutation.
func (r *repo) RefreshAggregates(ctx context.Context, db *gorm.DB, offerID int64) error {
	return db.WithContext(ctx).Exec(
		`UPDATE offers
		 SET min_price = (SELECT MIN(price) FROM offer_details WHERE offer_id = ?),
		     min_delivery_days = (SELECT MIN(delivery_time_in_days) FROM offer_details WHERE offer_id = ?)
		 WHERE id = ?`,
		offerID,
		offerID,
		offerID,
	).Error
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, offerID int64) error {
	if err := db.WithContext(ctx).Exec(
		`DELETE FROM offer_details WHERE offer_id = ?`, offerID,
	).Error; err != nil {
		return err
	}
	return db.WithContext(ctx).Exec(
		`DELETE FROM offers WHERE id = ?`, offerID,
	).Error
}

// CountActiveOrders reports how many in-progress orders still reference one
// of the offer's details. Used by the delete protection policy.
func (r *repo) CountActiveOrders(ctx context.Context, db *gorm.DB, offerID int64) (int64, error) {
	var count int64
	err := db.WithContext(ctx).Raw(
		`SELECT COUNT(*) FROM orders
		 WHERE status = 'in_progress'
		   AND offer_detail_id IN (SELECT id FROM offer_details WHERE offer_id = ?)`,
		offerID,
	).Scan(&count).Error
	return count, err
}
