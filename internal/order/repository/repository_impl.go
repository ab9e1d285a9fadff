package repository

import (
	"context"
	"errors"

	"github.com/MarioWinter/coderr/internal/order/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Create(ctx context.Context, db *gorm.DB, order *domain.Order) error {
	return db.WithContext(ctx).Create(order).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id int64) (*domain.Order, error) {
	var o domain.Order
	err := db.WithContext(ctx).First(&o, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *repo) FindByParty(ctx context.Context, db *gorm.DB, userID int64) ([]domain.Order, error) {
	var orders []domain.Order
	err := db.WithContext(ctx).
		Where("customer_id = ? OR business_id = ?", userID, userID).
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, order *domain.Order) error {
	return db.WithContext(ctx).Exec(
		"UPDATE orders SET status = ?, updated_at = ? WHERE id = ?",
		order.Status, order.UpdatedAt, order.ID.Int64(),
	).Error
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, id int64) error {
	return db.WithContext(ctx).Exec("DELETE FROM orders WHERE id = ?", id).Error
}

func (r *repo) CountByBusinessAndStatus(ctx context.Context, db *gorm.DB, businessID int64, status domain.Status) (int64, error) {
	var count int64
	err := db.WithContext(ctx).Model(&domain.Order{}).
		Where("business_id = ? AND status = ?", businessID, status).
		Count(&count).Error
	return count, err
}

func (r *repo) BusinessUserExists(ctx context.Context, db *gorm.DB, userID int64) (bool, error) {
	var count int64
	err := db.WithContext(ctx).
		Raw("SELECT COUNT(*) FROM profiles WHERE id = ? AND type = 'business'", userID).
		Scan(&count).Error
	return count > 0, err
}
