package domain

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, db *gorm.DB, order *Order) error
	FindByID(ctx context.Context, db *gorm.DB, id int64) (*Order, error)
	FindByParty(ctx context.Context, db *gorm.DB, userID int64) ([]Order, error)
	Update(ctx context.Context, db *gorm.DB, order *Order) error
	Delete(ctx context.Context, db *gorm.DB, id int64) error
	CountByBusinessAndStatus(ctx context.Context, db *gorm.DB, businessID int64, status Status) (int64, error)
	BusinessUserExists(ctx context.Context, db *gorm.DB, userID int64) (bool, error)
}
