package domain

import (
	"context"

	"gorm.io/gorm"
)

type ListFilter struct {
	BusinessID  int64
	ReviewerID  int64
	OrderClause string
}

type Repository interface {
	Create(ctx context.Context, db *gorm.DB, review *Review) error
	FindByID(ctx context.Context, db *gorm.DB, id int64) (*Review, error)
	List(ctx context.Context, db *gorm.DB, filter ListFilter) ([]Review, error)
	Update(ctx context.Context, db *gorm.DB, review *Review) error
	Delete(ctx context.Context, db *gorm.DB, id int64) error
	BusinessUserExists(ctx context.Context, db *gorm.DB, userID int64) (bool, error)
}
