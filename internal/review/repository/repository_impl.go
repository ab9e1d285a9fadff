package repository

import (
	"context"
	"errors"

	"github.com/MarioWinter/coderr/internal/review/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Create(ctx context.Context, db *gorm.DB, review *domain.Review) error {
	return db.WithContext(ctx).Create(review).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id int64) (*domain.Review, error) {
	var rv domain.Review
	err := db.WithContext(ctx).First(&rv, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rv, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, filter domain.ListFilter) ([]domain.Review, error) {
	stmt := db.WithContext(ctx).Model(&domain.Review{})

	if filter.BusinessID != 0 {
		stmt = stmt.Where("business_id = ?", filter.BusinessID)
	}
	if filter.ReviewerID != 0 {
		stmt = stmt.Where("reviewer_id = ?", filter.ReviewerID)
	}
	if filter.OrderClause != "" {
		stmt = stmt.Order(filter.OrderClause)
	}

	var reviews []domain.Review
	if err := stmt.Find(&reviews).Error; err != nil {
		return nil, err
	}
	return reviews, nil
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, review *domain.Review) error {
	return db.WithContext(ctx).Exec(
		"UPDATE reviews SET rating = ?, description = ?, updated_at = ? WHERE id = ?",
		review.Rating, review.Description, review.UpdatedAt, review.ID.Int64(),
	).Error
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, id int64) error {
	return db.WithContext(ctx).Exec("DELETE FROM reviews WHERE id = ?", id).Error
}

func (r *repo) BusinessUserExists(ctx context.Context, db *gorm.DB, userID int64) (bool, error) {
	var count int64
	err := db.WithContext(ctx).
		Raw("SELECT COUNT(*) FROM profiles WHERE id = ? AND type = 'business'", userID).
		Scan(&count).Error
	return count > 0, err
}
