package repository

import (
	"context"

	"github.com/MarioWinter/coderr/internal/stats/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) ReviewStats(ctx context.Context, db *gorm.DB) (*domain.ReviewStats, error) {
	var stats domain.ReviewStats
	err := db.WithContext(ctx).
		Raw("SELECT COUNT(*) AS count, COALESCE(AVG(rating), 0) AS average FROM reviews").
		Scan(&stats).Error
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

func (r *repo) BusinessProfileCount(ctx context.Context, db *gorm.DB) (int64, error) {
	var count int64
	err := db.WithContext(ctx).
		Raw("SELECT COUNT(*) FROM profiles WHERE type = 'business'").
		Scan(&count).Error
	return count, err
}

func (r *repo) OfferCount(ctx context.Context, db *gorm.DB) (int64, error) {
	var count int64
	err := db.WithContext(ctx).
		Raw("SELECT COUNT(*) FROM offers").
		Scan(&count).Error
	return count, err
}
