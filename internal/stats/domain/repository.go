package domain

import (
	"context"

	"gorm.io/gorm"
)

// ReviewStats is the aggregate over all reviews. Average is zero when the
// ledger is empty.
type ReviewStats struct {
	Count   int64
	Average float64
}

type Repository interface {
	ReviewStats(ctx context.Context, db *gorm.DB) (*ReviewStats, error)
	BusinessProfileCount(ctx context.Context, db *gorm.DB) (int64, error)
	OfferCount(ctx context.Context, db *gorm.DB) (int64, error)
}
