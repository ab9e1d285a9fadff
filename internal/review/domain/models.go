package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Review rates a business user. A reviewer may leave at most one review per
// business user, enforced by a unique index on the pair.
type Review struct {
	ID          snowflake.ID `gorm:"primaryKey"`
	BusinessID  snowflake.ID `gorm:"column:business_id;uniqueIndex:ux_reviews_business_reviewer;not null"`
	ReviewerID  snowflake.ID `gorm:"column:reviewer_id;uniqueIndex:ux_reviews_business_reviewer;not null"`
	Rating      float64      `gorm:"type:numeric(2,1);not null"`
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (Review) TableName() string {
	return "reviews"
}
