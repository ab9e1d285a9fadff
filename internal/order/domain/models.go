package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

type Status string

const (
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
)

func (s Status) Valid() bool {
	switch s {
	case StatusInProgress, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// Terminal reports whether no further transition is allowed from s.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// Order is a contract between a customer and a business user. Everything
// describing the purchased work is copied from the offer detail at creation
// time, so later offer edits never change an existing order.
type Order struct {
	ID            snowflake.ID   `gorm:"primaryKey"`
	CustomerID    snowflake.ID   `gorm:"column:customer_id;index;not null"`
	BusinessID    snowflake.ID   `gorm:"column:business_id;index;not null"`
	OfferDetailID snowflake.ID   `gorm:"column:offer_detail_id;index;not null"`
	Title         string         `gorm:"not null"`
	Revisions     int            `gorm:"not null"`
	DeliveryDays  int            `gorm:"column:delivery_time_in_days;not null"`
	Price         float64        `gorm:"type:numeric(10,2);not null"`
	Features      datatypes.JSON `gorm:"not null"`
	Tier          string         `gorm:"column:offer_type;not null"`
	Status        Status         `gorm:"not null;default:in_progress"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (Order) TableName() string {
	return "orders"
}
