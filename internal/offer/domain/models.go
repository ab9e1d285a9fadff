package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

// Tier is one of the three fixed pricing variants every offer carries.
type Tier string

const (
	TierBasic    Tier = "basic"
	TierStandard Tier = "standard"
	TierPremium  Tier = "premium"
)

func (t Tier) Valid() bool {
	return t == TierBasic || t == TierStandard || t == TierPremium
}

// AllTiers is the complete tier set required at offer creation.
var AllTiers = []Tier{TierBasic, TierStandard, TierPremium}

type Offer struct {
	ID          snowflake.ID `gorm:"primaryKey"`
	OwnerID     snowflake.ID `gorm:"not null;index"`
	Title       string       `gorm:"type:text;not null"`
	Description string       `gorm:"type:text"`
	ImageURL    string       `gorm:"type:text"`

	// Denormalized aggregates over the offer's details, recomputed inside
	// the same transaction as any tier mutation.
	MinPrice        float64 `gorm:"type:numeric(10,2);not null"`
	MinDeliveryDays int     `gorm:"not null"`

	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`

	Details []OfferDetail `gorm:"foreignKey:OfferID;constraint:OnDelete:CASCADE"`
}

func (Offer) TableName() string { return "offers" }

type OfferDetail struct {
	ID      snowflake.ID `gorm:"primaryKey"`
	OfferID snowflake.ID `gorm:"not null;uniqueIndex:ux_offer_details_offer_tier,priority:1"`
	Tier    Tier         `gorm:"type:text;not null;uniqueIndex:ux_offer_details_offer_tier,priority:2"`

	Title        string         `gorm:"type:text;not null"`
	Revisions    int            `gorm:"not null;default:-1"` // -1 = unlimited
	DeliveryDays int            `gorm:"column:delivery_time_in_days;not null"`
	Price        float64        `gorm:"type:numeric(10,2);not null"`
	Features     datatypes.JSON `gorm:"not null;default:'[]'"`
}

func (OfferDetail) TableName() string { return "offer_details" }
