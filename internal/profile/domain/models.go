package domain

import (
	"time"

	"github.com/MarioWinter/coderr/internal/identity"
	"github.com/bwmarrin/snowflake"
)

type Profile struct {
	ID           snowflake.ID      `json:"id" gorm:"primaryKey"`
	Username     string            `json:"username" gorm:"type:text;not null;uniqueIndex"`
	Email        string            `json:"email" gorm:"type:text;not null;uniqueIndex"`
	PasswordHash string            `json:"-" gorm:"type:text;not null"`
	Type         identity.UserType `json:"type" gorm:"type:text;not null;index"`
	IsStaff      bool              `json:"-" gorm:"not null;default:false"`
	FirstName    string            `json:"first_name" gorm:"type:text"`
	LastName     string            `json:"last_name" gorm:"type:text"`
	FileURL      string            `json:"file" gorm:"type:text"`
	Location     string            `json:"location" gorm:"type:text"`
	Tel          string            `json:"tel" gorm:"type:text"`
	Description  string            `json:"description" gorm:"type:text"`
	WorkingHours string            `json:"working_hours" gorm:"type:text"`
	Token        string            `json:"-" gorm:"type:text;uniqueIndex"`
	CreatedAt    time.Time         `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt    time.Time         `json:"updated_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (Profile) TableName() string { return "profiles" }

// Principal maps the stored profile onto the identity passed into services.
func (p *Profile) Principal() identity.Principal {
	return identity.Principal{
		UserID:        p.ID,
		Type:          p.Type,
		Admin:         p.IsStaff,
		Authenticated: true,
	}
}
