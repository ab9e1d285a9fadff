package domain

import (
	"context"

	"github.com/MarioWinter/coderr/internal/identity"
	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, db *gorm.DB, profile *Profile) error
	FindByID(ctx context.Context, db *gorm.DB, id int64) (*Profile, error)
	FindByUsername(ctx context.Context, db *gorm.DB, username string) (*Profile, error)
	FindByToken(ctx context.Context, db *gorm.DB, token string) (*Profile, error)
	FindByType(ctx context.Context, db *gorm.DB, userType identity.UserType) ([]Profile, error)
	Update(ctx context.Context, db *gorm.DB, profile *Profile) error
}
