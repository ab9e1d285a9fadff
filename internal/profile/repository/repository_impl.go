package repository

import (
	"context"
	"errors"

	"github.com/MarioWinter/coderr/internal/identity"
	"github.com/MarioWinter/coderr/internal/profile/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Create(ctx context.Context, db *gorm.DB, profile *domain.Profile) error {
	return db.WithContext(ctx).Create(profile).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id int64) (*domain.Profile, error) {
	var p domain.Profile
	err := db.WithContext(ctx).First(&p, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repo) FindByUsername(ctx context.Context, db *gorm.DB, username string) (*domain.Profile, error) {
	var p domain.Profile
	err := db.WithContext(ctx).First(&p, "username = ?", username).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repo) FindByToken(ctx context.Context, db *gorm.DB, token string) (*domain.Profile, error) {
	var p domain.Profile
	err := db.WithContext(ctx).First(&p, "token = ?", token).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repo) FindByType(ctx context.Context, db *gorm.DB, userType identity.UserType) ([]domain.Profile, error) {
	var items []domain.Profile
	err := db.WithContext(ctx).
		Where("type = ?", userType).
		Order("username ASC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, profile *domain.Profile) error {
	if profile == nil {
		return gorm.ErrInvalidData
	}
	return db.WithContext(ctx).Save(profile).Error
}
