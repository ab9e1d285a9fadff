package service

import (
	"context"
	"math"

	"github.com/MarioWinter/coderr/internal/stats/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB   *gorm.DB
	Log  *zap.Logger
	Repo domain.Repository
}

type Service struct {
	db   *gorm.DB
	log  *zap.Logger
	repo domain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:   p.DB,
		log:  p.Log.Named("stats.service"),
		repo: p.Repo,
	}
}

func (s *Service) BaseInfo(ctx context.Context) (*domain.Response, error) {
	reviews, err := s.repo.ReviewStats(ctx, s.db)
	if err != nil {
		return nil, err
	}
	businesses, err := s.repo.BusinessProfileCount(ctx, s.db)
	if err != nil {
		return nil, err
	}
	offers, err := s.repo.OfferCount(ctx, s.db)
	if err != nil {
		return nil, err
	}

	return &domain.Response{
		ReviewCount:          reviews.Count,
		AverageRating:        math.Round(reviews.Average*10) / 10,
		BusinessProfileCount: businesses,
		OfferCount:           offers,
	}, nil
}
