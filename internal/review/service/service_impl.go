package service

import (
	"context"
	"math"
	"strings"
	"time"

	"github.com/MarioWinter/coderr/internal/identity"
	"github.com/MarioWinter/coderr/internal/policy"
	"github.com/MarioWinter/coderr/internal/review/domain"
	"github.com/MarioWinter/coderr/pkg/db"
	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Repo  domain.Repository
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	repo  domain.Repository
	genID *snowflake.Node
}

func New(p Params) domain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("review.service"),
		repo:  p.Repo,
		genID: p.GenID,
	}
}

func (s *Service) Create(ctx context.Context, principal identity.Principal, req domain.CreateRequest) (*domain.Response, error) {
	if err := policy.CanCreateReview(principal); err != nil {
		return nil, err
	}

	businessID, err := snowflake.ParseString(strings.TrimSpace(req.BusinessID))
	if err != nil {
		return nil, domain.ErrBusinessNotFound
	}
	exists, err := s.repo.BusinessUserExists(ctx, s.db, businessID.Int64())
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, domain.ErrBusinessNotFound
	}

	rating, err := validRating(req.Rating)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	rv := &domain.Review{
		ID:          s.genID.Generate(),
		BusinessID:  businessID,
		ReviewerID:  principal.UserID,
		Rating:      rating,
		Description: strings.TrimSpace(req.Description),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	// The unique index on (business_id, reviewer_id) is the source of truth
	// for the one-review-per-pair rule.
	if err := s.repo.Create(ctx, s.db, rv); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return nil, domain.ErrDuplicateReview
		}
		return nil, err
	}

	s.log.Info("review created",
		zap.String("review_id", rv.ID.String()),
		zap.String("business_id", rv.BusinessID.String()),
		zap.String("reviewer_id", rv.ReviewerID.String()),
	)

	resp := toResponse(rv)
	return &resp, nil
}

func (s *Service) Update(ctx context.Context, principal identity.Principal, req domain.UpdateRequest) (*domain.Response, error) {
	reviewID, err := snowflake.ParseString(strings.TrimSpace(req.ID))
	if err != nil {
		return nil, domain.ErrInvalidID
	}

	rv, err := s.repo.FindByID(ctx, s.db, reviewID.Int64())
	if err != nil {
		return nil, err
	}
	if rv == nil {
		return nil, domain.ErrNotFound
	}
	if err := policy.CanMutateReview(principal, rv.ReviewerID); err != nil {
		return nil, err
	}

	if req.Rating != nil {
		rating, err := validRating(*req.Rating)
		if err != nil {
			return nil, err
		}
		rv.Rating = rating
	}
	if req.Description != nil {
		rv.Description = strings.TrimSpace(*req.Description)
	}
	rv.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, s.db, rv); err != nil {
		return nil, err
	}

	resp := toResponse(rv)
	return &resp, nil
}

func (s *Service) Delete(ctx context.Context, principal identity.Principal, id string) error {
	reviewID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil {
		return domain.ErrInvalidID
	}

	rv, err := s.repo.FindByID(ctx, s.db, reviewID.Int64())
	if err != nil {
		return err
	}
	if rv == nil {
		return domain.ErrNotFound
	}
	if err := policy.CanMutateReview(principal, rv.ReviewerID); err != nil {
		return err
	}

	return s.repo.Delete(ctx, s.db, rv.ID.Int64())
}

func (s *Service) Get(ctx context.Context, principal identity.Principal, id string) (*domain.Response, error) {
	if !principal.Authenticated {
		return nil, policy.ErrUnauthenticated
	}

	reviewID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil {
		return nil, domain.ErrInvalidID
	}

	rv, err := s.repo.FindByID(ctx, s.db, reviewID.Int64())
	if err != nil {
		return nil, err
	}
	if rv == nil {
		return nil, domain.ErrNotFound
	}

	resp := toResponse(rv)
	return &resp, nil
}

func (s *Service) List(ctx context.Context, principal identity.Principal, req domain.ListRequest) ([]domain.Response, error) {
	if !principal.Authenticated {
		return nil, policy.ErrUnauthenticated
	}

	filter := domain.ListFilter{}
	if v := strings.TrimSpace(req.BusinessID); v != "" {
		id, err := snowflake.ParseString(v)
		if err != nil {
			return nil, domain.ErrInvalidID
		}
		filter.BusinessID = id.Int64()
	}
	if v := strings.TrimSpace(req.ReviewerID); v != "" {
		id, err := snowflake.ParseString(v)
		if err != nil {
			return nil, domain.ErrInvalidID
		}
		filter.ReviewerID = id.Int64()
	}

	orderClause, err := orderClause(req.Ordering)
	if err != nil {
		return nil, err
	}
	filter.OrderClause = orderClause

	reviews, err := s.repo.List(ctx, s.db, filter)
	if err != nil {
		return nil, err
	}

	results := make([]domain.Response, 0, len(reviews))
	for i := range reviews {
		results = append(results, toResponse(&reviews[i]))
	}
	return results, nil
}

func validRating(v float64) (float64, error) {
	rounded := math.Round(v*10) / 10
	if rounded < 0 || rounded > 5 {
		return 0, domain.ErrInvalidRating
	}
	return rounded, nil
}

func orderClause(ordering string) (string, error) {
	switch strings.TrimSpace(ordering) {
	case "", "-updated_at":
		return "updated_at DESC", nil
	case "updated_at":
		return "updated_at ASC", nil
	case "rating":
		return "rating ASC", nil
	case "-rating":
		return "rating DESC", nil
	default:
		return "", domain.ErrInvalidOrdering
	}
}

func toResponse(rv *domain.Review) domain.Response {
	return domain.Response{
		ID:          rv.ID.String(),
		BusinessID:  rv.BusinessID.String(),
		ReviewerID:  rv.ReviewerID.String(),
		Rating:      rv.Rating,
		Description: rv.Description,
		CreatedAt:   rv.CreatedAt,
		UpdatedAt:   rv.UpdatedAt,
	}
}
