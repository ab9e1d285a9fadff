package service

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/MarioWinter/coderr/internal/identity"
	offerdomain "github.com/MarioWinter/coderr/internal/offer/domain"
	"github.com/MarioWinter/coderr/internal/order/domain"
	"github.com/MarioWinter/coderr/internal/policy"
	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB        *gorm.DB
	Log       *zap.Logger
	GenID     *snowflake.Node
	Repo      domain.Repository
	OfferRepo offerdomain.Repository
}

type Service struct {
	db        *gorm.DB
	log       *zap.Logger
	repo      domain.Repository
	offerRepo offerdomain.Repository
	genID     *snowflake.Node
}

func New(p Params) domain.Service {
	return &Service{
		db:        p.DB,
		log:       p.Log.Named("order.service"),
		repo:      p.Repo,
		offerRepo: p.OfferRepo,
		genID:     p.GenID,
	}
}

func (s *Service) Create(ctx context.Context, principal identity.Principal, req domain.CreateRequest) (*domain.Response, error) {
	if err := policy.CanCreateOrder(principal); err != nil {
		return nil, err
	}

	detailID, err := snowflake.ParseString(strings.TrimSpace(req.OfferDetailID))
	if err != nil {
		return nil, domain.ErrInvalidID
	}

	detail, err := s.offerRepo.FindDetailByID(ctx, s.db, detailID.Int64())
	if err != nil {
		return nil, err
	}
	if detail == nil {
		return nil, domain.ErrDetailNotFound
	}

	offer, err := s.offerRepo.FindByID(ctx, s.db, detail.OfferID.Int64())
	if err != nil {
		return nil, err
	}
	if offer == nil {
		return nil, domain.ErrDetailNotFound
	}

	now := time.Now().UTC()
	o := &domain.Order{
		ID:            s.genID.Generate(),
		CustomerID:    principal.UserID,
		BusinessID:    offer.OwnerID,
		OfferDetailID: detail.ID,
		Title:         detail.Title,
		Revisions:     detail.Revisions,
		DeliveryDays:  detail.DeliveryDays,
		Price:         detail.Price,
		Features:      detail.Features,
		Tier:          string(detail.Tier),
		Status:        domain.StatusInProgress,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.repo.Create(ctx, s.db, o); err != nil {
		return nil, err
	}

	s.log.Info("order created",
		zap.String("order_id", o.ID.String()),
		zap.String("customer_id", o.CustomerID.String()),
		zap.String("business_id", o.BusinessID.String()),
	)

	resp := toResponse(o)
	return &resp, nil
}

func (s *Service) UpdateStatus(ctx context.Context, principal identity.Principal, req domain.UpdateStatusRequest) (*domain.Response, error) {
	orderID, err := snowflake.ParseString(strings.TrimSpace(req.ID))
	if err != nil {
		return nil, domain.ErrInvalidID
	}

	o, err := s.repo.FindByID(ctx, s.db, orderID.Int64())
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, domain.ErrNotFound
	}
	if err := policy.CanMutateOrderStatus(principal, o.BusinessID); err != nil {
		return nil, err
	}

	next := domain.Status(strings.TrimSpace(req.Status))
	if !next.Valid() {
		return nil, domain.ErrInvalidStatus
	}
	if o.Status.Terminal() {
		return nil, domain.ErrOrderClosed
	}
	if next == o.Status {
		resp := toResponse(o)
		return &resp, nil
	}

	o.Status = next
	o.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, s.db, o); err != nil {
		return nil, err
	}

	s.log.Info("order status changed",
		zap.String("order_id", o.ID.String()),
		zap.String("status", string(o.Status)),
	)

	resp := toResponse(o)
	return &resp, nil
}

func (s *Service) Delete(ctx context.Context, principal identity.Principal, id string) error {
	if err := policy.CanDeleteOrder(principal); err != nil {
		return err
	}

	orderID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil {
		return domain.ErrInvalidID
	}

	o, err := s.repo.FindByID(ctx, s.db, orderID.Int64())
	if err != nil {
		return err
	}
	if o == nil {
		return domain.ErrNotFound
	}

	return s.repo.Delete(ctx, s.db, o.ID.Int64())
}

func (s *Service) Get(ctx context.Context, principal identity.Principal, id string) (*domain.Response, error) {
	if !principal.Authenticated {
		return nil, policy.ErrUnauthenticated
	}

	orderID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil {
		return nil, domain.ErrInvalidID
	}

	o, err := s.repo.FindByID(ctx, s.db, orderID.Int64())
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, domain.ErrNotFound
	}

	// Only the two parties and staff may read an order.
	if principal.UserID != o.CustomerID && principal.UserID != o.BusinessID && !principal.Admin {
		return nil, policy.ErrForbidden
	}

	resp := toResponse(o)
	return &resp, nil
}

func (s *Service) List(ctx context.Context, principal identity.Principal) ([]domain.Response, error) {
	if !principal.Authenticated {
		return nil, policy.ErrUnauthenticated
	}

	orders, err := s.repo.FindByParty(ctx, s.db, principal.UserID.Int64())
	if err != nil {
		return nil, err
	}

	results := make([]domain.Response, 0, len(orders))
	for i := range orders {
		results = append(results, toResponse(&orders[i]))
	}
	return results, nil
}

func (s *Service) CountInProgress(ctx context.Context, businessUserID string) (*domain.CountResponse, error) {
	businessID, err := s.resolveBusinessUser(ctx, businessUserID)
	if err != nil {
		return nil, err
	}

	count, err := s.repo.CountByBusinessAndStatus(ctx, s.db, businessID, domain.StatusInProgress)
	if err != nil {
		return nil, err
	}
	return &domain.CountResponse{OrderCount: count}, nil
}

func (s *Service) CountCompleted(ctx context.Context, businessUserID string) (*domain.CompletedCountResponse, error) {
	businessID, err := s.resolveBusinessUser(ctx, businessUserID)
	if err != nil {
		return nil, err
	}

	count, err := s.repo.CountByBusinessAndStatus(ctx, s.db, businessID, domain.StatusCompleted)
	if err != nil {
		return nil, err
	}
	return &domain.CompletedCountResponse{CompletedOrderCount: count}, nil
}

// resolveBusinessUser treats malformed ids and ids of non-business users
// the same way the lookup of a missing user is treated.
func (s *Service) resolveBusinessUser(ctx context.Context, id string) (int64, error) {
	businessID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil {
		return 0, domain.ErrBusinessNotFound
	}

	exists, err := s.repo.BusinessUserExists(ctx, s.db, businessID.Int64())
	if err != nil {
		return 0, err
	}
	if !exists {
		return 0, domain.ErrBusinessNotFound
	}
	return businessID.Int64(), nil
}

func toResponse(o *domain.Order) domain.Response {
	features := []string{}
	if len(o.Features) > 0 {
		_ = json.Unmarshal(o.Features, &features)
	}
	return domain.Response{
		ID:           o.ID.String(),
		CustomerID:   o.CustomerID.String(),
		BusinessID:   o.BusinessID.String(),
		Title:        o.Title,
		Revisions:    o.Revisions,
		DeliveryDays: o.DeliveryDays,
		Price:        o.Price,
		Features:     features,
		Tier:         o.Tier,
		Status:       string(o.Status),
		CreatedAt:    o.CreatedAt,
		UpdatedAt:    o.UpdatedAt,
	}
}
