package service

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/MarioWinter/coderr/internal/identity"
	"github.com/MarioWinter/coderr/internal/offer/domain"
	"github.com/MarioWinter/coderr/internal/policy"
	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
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
		log:   p.Log.Named("offer.service"),
		repo:  p.Repo,
		genID: p.GenID,
	}
}

func (s *Service) Create(ctx context.Context, principal identity.Principal, req domain.CreateRequest) (*domain.Response, error) {
	if err := policy.CanCreateOffer(principal); err != nil {
		return nil, err
	}

	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, domain.ErrInvalidTitle
	}

	if len(req.Details) != 3 {
		return nil, domain.ErrTierCount
	}
	seen := make(map[domain.Tier]bool, 3)
	for _, d := range req.Details {
		tier := domain.Tier(strings.ToLower(strings.TrimSpace(d.Tier)))
		if !tier.Valid() {
			return nil, domain.ErrInvalidTierType
		}
		if seen[tier] {
			return nil, domain.ErrDuplicateTierType
		}
		seen[tier] = true
	}
	for _, tier := range domain.AllTiers {
		if !seen[tier] {
			return nil, domain.ErrTierSet
		}
	}

	now := time.Now().UTC()
	o := &domain.Offer{
		ID:          s.genID.Generate(),
		OwnerID:     principal.UserID,
		Title:       title,
		Description: strings.TrimSpace(req.Description),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if req.ImageURL != nil {
		o.ImageURL = strings.TrimSpace(*req.ImageURL)
	}

	details := make([]domain.OfferDetail, 0, 3)
	for _, d := range req.Details {
		detail, err := s.buildDetail(o.ID, d)
		if err != nil {
			return nil, err
		}
		details = append(details, *detail)
	}
	o.Details = details
	o.MinPrice, o.MinDeliveryDays = aggregates(details)

	// Offer and its three details are one atomic unit.
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.repo.Create(ctx, tx, o)
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("offer created",
		zap.String("offer_id", o.ID.String()),
		zap.String("owner_id", o.OwnerID.String()),
	)

	resp := toResponse(o)
	return &resp, nil
}

func (s *Service) Update(ctx context.Context, principal identity.Principal, req domain.UpdateRequest) (*domain.Response, error) {
	offerID, err := snowflake.ParseString(strings.TrimSpace(req.ID))
	if err != nil {
		return nil, domain.ErrInvalidID
	}

	o, err := s.repo.FindByID(ctx, s.db, offerID.Int64())
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, domain.ErrNotFound
	}
	if err := policy.CanMutateOffer(principal, o.OwnerID); err != nil {
		return nil, err
	}

	// Validate the tier payloads before touching anything: every supplied
	// type must be valid and unique within the request, and must already
	// exist on this offer.
	seen := make(map[domain.Tier]bool, len(req.Details))
	patched := make(map[domain.Tier]domain.TierRequest, len(req.Details))
	for _, d := range req.Details {
		tier := domain.Tier(strings.ToLower(strings.TrimSpace(d.Tier)))
		if !tier.Valid() {
			return nil, domain.ErrInvalidTierType
		}
		if seen[tier] {
			return nil, domain.ErrDuplicateTierType
		}
		seen[tier] = true
		if findDetail(o.Details, tier) == nil {
			return nil, domain.ErrDetailNotFound
		}
		patched[tier] = d
	}

	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return nil, domain.ErrInvalidTitle
		}
		o.Title = title
	}
	if req.Description != nil {
		o.Description = strings.TrimSpace(*req.Description)
	}
	if req.ImageURL != nil {
		o.ImageURL = strings.TrimSpace(*req.ImageURL)
	}

	changedDetails := make([]*domain.OfferDetail, 0, len(patched))
	for tier, d := range patched {
		detail := findDetail(o.Details, tier)
		if err := applyDetailPatch(detail, d); err != nil {
			return nil, err
		}
		changedDetails = append(changedDetails, detail)
	}

	o.UpdatedAt = time.Now().UTC()

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.repo.UpdateOffer(ctx, tx, o); err != nil {
			return err
		}
		for _, detail := range changedDetails {
			if err := s.repo.UpdateDetail(ctx, tx, detail); err != nil {
				return err
			}
		}
		if len(changedDetails) > 0 {
			return s.repo.RefreshAggregates(ctx, tx, o.ID.Int64())
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	o.MinPrice, o.MinDeliveryDays = aggregates(o.Details)

	resp := toResponse(o)
	return &resp, nil
}

func (s *Service) Delete(ctx context.Context, principal identity.Principal, id string) error {
	offerID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil {
		return domain.ErrInvalidID
	}

	o, err := s.repo.FindByID(ctx, s.db, offerID.Int64())
	if err != nil {
		return err
	}
	if o == nil {
		return domain.ErrNotFound
	}
	if err := policy.CanMutateOffer(principal, o.OwnerID); err != nil {
		return err
	}

	// Details referenced by in-progress orders are protected.
	active, err := s.repo.CountActiveOrders(ctx, s.db, o.ID.Int64())
	if err != nil {
		return err
	}
	if active > 0 {
		return domain.ErrOfferInUse
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.repo.Delete(ctx, tx, o.ID.Int64())
	})
}

func (s *Service) Get(ctx context.Context, id string) (*domain.DetailResponse, error) {
	offerID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil {
		return nil, domain.ErrInvalidID
	}

	o, err := s.repo.FindByID(ctx, s.db, offerID.Int64())
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, domain.ErrNotFound
	}

	resp := toDetailResponse(o)
	return &resp, nil
}

func (s *Service) List(ctx context.Context, req domain.ListRequest) (*domain.ListResponse, error) {
	filter := domain.ListFilter{
		MinPrice:        req.MinPrice,
		MaxDeliveryTime: req.MaxDeliveryTime,
		Search:          strings.TrimSpace(req.Search),
		Limit:           domain.PageSize,
	}

	if creator := strings.TrimSpace(req.CreatorID); creator != "" {
		creatorID, err := snowflake.ParseString(creator)
		if err != nil {
			return nil, domain.ErrInvalidID
		}
		filter.CreatorID = creatorID.Int64()
	}

	orderClause, err := orderClause(req.Ordering)
	if err != nil {
		return nil, err
	}
	filter.OrderClause = orderClause

	page := req.Page
	if page < 1 {
		page = 1
	}
	filter.Offset = (page - 1) * domain.PageSize

	items, total, err := s.repo.List(ctx, s.db, filter)
	if err != nil {
		return nil, err
	}

	results := make([]domain.Response, 0, len(items))
	for i := range items {
		results = append(results, toResponse(&items[i]))
	}

	return &domain.ListResponse{
		Count:    total,
		Results:  results,
		Page:     page,
		PageSize: domain.PageSize,
	}, nil
}

func (s *Service) GetTier(ctx context.Context, id string) (*domain.TierView, error) {
	detailID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil {
		return nil, domain.ErrInvalidID
	}

	d, err := s.repo.FindDetailByID(ctx, s.db, detailID.Int64())
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, domain.ErrDetailNotFound
	}

	view := toTierView(d)
	return &view, nil
}

func (s *Service) buildDetail(offerID snowflake.ID, req domain.TierRequest) (*domain.OfferDetail, error) {
	if req.Title == nil || strings.TrimSpace(*req.Title) == "" {
		return nil, domain.ErrInvalidTitle
	}
	if req.Revisions == nil || *req.Revisions < -1 {
		return nil, domain.ErrInvalidRevisions
	}
	if req.DeliveryDays == nil || *req.DeliveryDays <= 0 {
		return nil, domain.ErrInvalidDelivery
	}
	if req.Price == nil || *req.Price < 0 {
		return nil, domain.ErrInvalidPrice
	}

	features, err := encodeFeatures(req.Features)
	if err != nil {
		return nil, err
	}

	return &domain.OfferDetail{
		ID:           s.genID.Generate(),
		OfferID:      offerID,
		Tier:         domain.Tier(strings.ToLower(strings.TrimSpace(req.Tier))),
		Title:        strings.TrimSpace(*req.Title),
		Revisions:    *req.Revisions,
		DeliveryDays: *req.DeliveryDays,
		Price:        round2(*req.Price),
		Features:     features,
	}, nil
}

func applyDetailPatch(detail *domain.OfferDetail, req domain.TierRequest) error {
	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return domain.ErrInvalidTitle
		}
		detail.Title = title
	}
	if req.Revisions != nil {
		if *req.Revisions < -1 {
			return domain.ErrInvalidRevisions
		}
		detail.Revisions = *req.Revisions
	}
	if req.DeliveryDays != nil {
		if *req.DeliveryDays <= 0 {
			return domain.ErrInvalidDelivery
		}
		detail.DeliveryDays = *req.DeliveryDays
	}
	if req.Price != nil {
		if *req.Price < 0 {
			return domain.ErrInvalidPrice
		}
		detail.Price = round2(*req.Price)
	}
	if req.Features != nil {
		features, err := encodeFeatures(req.Features)
		if err != nil {
			return err
		}
		detail.Features = features
	}
	return nil
}

func findDetail(details []domain.OfferDetail, tier domain.Tier) *domain.OfferDetail {
	for i := range details {
		if details[i].Tier == tier {
			return &details[i]
		}
	}
	return nil
}

func aggregates(details []domain.OfferDetail) (minPrice float64, minDelivery int) {
	for i, d := range details {
		if i == 0 || d.Price < minPrice {
			minPrice = d.Price
		}
		if i == 0 || d.DeliveryDays < minDelivery {
			minDelivery = d.DeliveryDays
		}
	}
	return minPrice, minDelivery
}

func orderClause(ordering string) (string, error) {
	switch strings.TrimSpace(ordering) {
	case "", "-updated_at":
		return "updated_at DESC", nil
	case "updated_at":
		return "updated_at ASC", nil
	case "min_price":
		return "min_price ASC", nil
	case "-min_price":
		return "min_price DESC", nil
	default:
		return "", domain.ErrInvalidOrdering
	}
}

func toResponse(o *domain.Offer) domain.Response {
	details := make([]domain.TierView, 0, len(o.Details))
	for i := range o.Details {
		details = append(details, toTierView(&o.Details[i]))
	}
	return domain.Response{
		ID:              o.ID.String(),
		UserID:          o.OwnerID.String(),
		Title:           o.Title,
		ImageURL:        imageURL(o),
		Description:     o.Description,
		CreatedAt:       o.CreatedAt,
		UpdatedAt:       o.UpdatedAt,
		Details:         details,
		MinPrice:        o.MinPrice,
		MinDeliveryTime: o.MinDeliveryDays,
	}
}

func toDetailResponse(o *domain.Offer) domain.DetailResponse {
	refs := make([]domain.DetailRef, 0, len(o.Details))
	for i := range o.Details {
		refs = append(refs, domain.DetailRef{
			ID:  o.Details[i].ID.String(),
			URL: fmt.Sprintf("/api/offerdetails/%s/", o.Details[i].ID.String()),
		})
	}
	return domain.DetailResponse{
		ID:              o.ID.String(),
		UserID:          o.OwnerID.String(),
		Title:           o.Title,
		ImageURL:        imageURL(o),
		Description:     o.Description,
		CreatedAt:       o.CreatedAt,
		UpdatedAt:       o.UpdatedAt,
		Details:         refs,
		MinPrice:        o.MinPrice,
		MinDeliveryTime: o.MinDeliveryDays,
	}
}

func toTierView(d *domain.OfferDetail) domain.TierView {
	return domain.TierView{
		ID:           d.ID.String(),
		Title:        d.Title,
		Revisions:    d.Revisions,
		DeliveryDays: d.DeliveryDays,
		Price:        d.Price,
		Features:     decodeFeatures(d.Features),
		Tier:         string(d.Tier),
	}
}

func imageURL(o *domain.Offer) *string {
	if o.ImageURL == "" {
		return nil
	}
	url := o.ImageURL
	return &url
}

func encodeFeatures(features []string) (datatypes.JSON, error) {
	if features == nil {
		features = []string{}
	}
	raw, err := json.Marshal(features)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(raw), nil
}

func decodeFeatures(raw datatypes.JSON) []string {
	features := []string{}
	if len(raw) == 0 {
		return features
	}
	_ = json.Unmarshal(raw, &features)
	return features
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
