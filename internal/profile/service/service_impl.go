package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"strings"
	"time"

	"github.com/MarioWinter/coderr/internal/identity"
	"github.com/MarioWinter/coderr/internal/profile/domain"
	pkgdb "github.com/MarioWinter/coderr/pkg/db"
	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
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
		log:   p.Log.Named("profile.service"),
		repo:  p.Repo,
		genID: p.GenID,
	}
}

func (s *Service) Register(ctx context.Context, req domain.RegisterRequest) (*domain.AuthResponse, error) {
	username := strings.TrimSpace(req.Username)
	if username == "" {
		return nil, domain.ErrInvalidUsername
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, domain.ErrInvalidEmail
	}
	if req.Password == "" {
		return nil, domain.ErrInvalidPassword
	}
	if req.Password != req.RepeatPassword {
		return nil, domain.ErrPasswordMismatch
	}
	userType := identity.UserType(strings.ToLower(strings.TrimSpace(req.Type)))
	if !userType.Valid() {
		return nil, domain.ErrInvalidType
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	token, err := newToken()
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	p := &domain.Profile{
		ID:           s.genID.Generate(),
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		Type:         userType,
		Token:        token,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.repo.Create(ctx, s.db, p); err != nil {
		if pkgdb.IsDuplicateKeyErr(err) {
			return nil, domain.ErrUserExists
		}
		return nil, err
	}

	s.log.Info("profile registered",
		zap.String("profile_id", p.ID.String()),
		zap.String("type", string(p.Type)),
	)

	return authResponse(p), nil
}

func (s *Service) Login(ctx context.Context, req domain.LoginRequest) (*domain.AuthResponse, error) {
	username := strings.TrimSpace(req.Username)
	if username == "" || req.Password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	p, err := s.repo.FindByUsername(ctx, s.db, username)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(p.PasswordHash), []byte(req.Password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}

	// Rotate the token on every login.
	token, err := newToken()
	if err != nil {
		return nil, err
	}
	p.Token = token
	p.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, s.db, p); err != nil {
		return nil, err
	}

	return authResponse(p), nil
}

func (s *Service) Authenticate(ctx context.Context, token string) (identity.Principal, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return identity.Anonymous(), domain.ErrInvalidToken
	}
	p, err := s.repo.FindByToken(ctx, s.db, token)
	if err != nil {
		return identity.Anonymous(), err
	}
	if p == nil {
		return identity.Anonymous(), domain.ErrInvalidToken
	}
	return p.Principal(), nil
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Response, error) {
	profileID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil {
		return nil, domain.ErrInvalidID
	}

	p, err := s.repo.FindByID(ctx, s.db, profileID.Int64())
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}

	resp := toResponse(p)
	return &resp, nil
}

func (s *Service) Update(ctx context.Context, principal identity.Principal, req domain.UpdateRequest) (*domain.Response, error) {
	profileID, err := snowflake.ParseString(strings.TrimSpace(req.ID))
	if err != nil {
		return nil, domain.ErrInvalidID
	}

	p, err := s.repo.FindByID(ctx, s.db, profileID.Int64())
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}

	// A profile is editable by its owner or staff only.
	if principal.UserID != p.ID && !principal.Admin {
		if !principal.Authenticated {
			return nil, domain.ErrInvalidToken
		}
		return nil, domain.ErrNotOwner
	}

	if req.FirstName != nil {
		p.FirstName = strings.TrimSpace(*req.FirstName)
	}
	if req.LastName != nil {
		p.LastName = strings.TrimSpace(*req.LastName)
	}
	if req.FileURL != nil {
		p.FileURL = strings.TrimSpace(*req.FileURL)
	}
	if req.Location != nil {
		p.Location = strings.TrimSpace(*req.Location)
	}
	if req.Tel != nil {
		p.Tel = strings.TrimSpace(*req.Tel)
	}
	if req.Description != nil {
		p.Description = strings.TrimSpace(*req.Description)
	}
	if req.WorkingHours != nil {
		p.WorkingHours = strings.TrimSpace(*req.WorkingHours)
	}

	p.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, s.db, p); err != nil {
		return nil, err
	}

	resp := toResponse(p)
	return &resp, nil
}

func (s *Service) ListByType(ctx context.Context, userType identity.UserType) ([]domain.Response, error) {
	if !userType.Valid() {
		return nil, domain.ErrInvalidType
	}
	items, err := s.repo.FindByType(ctx, s.db, userType)
	if err != nil {
		return nil, err
	}
	resp := make([]domain.Response, 0, len(items))
	for i := range items {
		resp = append(resp, toResponse(&items[i]))
	}
	return resp, nil
}

func toResponse(p *domain.Profile) domain.Response {
	return domain.Response{
		ID:           p.ID.String(),
		Username:     p.Username,
		Email:        p.Email,
		Type:         string(p.Type),
		FirstName:    p.FirstName,
		LastName:     p.LastName,
		FileURL:      p.FileURL,
		Location:     p.Location,
		Tel:          p.Tel,
		Description:  p.Description,
		WorkingHours: p.WorkingHours,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

func authResponse(p *domain.Profile) *domain.AuthResponse {
	return &domain.AuthResponse{
		Token:    p.Token,
		UserID:   p.ID.String(),
		Username: p.Username,
		Email:    p.Email,
		Type:     string(p.Type),
	}
}

func newToken() (string, error) {
	buf := make([]byte, 20)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
