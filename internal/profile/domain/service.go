package domain

import (
	"context"
	"errors"
	"time"

	"github.com/MarioWinter/coderr/internal/identity"
)

type Service interface {
	Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error)
	Login(ctx context.Context, req LoginRequest) (*AuthResponse, error)
	Authenticate(ctx context.Context, token string) (identity.Principal, error)
	Get(ctx context.Context, id string) (*Response, error)
	Update(ctx context.Context, principal identity.Principal, req UpdateRequest) (*Response, error)
	ListByType(ctx context.Context, userType identity.UserType) ([]Response, error)
}

type RegisterRequest struct {
	Username       string `json:"username"`
	Email          string `json:"email"`
	Password       string `json:"password"`
	RepeatPassword string `json:"repeated_password"`
	Type           string `json:"type"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// AuthResponse is returned by registration and login. The token is the
// credential the HTTP middleware later resolves back into a Principal.
type AuthResponse struct {
	Token    string `json:"token"`
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Type     string `json:"type"`
}

type UpdateRequest struct {
	ID           string
	FirstName    *string `json:"first_name"`
	LastName     *string `json:"last_name"`
	FileURL      *string `json:"file"`
	Location     *string `json:"location"`
	Tel          *string `json:"tel"`
	Description  *string `json:"description"`
	WorkingHours *string `json:"working_hours"`
}

type Response struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	Type         string    `json:"type"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	FileURL      string    `json:"file"`
	Location     string    `json:"location"`
	Tel          string    `json:"tel"`
	Description  string    `json:"description"`
	WorkingHours string    `json:"working_hours"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

var (
	ErrNotFound           = errors.New("profile_not_found")
	ErrUserExists         = errors.New("user_exists")
	ErrInvalidCredentials = errors.New("invalid_credentials")
	ErrInvalidToken       = errors.New("invalid_token")
	ErrInvalidID          = errors.New("invalid_profile_id")
	ErrInvalidUsername    = errors.New("invalid_username")
	ErrInvalidEmail       = errors.New("invalid_email")
	ErrInvalidPassword    = errors.New("invalid_password")
	ErrPasswordMismatch   = errors.New("password_mismatch")
	ErrInvalidType        = errors.New("invalid_type")
	ErrNotOwner           = errors.New("not_profile_owner")
)
