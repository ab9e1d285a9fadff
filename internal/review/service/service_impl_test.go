package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/MarioWinter/coderr/internal/identity"
	"github.com/MarioWinter/coderr/internal/policy"
	profiledomain "github.com/MarioWinter/coderr/internal/profile/domain"
	"github.com/MarioWinter/coderr/internal/review/domain"
	"github.com/MarioWinter/coderr/internal/review/repository"
	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func setupReviewService(t *testing.T) (domain.Service, *gorm.DB, *snowflake.Node) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(&profiledomain.Profile{}, &domain.Review{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	svc := New(Params{
		DB:    db,
		Log:   zap.NewNop(),
		GenID: node,
		Repo:  repository.Provide(),
	})
	return svc, db, node
}

func storeProfile(t *testing.T, db *gorm.DB, p identity.Principal) {
	t.Helper()
	require.NoError(t, db.Create(&profiledomain.Profile{
		ID:           p.UserID,
		Username:     fmt.Sprintf("user-%s", p.UserID),
		Email:        fmt.Sprintf("user-%s@example.com", p.UserID),
		PasswordHash: "x",
		Type:         p.Type,
		Token:        fmt.Sprintf("tok-%s", p.UserID),
	}).Error)
}

func newBusiness(t *testing.T, db *gorm.DB, node *snowflake.Node) identity.Principal {
	p := identity.Principal{UserID: node.Generate(), Type: identity.TypeBusiness, Authenticated: true}
	storeProfile(t, db, p)
	return p
}

func newCustomer(t *testing.T, db *gorm.DB, node *snowflake.Node) identity.Principal {
	p := identity.Principal{UserID: node.Generate(), Type: identity.TypeCustomer, Authenticated: true}
	storeProfile(t, db, p)
	return p
}

func ptr[T any](v T) *T {
	return &v
}

func TestCreateReview(t *testing.T) {
	svc, db, node := setupReviewService(t)
	ctx := context.Background()

	biz := newBusiness(t, db, node)
	reviewer := newCustomer(t, db, node)

	resp, err := svc.Create(ctx, reviewer, domain.CreateRequest{
		BusinessID:  biz.UserID.String(),
		Rating:      4.5,
		Description: "Great work",
	})
	require.NoError(t, err)
	assert.Equal(t, biz.UserID.String(), resp.BusinessID)
	assert.Equal(t, reviewer.UserID.String(), resp.ReviewerID)
	assert.Equal(t, 4.5, resp.Rating)
}

func TestCreateReviewGates(t *testing.T) {
	svc, db, node := setupReviewService(t)
	ctx := context.Background()

	biz := newBusiness(t, db, node)
	otherBiz := newBusiness(t, db, node)
	reviewer := newCustomer(t, db, node)

	req := domain.CreateRequest{BusinessID: biz.UserID.String(), Rating: 4}

	_, err := svc.Create(ctx, otherBiz, req)
	assert.ErrorIs(t, err, policy.ErrForbidden)

	_, err = svc.Create(ctx, identity.Anonymous(), req)
	assert.ErrorIs(t, err, policy.ErrUnauthenticated)

	// The target must be an existing business user.
	_, err = svc.Create(ctx, reviewer, domain.CreateRequest{BusinessID: reviewer.UserID.String(), Rating: 4})
	assert.ErrorIs(t, err, domain.ErrBusinessNotFound)

	_, err = svc.Create(ctx, reviewer, domain.CreateRequest{BusinessID: biz.UserID.String(), Rating: 5.5})
	assert.ErrorIs(t, err, domain.ErrInvalidRating)

	_, err = svc.Create(ctx, reviewer, domain.CreateRequest{BusinessID: biz.UserID.String(), Rating: -1})
	assert.ErrorIs(t, err, domain.ErrInvalidRating)
}

func TestCreateReviewOnePerPair(t *testing.T) {
	svc, db, node := setupReviewService(t)
	ctx := context.Background()

	biz := newBusiness(t, db, node)
	reviewer := newCustomer(t, db, node)
	other := newCustomer(t, db, node)

	req := domain.CreateRequest{BusinessID: biz.UserID.String(), Rating: 4}
	_, err := svc.Create(ctx, reviewer, req)
	require.NoError(t, err)

	_, err = svc.Create(ctx, reviewer, req)
	assert.ErrorIs(t, err, domain.ErrDuplicateReview)

	// A different reviewer may still rate the same business.
	_, err = svc.Create(ctx, other, req)
	assert.NoError(t, err)
}

func TestUpdateReviewAuthorOrAdmin(t *testing.T) {
	svc, db, node := setupReviewService(t)
	ctx := context.Background()

	biz := newBusiness(t, db, node)
	reviewer := newCustomer(t, db, node)
	stranger := newCustomer(t, db, node)

	created, err := svc.Create(ctx, reviewer, domain.CreateRequest{
		BusinessID:  biz.UserID.String(),
		Rating:      2,
		Description: "Slow delivery",
	})
	require.NoError(t, err)

	_, err = svc.Update(ctx, stranger, domain.UpdateRequest{ID: created.ID, Rating: ptr(5.0)})
	assert.ErrorIs(t, err, policy.ErrForbidden)

	updated, err := svc.Update(ctx, reviewer, domain.UpdateRequest{ID: created.ID, Rating: ptr(3.5)})
	require.NoError(t, err)
	assert.Equal(t, 3.5, updated.Rating)
	assert.Equal(t, "Slow delivery", updated.Description)

	admin := identity.Principal{UserID: node.Generate(), Type: identity.TypeCustomer, Admin: true, Authenticated: true}
	require.NoError(t, svc.Delete(ctx, admin, created.ID))

	_, err = svc.Update(ctx, reviewer, domain.UpdateRequest{ID: created.ID, Rating: ptr(1.0)})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestListReviews(t *testing.T) {
	svc, db, node := setupReviewService(t)
	ctx := context.Background()

	biz1 := newBusiness(t, db, node)
	biz2 := newBusiness(t, db, node)
	reviewer := newCustomer(t, db, node)

	_, err := svc.Create(ctx, reviewer, domain.CreateRequest{BusinessID: biz1.UserID.String(), Rating: 2})
	require.NoError(t, err)
	_, err = svc.Create(ctx, reviewer, domain.CreateRequest{BusinessID: biz2.UserID.String(), Rating: 5})
	require.NoError(t, err)

	_, err = svc.List(ctx, identity.Anonymous(), domain.ListRequest{})
	assert.ErrorIs(t, err, policy.ErrUnauthenticated)

	all, err := svc.List(ctx, reviewer, domain.ListRequest{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	forBiz, err := svc.List(ctx, reviewer, domain.ListRequest{BusinessID: biz1.UserID.String()})
	require.NoError(t, err)
	require.Len(t, forBiz, 1)
	assert.Equal(t, biz1.UserID.String(), forBiz[0].BusinessID)

	byRating, err := svc.List(ctx, reviewer, domain.ListRequest{Ordering: "-rating"})
	require.NoError(t, err)
	require.Len(t, byRating, 2)
	assert.Equal(t, 5.0, byRating[0].Rating)

	_, err = svc.List(ctx, reviewer, domain.ListRequest{Ordering: "created_at"})
	assert.ErrorIs(t, err, domain.ErrInvalidOrdering)
}
