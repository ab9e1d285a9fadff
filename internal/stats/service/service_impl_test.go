package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/MarioWinter/coderr/internal/identity"
	offerdomain "github.com/MarioWinter/coderr/internal/offer/domain"
	profiledomain "github.com/MarioWinter/coderr/internal/profile/domain"
	reviewdomain "github.com/MarioWinter/coderr/internal/review/domain"
	"github.com/MarioWinter/coderr/internal/stats/repository"
	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func setupStatsService(t *testing.T) (*Service, *gorm.DB, *snowflake.Node) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&profiledomain.Profile{},
		&offerdomain.Offer{},
		&offerdomain.OfferDetail{},
		&reviewdomain.Review{},
	))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	svc := New(Params{
		DB:   db,
		Log:  zap.NewNop(),
		Repo: repository.Provide(),
	}).(*Service)
	return svc, db, node
}

func TestBaseInfoEmptyPlatform(t *testing.T) {
	svc, _, _ := setupStatsService(t)

	resp, err := svc.BaseInfo(context.Background())
	require.NoError(t, err)

	assert.EqualValues(t, 0, resp.ReviewCount)
	assert.Equal(t, 0.0, resp.AverageRating)
	assert.EqualValues(t, 0, resp.BusinessProfileCount)
	assert.EqualValues(t, 0, resp.OfferCount)
}

func TestBaseInfoAggregates(t *testing.T) {
	svc, db, node := setupStatsService(t)

	bizID := node.Generate()
	require.NoError(t, db.Create(&profiledomain.Profile{
		ID:           bizID,
		Username:     "studio",
		Email:        "studio@example.com",
		PasswordHash: "x",
		Type:         identity.TypeBusiness,
		Token:        "tok-studio",
	}).Error)
	require.NoError(t, db.Create(&profiledomain.Profile{
		ID:           node.Generate(),
		Username:     "buyer",
		Email:        "buyer@example.com",
		PasswordHash: "x",
		Type:         identity.TypeCustomer,
		Token:        "tok-buyer",
	}).Error)

	require.NoError(t, db.Create(&offerdomain.Offer{
		ID:        node.Generate(),
		OwnerID:   bizID,
		Title:     "Website Design",
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}).Error)

	for i, rating := range []float64{4.0, 3.5} {
		require.NoError(t, db.Create(&reviewdomain.Review{
			ID:         node.Generate(),
			BusinessID: bizID,
			ReviewerID: snowflake.ID(int64(1000 + i)),
			Rating:     rating,
			CreatedAt:  time.Now().UTC(),
			UpdatedAt:  time.Now().UTC(),
		}).Error)
	}

	resp, err := svc.BaseInfo(context.Background())
	require.NoError(t, err)

	assert.EqualValues(t, 2, resp.ReviewCount)
	// 3.75 rounds to one decimal place.
	assert.Equal(t, 3.8, resp.AverageRating)
	assert.EqualValues(t, 1, resp.BusinessProfileCount)
	assert.EqualValues(t, 1, resp.OfferCount)
}
