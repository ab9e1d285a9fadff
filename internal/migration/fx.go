package migration

import (
	"github.com/MarioWinter/coderr/internal/config"
	offerdomain "github.com/MarioWinter/coderr/internal/offer/domain"
	orderdomain "github.com/MarioWinter/coderr/internal/order/domain"
	profiledomain "github.com/MarioWinter/coderr/internal/profile/domain"
	reviewdomain "github.com/MarioWinter/coderr/internal/review/domain"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

var Module = fx.Module("migrations",
	fx.Invoke(func(conn *gorm.DB, cfg config.Config) error {
		// The versioned SQL migrations target postgres. The sqlite path
		// exists for local runs and relies on the model definitions.
		if cfg.DBType != "postgres" {
			return conn.AutoMigrate(
				&profiledomain.Profile{},
				&offerdomain.Offer{},
				&offerdomain.OfferDetail{},
				&orderdomain.Order{},
				&reviewdomain.Review{},
			)
		}

		sqlDB, err := conn.DB()
		if err != nil {
			return err
		}
		return RunMigrations(sqlDB)
	}),
)
