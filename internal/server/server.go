package server

import (
	"context"
	"net/http"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/MarioWinter/coderr/internal/config"
	"github.com/MarioWinter/coderr/internal/offer"
	offerdomain "github.com/MarioWinter/coderr/internal/offer/domain"
	"github.com/MarioWinter/coderr/internal/order"
	orderdomain "github.com/MarioWinter/coderr/internal/order/domain"
	"github.com/MarioWinter/coderr/internal/profile"
	profiledomain "github.com/MarioWinter/coderr/internal/profile/domain"
	"github.com/MarioWinter/coderr/internal/review"
	reviewdomain "github.com/MarioWinter/coderr/internal/review/domain"
	"github.com/MarioWinter/coderr/internal/stats"
	statsdomain "github.com/MarioWinter/coderr/internal/stats/domain"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

var Module = fx.Module("http.server",
	fx.Provide(registerGin),
	profile.Module,
	offer.Module,
	order.Module,
	review.Module,
	stats.Module,
	fx.Invoke(NewServer),
	fx.Invoke(run),
)

func NewEngine() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func registerGin() *gin.Engine {
	return NewEngine()
}

func run(lc fx.Lifecycle, r *gin.Engine, cfg config.Config) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					panic(err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

type Server struct {
	engine     *gin.Engine
	cfg        config.Config
	db         *gorm.DB
	genID      *snowflake.Node
	profileSvc profiledomain.Service
	offerSvc   offerdomain.Service
	orderSvc   orderdomain.Service
	reviewSvc  reviewdomain.Service
	statsSvc   statsdomain.Service
}

type ServerParams struct {
	fx.In

	Gin        *gin.Engine
	Cfg        config.Config
	DB         *gorm.DB
	GenID      *snowflake.Node
	ProfileSvc profiledomain.Service
	OfferSvc   offerdomain.Service
	OrderSvc   orderdomain.Service
	ReviewSvc  reviewdomain.Service
	StatsSvc   statsdomain.Service
}

func NewServer(p ServerParams) *Server {
	svc := &Server{
		engine:     p.Gin,
		cfg:        p.Cfg,
		db:         p.DB,
		genID:      p.GenID,
		profileSvc: p.ProfileSvc,
		offerSvc:   p.OfferSvc,
		orderSvc:   p.OrderSvc,
		reviewSvc:  p.ReviewSvc,
		statsSvc:   p.StatsSvc,
	}

	svc.registerAPIRoutes()

	return svc
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) registerAPIRoutes() {
	api := s.engine.Group("/api")
	api.Use(s.ResolvePrincipal())

	api.POST("/registration/", s.Register)
	api.POST("/login/", s.Login)

	api.GET("/profile/:id/", s.AuthRequired(), s.GetProfile)
	api.PATCH("/profile/:id/", s.AuthRequired(), s.UpdateProfile)
	api.GET("/profiles/business/", s.AuthRequired(), s.ListBusinessProfiles)
	api.GET("/profiles/customer/", s.AuthRequired(), s.ListCustomerProfiles)

	api.GET("/offers/", s.ListOffers)
	api.POST("/offers/", s.CreateOffer)
	api.GET("/offers/:id/", s.GetOffer)
	api.PATCH("/offers/:id/", s.UpdateOffer)
	api.DELETE("/offers/:id/", s.DeleteOffer)
	api.GET("/offerdetails/:id/", s.GetOfferDetail)

	api.GET("/orders/", s.ListOrders)
	api.POST("/orders/", s.CreateOrder)
	api.GET("/orders/:id/", s.GetOrder)
	api.PATCH("/orders/:id/", s.UpdateOrderStatus)
	api.DELETE("/orders/:id/", s.DeleteOrder)
	api.GET("/order-count/:business_user_id/", s.AuthRequired(), s.OrderCount)
	api.GET("/completed-order-count/:business_user_id/", s.AuthRequired(), s.CompletedOrderCount)

	api.GET("/reviews/", s.ListReviews)
	api.POST("/reviews/", s.CreateReview)
	api.GET("/reviews/:id/", s.GetReview)
	api.PATCH("/reviews/:id/", s.UpdateReview)
	api.DELETE("/reviews/:id/", s.DeleteReview)

	api.GET("/base-info/", s.BaseInfo)
}
