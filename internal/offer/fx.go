package offer

import (
	"github.com/MarioWinter/coderr/internal/offer/repository"
	"github.com/MarioWinter/coderr/internal/offer/service"
	"go.uber.org/fx"
)

var Module = fx.Module("offer.service",
	fx.Provide(
		repository.Provide,
		service.New,
	),
)
