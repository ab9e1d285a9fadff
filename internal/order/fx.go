package order

import (
	"github.com/MarioWinter/coderr/internal/order/repository"
	"github.com/MarioWinter/coderr/internal/order/service"
	"go.uber.org/fx"
)

var Module = fx.Module("order.service",
	fx.Provide(
		repository.Provide,
		service.New,
	),
)
