package review

import (
	"github.com/MarioWinter/coderr/internal/review/repository"
	"github.com/MarioWinter/coderr/internal/review/service"
	"go.uber.org/fx"
)

var Module = fx.Module("review.service",
	fx.Provide(
		repository.Provide,
		service.New,
	),
)
