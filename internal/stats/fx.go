package stats

import (
	"github.com/MarioWinter/coderr/internal/stats/repository"
	"github.com/MarioWinter/coderr/internal/stats/service"
	"go.uber.org/fx"
)

var Module = fx.Module("stats.service",
	fx.Provide(
		repository.Provide,
		service.New,
	),
)
