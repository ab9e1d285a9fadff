package profile

import (
	"github.com/MarioWinter/coderr/internal/profile/repository"
	"github.com/MarioWinter/coderr/internal/profile/service"
	"go.uber.org/fx"
)

var Module = fx.Module("profile.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
