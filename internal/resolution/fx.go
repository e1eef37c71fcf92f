package resolution

import (
	"github.com/gwak2837/shabangnet-sub003/internal/resolution/repository"
	"github.com/gwak2837/shabangnet-sub003/internal/resolution/service"
	"go.uber.org/fx"
)

var Module = fx.Module("resolution.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.NewService),
)
