package manufacturer

import (
	"github.com/gwak2837/shabangnet-sub003/internal/manufacturer/repository"
	"github.com/gwak2837/shabangnet-sub003/internal/manufacturer/service"
	"go.uber.org/fx"
)

var Module = fx.Module("manufacturer.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.NewService),
)
