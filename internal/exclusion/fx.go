package exclusion

import (
	"github.com/gwak2837/shabangnet-sub003/internal/exclusion/repository"
	"github.com/gwak2837/shabangnet-sub003/internal/exclusion/service"
	"go.uber.org/fx"
)

var Module = fx.Module("exclusion.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.NewService),
)
