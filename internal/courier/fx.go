package courier

import (
	"github.com/gwak2837/shabangnet-sub003/internal/courier/repository"
	"github.com/gwak2837/shabangnet-sub003/internal/courier/service"
	"go.uber.org/fx"
)

var Module = fx.Module("courier.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.NewService),
)
