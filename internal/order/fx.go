package order

import (
	"github.com/gwak2837/shabangnet-sub003/internal/order/repository"
	"go.uber.org/fx"
)

var Module = fx.Module("order.repository",
	fx.Provide(repository.Provide),
)
