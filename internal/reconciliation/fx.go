package reconciliation

import (
	"github.com/gwak2837/shabangnet-sub003/internal/reconciliation/service"
	"go.uber.org/fx"
)

var Module = fx.Module("reconciliation.service",
	fx.Provide(service.NewService),
)
