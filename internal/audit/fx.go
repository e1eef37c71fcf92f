package audit

import (
	"github.com/gwak2837/shabangnet-sub003/internal/audit/service"
	"go.uber.org/fx"
)

var Module = fx.Module("audit.service",
	fx.Provide(service.NewService),
)
