package main

import (
	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"gorm.io/gorm"

	"github.com/gwak2837/shabangnet-sub003/internal/audit"
	"github.com/gwak2837/shabangnet-sub003/internal/clock"
	"github.com/gwak2837/shabangnet-sub003/internal/config"
	"github.com/gwak2837/shabangnet-sub003/internal/courier"
	"github.com/gwak2837/shabangnet-sub003/internal/events"
	"github.com/gwak2837/shabangnet-sub003/internal/exclusion"
	"github.com/gwak2837/shabangnet-sub003/internal/manufacturer"
	"github.com/gwak2837/shabangnet-sub003/internal/migration"
	"github.com/gwak2837/shabangnet-sub003/internal/observability"
	"github.com/gwak2837/shabangnet-sub003/internal/observability/logger"
	"github.com/gwak2837/shabangnet-sub003/internal/order"
	"github.com/gwak2837/shabangnet-sub003/internal/reconciliation"
	"github.com/gwak2837/shabangnet-sub003/internal/resolution"
	"github.com/gwak2837/shabangnet-sub003/internal/seed"
	"github.com/gwak2837/shabangnet-sub003/internal/server"
	"github.com/gwak2837/shabangnet-sub003/pkg/db"
)

func main() {
	app := fx.New(
		config.Module,
		logger.Module,
		observability.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		fx.Invoke(func(conn *gorm.DB) error {
			sqlDB, err := conn.DB()
			if err != nil {
				return err
			}
			if err := migration.RunMigrations(sqlDB); err != nil {
				return err
			}
			return seed.EnsureReferenceData(conn)
		}),

		clock.Module,
		events.Module,
		audit.Module,
		order.Module,
		manufacturer.Module,
		courier.Module,
		exclusion.Module,
		resolution.Module,
		reconciliation.Module,

		server.Module,
	)
	app.Run()
}

func RegisterSnowflake(cfg config.Config) *snowflake.Node {
	node, err := snowflake.NewNode(cfg.SnowflakeNode)
	if err != nil {
		panic(err)
	}
	return node
}
