package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"

	orderdomain "github.com/gwak2837/shabangnet-sub003/internal/order/domain"
)

type Repository interface {
	// ListPatterns returns patterns ordered by creation time, the single
	// source of match precedence.
	ListPatterns(ctx context.Context, db *gorm.DB, enabledOnly bool) ([]ExclusionPattern, error)
	InsertPattern(ctx context.Context, db *gorm.DB, pattern *ExclusionPattern) error
	SetPatternEnabled(ctx context.Context, db *gorm.DB, id snowflake.ID, enabled bool) (bool, error)

	// ExcludedOrders runs the exclusion predicate as one EXISTS join, not
	// a per-order pattern scan.
	ExcludedOrders(ctx context.Context, db *gorm.DB) ([]orderdomain.Order, error)

	GetSetting(ctx context.Context, db *gorm.DB, key string) (string, bool, error)
	PutSetting(ctx context.Context, db *gorm.DB, key, value string) error
}
