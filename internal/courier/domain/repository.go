package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, mapping *CourierMapping) error
	Update(ctx context.Context, db *gorm.DB, mapping *CourierMapping) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*CourierMapping, error)
	List(ctx context.Context, db *gorm.DB, enabledOnly bool) ([]CourierMapping, error)
	SetEnabled(ctx context.Context, db *gorm.DB, id snowflake.ID, enabled bool) (bool, error)
}
