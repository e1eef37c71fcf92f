package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, m *Manufacturer) error
	Update(ctx context.Context, db *gorm.DB, m *Manufacturer) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Manufacturer, error)
	List(ctx context.Context, db *gorm.DB) ([]Manufacturer, error)
	Exists(ctx context.Context, db *gorm.DB, id snowflake.ID) (bool, error)
}
