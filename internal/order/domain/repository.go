package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	FindByOrderNos(ctx context.Context, db *gorm.DB, orderNos []string) ([]Order, error)
	List(ctx context.Context, db *gorm.DB, filter ListFilter) ([]Order, error)

	// FirstProductName returns any existing order's product name for the
	// given code, or "" when none exists.
	FirstProductName(ctx context.Context, db *gorm.DB, productCode string) (string, error)

	// BackfillManufacturer assigns manufacturer id and name to every order
	// that is unresolved, not excluded, not completed, and whose product
	// code matches case/whitespace-insensitively. Returns rows touched.
	BackfillManufacturer(ctx context.Context, db *gorm.DB, productCode string, manufacturerID snowflake.ID, manufacturerName string) (int64, error)

	// BulkAssignTracking applies courier/tracking updates. Callers pass a
	// transaction when the batch must be atomic.
	BulkAssignTracking(ctx context.Context, db *gorm.DB, updates []TrackingUpdate) error

	StatsByManufacturer(ctx context.Context, db *gorm.DB, manufacturerID snowflake.ID) (ManufacturerStats, error)
}
