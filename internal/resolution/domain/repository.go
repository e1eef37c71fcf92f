package domain

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	FindProductByCode(ctx context.Context, db *gorm.DB, code string) (*Product, error)
	UpsertProduct(ctx context.Context, db *gorm.DB, product *Product) error
	ClearProductManufacturer(ctx context.Context, db *gorm.DB, code string) (int64, error)

	FindOptionMapping(ctx context.Context, db *gorm.DB, productCode, optionName string) (*OptionMapping, error)
	UpsertOptionMapping(ctx context.Context, db *gorm.DB, mapping *OptionMapping) error
	DeleteOptionMapping(ctx context.Context, db *gorm.DB, productCode, optionName string) error
}
