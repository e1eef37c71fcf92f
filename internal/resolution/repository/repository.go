package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	resolutiondomain "github.com/gwak2837/shabangnet-sub003/internal/resolution/domain"
)

type Repository struct{}

func Provide() resolutiondomain.Repository {
	return &Repository{}
}

func (r *Repository) FindProductByCode(ctx context.Context, db *gorm.DB, code string) (*resolutiondomain.Product, error) {
	var product resolutiondomain.Product
	err := db.WithContext(ctx).First(&product, "code = ?", code).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// UpsertProduct inserts a new product or repoints an existing one. The
// stored name is kept on conflict; only the mapping moves.
func (r *Repository) UpsertProduct(ctx context.Context, db *gorm.DB, product *resolutiondomain.Product) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO products (id, code, name, manufacturer_id, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT (code) DO UPDATE
		 SET manufacturer_id = excluded.manufacturer_id,
		     updated_at = excluded.updated_at`,
		product.ID,
		product.Code,
		product.Name,
		product.ManufacturerID,
		product.CreatedAt,
		product.UpdatedAt,
	).Error
}

// ClearProductManufacturer detaches an existing product from its
// manufacturer. Codes without a product row stay absent.
func (r *Repository) ClearProductManufacturer(ctx context.Context, db *gorm.DB, code string) (int64, error) {
	result := db.WithContext(ctx).Exec(
		`UPDATE products
		 SET manufacturer_id = NULL, updated_at = ?
		 WHERE code = ?`,
		time.Now().UTC(),
		code,
	)
	return result.RowsAffected, result.Error
}

func (r *Repository) FindOptionMapping(ctx context.Context, db *gorm.DB, productCode, optionName string) (*resolutiondomain.OptionMapping, error) {
	var mapping resolutiondomain.OptionMapping
	err := db.WithContext(ctx).
		First(&mapping, "product_code = ? AND option_name = ?", productCode, optionName).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &mapping, nil
}

func (r *Repository) UpsertOptionMapping(ctx context.Context, db *gorm.DB, mapping *resolutiondomain.OptionMapping) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO option_mappings (id, product_code, option_name, manufacturer_id, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT (product_code, option_name) DO UPDATE
		 SET manufacturer_id = excluded.manufacturer_id,
		     updated_at = excluded.updated_at`,
		mapping.ID,
		mapping.ProductCode,
		mapping.OptionName,
		mapping.ManufacturerID,
		mapping.CreatedAt,
		mapping.UpdatedAt,
	).Error
}

func (r *Repository) DeleteOptionMapping(ctx context.Context, db *gorm.DB, productCode, optionName string) error {
	return db.WithContext(ctx).Exec(
		`DELETE FROM option_mappings
		 WHERE product_code = ? AND option_name = ?`,
		productCode,
		optionName,
	).Error
}
