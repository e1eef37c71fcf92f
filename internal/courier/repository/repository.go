package repository

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"

	courierdomain "github.com/gwak2837/shabangnet-sub003/internal/courier/domain"
)

type Repository struct{}

func Provide() courierdomain.Repository {
	return &Repository{}
}

func (r *Repository) Insert(ctx context.Context, db *gorm.DB, mapping *courierdomain.CourierMapping) error {
	return db.WithContext(ctx).Create(mapping).Error
}

func (r *Repository) Update(ctx context.Context, db *gorm.DB, mapping *courierdomain.CourierMapping) error {
	return db.WithContext(ctx).Save(mapping).Error
}

func (r *Repository) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*courierdomain.CourierMapping, error) {
	var mapping courierdomain.CourierMapping
	err := db.WithContext(ctx).First(&mapping, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &mapping, nil
}

func (r *Repository) List(ctx context.Context, db *gorm.DB, enabledOnly bool) ([]courierdomain.CourierMapping, error) {
	query := db.WithContext(ctx).Model(&courierdomain.CourierMapping{})
	if enabledOnly {
		query = query.Where("enabled = ?", true)
	}

	var mappings []courierdomain.CourierMapping
	if err := query.Order("code ASC").Find(&mappings).Error; err != nil {
		return nil, err
	}
	return mappings, nil
}

func (r *Repository) SetEnabled(ctx context.Context, db *gorm.DB, id snowflake.ID, enabled bool) (bool, error) {
	result := db.WithContext(ctx).Exec(
		`UPDATE courier_mappings SET enabled = ? WHERE id = ?`,
		enabled,
		id,
	)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
