package repository

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"

	manufacturerdomain "github.com/gwak2837/shabangnet-sub003/internal/manufacturer/domain"
)

type Repository struct{}

func Provide() manufacturerdomain.Repository {
	return &Repository{}
}

func (r *Repository) Insert(ctx context.Context, db *gorm.DB, m *manufacturerdomain.Manufacturer) error {
	return db.WithContext(ctx).Create(m).Error
}

func (r *Repository) Update(ctx context.Context, db *gorm.DB, m *manufacturerdomain.Manufacturer) error {
	return db.WithContext(ctx).Save(m).Error
}

func (r *Repository) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*manufacturerdomain.Manufacturer, error) {
	var m manufacturerdomain.Manufacturer
	err := db.WithContext(ctx).First(&m, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *Repository) List(ctx context.Context, db *gorm.DB) ([]manufacturerdomain.Manufacturer, error) {
	var manufacturers []manufacturerdomain.Manufacturer
	err := db.WithContext(ctx).
		Order("name ASC, id ASC").
		Find(&manufacturers).Error
	if err != nil {
		return nil, err
	}
	return manufacturers, nil
}

func (r *Repository) Exists(ctx context.Context, db *gorm.DB, id snowflake.ID) (bool, error) {
	var count int64
	err := db.WithContext(ctx).
		Model(&manufacturerdomain.Manufacturer{}).
		Where("id = ?", id).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
