package repository

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"

	orderdomain "github.com/gwak2837/shabangnet-sub003/internal/order/domain"
)

type Repository struct{}

func Provide() orderdomain.Repository {
	return &Repository{}
}

func (r *Repository) FindByOrderNos(ctx context.Context, db *gorm.DB, orderNos []string) ([]orderdomain.Order, error) {
	if len(orderNos) == 0 {
		return nil, nil
	}
	var orders []orderdomain.Order
	err := db.WithContext(ctx).
		Where("order_no IN ?", orderNos).
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *Repository) List(ctx context.Context, db *gorm.DB, filter orderdomain.ListFilter) ([]orderdomain.Order, error) {
	query := db.WithContext(ctx).Model(&orderdomain.Order{})
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.ManufacturerID != nil {
		query = query.Where("manufacturer_id = ?", *filter.ManufacturerID)
	}
	if filter.Unresolved {
		query = query.Where("manufacturer_id IS NULL")
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}

	var orders []orderdomain.Order
	if err := query.Order("created_at ASC, id ASC").Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *Repository) FirstProductName(ctx context.Context, db *gorm.DB, productCode string) (string, error) {
	var name string
	err := db.WithContext(ctx).Raw(
		`SELECT product_name
		 FROM orders
		 WHERE UPPER(TRIM(product_code)) = UPPER(TRIM(?))
		 ORDER BY created_at ASC, id ASC
		 LIMIT 1`,
		productCode,
	).Scan(&name).Error
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(name), nil
}

func (r *Repository) BackfillManufacturer(ctx context.Context, db *gorm.DB, productCode string, manufacturerID snowflake.ID, manufacturerName string) (int64, error) {
	result := db.WithContext(ctx).Exec(
		`UPDATE orders
		 SET manufacturer_id = ?, manufacturer_name = ?, updated_at = ?
		 WHERE manufacturer_id IS NULL
		   AND is_excluded = FALSE
		   AND status <> ?
		   AND UPPER(TRIM(product_code)) = UPPER(TRIM(?))`,
		manufacturerID,
		manufacturerName,
		time.Now().UTC(),
		orderdomain.StatusCompleted,
		productCode,
	)
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// BulkAssignTracking applies all updates in a single statement so the batch
// costs one round trip regardless of size.
func (r *Repository) BulkAssignTracking(ctx context.Context, db *gorm.DB, updates []orderdomain.TrackingUpdate) error {
	if len(updates) == 0 {
		return nil
	}

	var (
		courierCase  strings.Builder
		trackingCase strings.Builder
		courierArgs  = make([]any, 0, len(updates)*2)
		trackingArgs = make([]any, 0, len(updates)*2)
		ids          = make([]snowflake.ID, 0, len(updates))
	)
	for _, update := range updates {
		courierCase.WriteString(" WHEN ? THEN ?")
		courierArgs = append(courierArgs, update.OrderID, update.CourierCode)
		trackingCase.WriteString(" WHEN ? THEN ?")
		trackingArgs = append(trackingArgs, update.OrderID, update.TrackingNo)
		ids = append(ids, update.OrderID)
	}

	query := `UPDATE orders
		 SET courier_code = CASE id` + courierCase.String() + ` END,
		     tracking_no = CASE id` + trackingCase.String() + ` END,
		     updated_at = ?
		 WHERE id IN ?`
	args := append(courierArgs, trackingArgs...)
	args = append(args, time.Now().UTC(), ids)

	return db.WithContext(ctx).Exec(query, args...).Error
}

func (r *Repository) StatsByManufacturer(ctx context.Context, db *gorm.DB, manufacturerID snowflake.ID) (orderdomain.ManufacturerStats, error) {
	var stats orderdomain.ManufacturerStats
	err := db.WithContext(ctx).
		Model(&orderdomain.Order{}).
		Where("manufacturer_id = ?", manufacturerID).
		Count(&stats.OrderCount).Error
	if err != nil {
		return orderdomain.ManufacturerStats{}, err
	}
	if stats.OrderCount == 0 {
		return stats, nil
	}

	var latest orderdomain.Order
	err = db.WithContext(ctx).
		Where("manufacturer_id = ?", manufacturerID).
		Order("created_at DESC, id DESC").
		First(&latest).Error
	if err != nil {
		return orderdomain.ManufacturerStats{}, err
	}
	stats.LastOrderAt = &latest.CreatedAt
	return stats, nil
}
