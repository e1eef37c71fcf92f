package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"

	exclusiondomain "github.com/gwak2837/shabangnet-sub003/internal/exclusion/domain"
	orderdomain "github.com/gwak2837/shabangnet-sub003/internal/order/domain"
)

type Repository struct{}

func Provide() exclusiondomain.Repository {
	return &Repository{}
}

func (r *Repository) ListPatterns(ctx context.Context, db *gorm.DB, enabledOnly bool) ([]exclusiondomain.ExclusionPattern, error) {
	query := db.WithContext(ctx).Model(&exclusiondomain.ExclusionPattern{})
	if enabledOnly {
		query = query.Where("enabled = ?", true)
	}

	var patterns []exclusiondomain.ExclusionPattern
	if err := query.Order("created_at ASC, id ASC").Find(&patterns).Error; err != nil {
		return nil, err
	}
	return patterns, nil
}

func (r *Repository) InsertPattern(ctx context.Context, db *gorm.DB, pattern *exclusiondomain.ExclusionPattern) error {
	return db.WithContext(ctx).Create(pattern).Error
}

func (r *Repository) SetPatternEnabled(ctx context.Context, db *gorm.DB, id snowflake.ID, enabled bool) (bool, error) {
	result := db.WithContext(ctx).Exec(
		`UPDATE exclusion_patterns SET enabled = ? WHERE id = ?`,
		enabled,
		id,
	)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *Repository) ExcludedOrders(ctx context.Context, db *gorm.DB) ([]orderdomain.Order, error) {
	var orders []orderdomain.Order
	err := db.WithContext(ctx).Raw(fmt.Sprintf(
		`SELECT o.*
		 FROM orders o
		 WHERE EXISTS (
		     SELECT 1
		     FROM exclusion_patterns p
		     WHERE p.enabled = ?
		       AND %s
		 )
		 ORDER BY o.created_at ASC, o.id ASC`,
		containsExpr(db, "o.fulfillment_type", "p.pattern"),
	), true).Scan(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *Repository) GetSetting(ctx context.Context, db *gorm.DB, key string) (string, bool, error) {
	var rows []string
	err := db.WithContext(ctx).Raw(
		`SELECT value FROM settings WHERE key = ?`,
		key,
	).Scan(&rows).Error
	if err != nil {
		return "", false, err
	}
	if len(rows) == 0 {
		return "", false, nil
	}
	return rows[0], true, nil
}

func (r *Repository) PutSetting(ctx context.Context, db *gorm.DB, key, value string) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO settings (key, value, updated_at)
		 VALUES (?, ?, ?)
		 ON CONFLICT (key) DO UPDATE
		 SET value = excluded.value,
		     updated_at = excluded.updated_at`,
		key,
		value,
		time.Now().UTC(),
	).Error
}

// containsExpr builds a case-sensitive substring predicate. Postgres and
// sqlite disagree on the function name, and sqlite's LIKE is
// case-insensitive, so LIKE is not an option here.
func containsExpr(db *gorm.DB, haystack, needle string) string {
	if db.Name() == "sqlite" {
		return fmt.Sprintf("instr(%s, %s) > 0", haystack, needle)
	}
	return fmt.Sprintf("strpos(%s, %s) > 0", haystack, needle)
}
