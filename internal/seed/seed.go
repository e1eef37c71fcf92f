package seed

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	courierdomain "github.com/gwak2837/shabangnet-sub003/internal/courier/domain"
	exclusiondomain "github.com/gwak2837/shabangnet-sub003/internal/exclusion/domain"
)

// defaultCouriers are the domestic couriers seen in supplier invoice files,
// with the alias spellings suppliers commonly use.
var defaultCouriers = []struct {
	Code    string
	Name    string
	Aliases []string
}{
	{Code: "CJGLS", Name: "CJ대한통운", Aliases: []string{"CJ택배", "대한통운", "CJ GLS"}},
	{Code: "HANJIN", Name: "한진택배", Aliases: []string{"한진"}},
	{Code: "LOTTE", Name: "롯데택배", Aliases: []string{"롯데", "현대택배"}},
	{Code: "EPOST", Name: "우체국택배", Aliases: []string{"우체국"}},
	{Code: "LOGEN", Name: "로젠택배", Aliases: []string{"로젠"}},
}

// EnsureReferenceData seeds courier mappings and the exclusion toggle on
// first startup. Existing rows are never modified.
func EnsureReferenceData(db *gorm.DB) error {
	if db == nil {
		return errors.New("seed database handle is required")
	}

	node, err := snowflake.NewNode(0)
	if err != nil {
		return err
	}

	ctx := context.Background()
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureCouriersTx(ctx, tx, node); err != nil {
			return err
		}
		return ensureExclusionToggleTx(ctx, tx)
	})
}

func ensureCouriersTx(ctx context.Context, tx *gorm.DB, node *snowflake.Node) error {
	var count int64
	if err := tx.WithContext(ctx).
		Model(&courierdomain.CourierMapping{}).
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	now := time.Now().UTC()
	for _, courier := range defaultCouriers {
		mapping := courierdomain.CourierMapping{
			ID:        node.Generate(),
			Code:      courier.Code,
			Name:      courier.Name,
			Aliases:   datatypes.NewJSONSlice(courier.Aliases),
			Enabled:   true,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := tx.WithContext(ctx).Create(&mapping).Error; err != nil {
			return err
		}
	}
	return nil
}

func ensureExclusionToggleTx(ctx context.Context, tx *gorm.DB) error {
	return tx.WithContext(ctx).Exec(
		`INSERT INTO settings (key, value, updated_at)
		 VALUES (?, ?, ?)
		 ON CONFLICT (key) DO NOTHING`,
		exclusiondomain.SettingKeyExclusionEnabled,
		"true",
		time.Now().UTC(),
	).Error
}
