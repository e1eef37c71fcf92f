package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Product maps a marketplace product code to its owning manufacturer.
// A nil ManufacturerID means the code is known but unmapped.
type Product struct {
	ID             snowflake.ID  `gorm:"primaryKey"`
	Code           string        `gorm:"type:text;not null;uniqueIndex:ux_products_code"`
	Name           string        `gorm:"type:text;not null;default:''"`
	ManufacturerID *snowflake.ID `gorm:"index"`
	CreatedAt      time.Time     `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt      time.Time     `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (Product) TableName() string { return "products" }

// OptionMapping routes one (product code, normalized option name) pair to a
// manufacturer. Strictly more specific than Product and wins over it during
// resolution. OptionName is stored normalized.
type OptionMapping struct {
	ID             snowflake.ID `gorm:"primaryKey"`
	ProductCode    string       `gorm:"type:text;not null;uniqueIndex:ux_option_mappings_pair,priority:1"`
	OptionName     string       `gorm:"type:text;not null;uniqueIndex:ux_option_mappings_pair,priority:2"`
	ManufacturerID snowflake.ID `gorm:"not null"`
	CreatedAt      time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt      time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (OptionMapping) TableName() string { return "option_mappings" }
