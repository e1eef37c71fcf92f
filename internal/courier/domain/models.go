package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

// CourierMapping normalizes supplier-entered courier names onto one
// canonical code. Aliases are alternate spellings seen in invoice files.
type CourierMapping struct {
	ID        snowflake.ID                 `gorm:"primaryKey"`
	Code      string                       `gorm:"type:text;not null;uniqueIndex:ux_courier_mappings_code"`
	Name      string                       `gorm:"type:text;not null"`
	Aliases   datatypes.JSONSlice[string]  `gorm:"type:jsonb"`
	Enabled   bool                         `gorm:"not null;default:true"`
	CreatedAt time.Time                    `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time                    `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (CourierMapping) TableName() string { return "courier_mappings" }
