package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// ExclusionPattern marks orders as outside the automated dispatch flow when
// its pattern text occurs in the order's raw fulfillment type. Creation time
// is the only precedence key; edits never reorder patterns.
type ExclusionPattern struct {
	ID          snowflake.ID `gorm:"primaryKey"`
	Pattern     string       `gorm:"type:text;not null"`
	Description *string      `gorm:"type:text"`
	Enabled     bool         `gorm:"not null;default:true"`
	CreatedAt   time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (ExclusionPattern) TableName() string { return "exclusion_patterns" }

// ReasonText is the operator-facing reason for this pattern: the description
// when present, otherwise the raw pattern. May be empty; presentation layers
// substitute their own placeholder.
func (p ExclusionPattern) ReasonText() string {
	if p.Description != nil && *p.Description != "" {
		return *p.Description
	}
	return p.Pattern
}

// SettingKeyExclusionEnabled is the settings row backing the global toggle.
const SettingKeyExclusionEnabled = "exclusion.enabled"
