package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Manufacturer is the supplier who fulfills order lines. OrderCount and
// LastOrderAt are informational caches, recomputable from orders.
type Manufacturer struct {
	ID          snowflake.ID `gorm:"primaryKey"`
	Name        string       `gorm:"type:text;not null"`
	Email       string       `gorm:"type:text;not null;default:''"`
	OrderCount  int64        `gorm:"not null;default:0"`
	LastOrderAt *time.Time
	CreatedAt   time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt   time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (Manufacturer) TableName() string { return "manufacturers" }
