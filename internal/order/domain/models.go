package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Status tracks an order through the dispatch pipeline.
type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusCompleted  Status = "completed"
	StatusError      Status = "error"
)

// Order is one marketplace fulfillment line. ManufacturerName is a
// denormalized mirror of ManufacturerID; every write that sets one must set
// the other in the same transaction. FulfillmentType is the raw routing hint
// from the source system and is only ever read, never mutated.
type Order struct {
	ID               snowflake.ID  `gorm:"primaryKey"`
	OrderNo          string        `gorm:"type:text;not null;uniqueIndex:ux_orders_order_no"`
	ProductCode      string        `gorm:"type:text;not null;index"`
	ProductName      string        `gorm:"type:text;not null;default:''"`
	OptionName       string        `gorm:"type:text;not null;default:''"`
	Quantity         int           `gorm:"not null;default:1"`
	PaymentAmount    int64         `gorm:"not null;default:0"`
	ManufacturerID   *snowflake.ID `gorm:"index"`
	ManufacturerName string        `gorm:"type:text;not null;default:''"`
	Status           Status        `gorm:"type:text;not null;default:'pending';index"`
	FulfillmentType  string        `gorm:"type:text;not null;default:''"`
	IsExcluded       bool          `gorm:"not null;default:false"`
	ExclusionReason  *string       `gorm:"type:text"`
	CourierCode      *string       `gorm:"type:text"`
	TrackingNo       *string       `gorm:"type:text"`
	CreatedAt        time.Time     `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt        time.Time     `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (Order) TableName() string { return "orders" }

// TrackingUpdate assigns courier and tracking data to one order.
type TrackingUpdate struct {
	OrderID     snowflake.ID
	CourierCode string
	TrackingNo  string
}

// ListFilter narrows order listing queries.
type ListFilter struct {
	Status         Status
	ManufacturerID *snowflake.ID
	Unresolved     bool
	Limit          int
}

// ManufacturerStats is the recomputable per-manufacturer order summary.
type ManufacturerStats struct {
	OrderCount  int64
	LastOrderAt *time.Time
}
