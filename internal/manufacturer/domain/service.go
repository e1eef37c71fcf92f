package domain

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
)

type CreateRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Manufacturer, error)
	List(ctx context.Context) ([]Manufacturer, error)
	GetByID(ctx context.Context, id snowflake.ID) (*Manufacturer, error)

	// RefreshStats recomputes the cached order count and last order date
	// from the orders table.
	RefreshStats(ctx context.Context, id snowflake.ID) (*Manufacturer, error)
}

var (
	ErrInvalidName = errors.New("invalid_name")
	ErrNotFound    = errors.New("manufacturer_not_found")
)
