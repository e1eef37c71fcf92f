package domain

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
)

type CreateRequest struct {
	Code    string   `json:"code"`
	Name    string   `json:"name"`
	Aliases []string `json:"aliases"`
}

type UpdateRequest struct {
	ID      snowflake.ID `json:"id"`
	Name    *string      `json:"name"`
	Aliases []string     `json:"aliases"`
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*CourierMapping, error)
	Update(ctx context.Context, req UpdateRequest) (*CourierMapping, error)
	List(ctx context.Context) ([]CourierMapping, error)
	SetEnabled(ctx context.Context, id snowflake.ID, enabled bool) error

	// ListEnabled serves reconciliation lookups; results may be briefly
	// cached and are invalidated on any mutation through this service.
	ListEnabled(ctx context.Context) ([]CourierMapping, error)
}

var (
	ErrInvalidCode = errors.New("invalid_code")
	ErrInvalidName = errors.New("invalid_name")
	ErrNotFound    = errors.New("courier_not_found")
)
