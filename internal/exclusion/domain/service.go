package domain

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"

	orderdomain "github.com/gwak2837/shabangnet-sub003/internal/order/domain"
)

type CreatePatternRequest struct {
	Pattern     string  `json:"pattern"`
	Description *string `json:"description"`
	Enabled     *bool   `json:"enabled"`
}

type Service interface {
	// IsExcluded reports whether an order with the given raw fulfillment
	// type is outside the automated dispatch flow.
	IsExcluded(ctx context.Context, fulfillmentType string) (bool, error)

	// Reason returns the matched pattern's reason text, or nil when the
	// order is not excluded. The text may be empty; presentation layers
	// fill placeholders.
	Reason(ctx context.Context, fulfillmentType string) (*string, error)

	// ExcludedOrders evaluates the exclusion predicate set-wise over all
	// orders in one relational query.
	ExcludedOrders(ctx context.Context) ([]orderdomain.Order, error)

	CreatePattern(ctx context.Context, req CreatePatternRequest) (*ExclusionPattern, error)
	ListPatterns(ctx context.Context) ([]ExclusionPattern, error)
	SetPatternEnabled(ctx context.Context, id snowflake.ID, enabled bool) error

	Toggle(ctx context.Context) (Toggle, error)
	SetToggle(ctx context.Context, enabled bool) error
}

var (
	ErrInvalidPattern  = errors.New("invalid_pattern")
	ErrPatternNotFound = errors.New("pattern_not_found")
)
