package domain

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
)

type LinkProductRequest struct {
	ProductCode string `json:"product_code"`

	// ManufacturerID nil clears the product-level mapping and never
	// touches orders.
	ManufacturerID *snowflake.ID `json:"manufacturer_id"`

	// NameHint names a newly inserted product; falls back to an existing
	// order's product name, then to the code itself.
	NameHint string `json:"name_hint"`
}

type LinkProductResponse struct {
	UpdatedOrderCount int64 `json:"updated_order_count"`
}

type LinkOptionRequest struct {
	ProductCode    string       `json:"product_code"`
	OptionName     string       `json:"option_name"`
	ManufacturerID snowflake.ID `json:"manufacturer_id"`
}

type Service interface {
	// Resolve returns the owning manufacturer for a product/option pair,
	// or nil when unresolved. Option mappings win over product mappings.
	Resolve(ctx context.Context, productCode, optionName string) (*snowflake.ID, error)

	LinkProduct(ctx context.Context, req LinkProductRequest) (*LinkProductResponse, error)
	LinkOption(ctx context.Context, req LinkOptionRequest) error

	// UnlinkOption removes an option mapping. Future resolutions change;
	// orders already assigned keep their manufacturer.
	UnlinkOption(ctx context.Context, productCode, optionName string) error
}

var (
	ErrInvalidProductCode   = errors.New("invalid_product_code")
	ErrInvalidOptionName    = errors.New("invalid_option_name")
	ErrInvalidManufacturer  = errors.New("invalid_manufacturer")
	ErrManufacturerNotFound = errors.New("manufacturer_not_found")
)
