package domain

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
)

// InvoiceRow is one already-parsed line of a supplier-returned invoice file.
type InvoiceRow struct {
	OrderNo     string `json:"order_no"`
	CourierName string `json:"courier_name"`
	TrackingNo  string `json:"tracking_no"`
}

// RowOutcome is a per-row classification. Outcomes are values the caller
// reports on, never errors.
type RowOutcome string

const (
	RowOutcomeSuccess       RowOutcome = "success"
	RowOutcomeOrderNotFound RowOutcome = "order_not_found"
	RowOutcomeCourierError  RowOutcome = "courier_error"
)

// RowResult records the terminal outcome for one invoice row.
// UnrecognizedCourier carries the original courier text on courier_error so
// operators can fix their mapping table.
type RowResult struct {
	Row                 InvoiceRow    `json:"row"`
	Outcome             RowOutcome    `json:"outcome"`
	OrderID             *snowflake.ID `json:"order_id,omitempty"`
	CourierCode         string        `json:"courier_code,omitempty"`
	UnrecognizedCourier string        `json:"unrecognized_courier,omitempty"`
}

type ReconcileRequest struct {
	ManufacturerID snowflake.ID `json:"manufacturer_id"`
	Rows           []InvoiceRow `json:"rows"`
}

type ReconcileResponse struct {
	Results      []RowResult `json:"results"`
	AppliedCount int         `json:"applied_count"`
}

type Service interface {
	// Reconcile matches invoice rows onto existing orders and applies all
	// successful rows as one atomic batch. Non-success rows never block
	// the valid subset; a failed batch applies nothing.
	Reconcile(ctx context.Context, req ReconcileRequest) (*ReconcileResponse, error)
}

var (
	ErrInvalidManufacturer  = errors.New("invalid_manufacturer")
	ErrManufacturerNotFound = errors.New("manufacturer_not_found")
)
