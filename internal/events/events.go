package events

// Dispatch pipeline event types consumed by downstream reporting.
const (
	EventProductLinked     = "product.linked"
	EventProductUnlinked   = "product.unlinked"
	EventOptionLinked      = "option.linked"
	EventInvoiceReconciled = "invoice.reconciled"
)

// ProductLinkedPayload records a mapping change and its backfill effect.
type ProductLinkedPayload struct {
	ProductCode       string `json:"product_code"`
	ManufacturerID    string `json:"manufacturer_id,omitempty"`
	UpdatedOrderCount int64  `json:"updated_order_count"`
}

// ToMap converts the payload into an outbox-friendly map.
func (p ProductLinkedPayload) ToMap() map[string]any {
	payload := map[string]any{
		"product_code":        p.ProductCode,
		"updated_order_count": p.UpdatedOrderCount,
	}
	if p.ManufacturerID != "" {
		payload["manufacturer_id"] = p.ManufacturerID
	}
	return payload
}

// InvoiceReconciledPayload summarizes one reconciliation run.
type InvoiceReconciledPayload struct {
	ManufacturerID string `json:"manufacturer_id"`
	RowCount       int    `json:"row_count"`
	AppliedCount   int    `json:"applied_count"`
}

// ToMap converts the payload into an outbox-friendly map.
func (p InvoiceReconciledPayload) ToMap() map[string]any {
	return map[string]any{
		"manufacturer_id": p.ManufacturerID,
		"row_count":       p.RowCount,
		"applied_count":   p.AppliedCount,
	}
}
