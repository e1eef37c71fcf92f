package server

import (
	"net/http"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"

	reconciliationdomain "github.com/gwak2837/shabangnet-sub003/internal/reconciliation/domain"
)

type reconcileInvoiceRequest struct {
	ManufacturerID string                            `json:"manufacturer_id"`
	Rows           []reconciliationdomain.InvoiceRow `json:"rows"`
}

func (s *Server) ReconcileInvoice(c *gin.Context) {
	var req reconcileInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	manufacturerID, err := snowflake.ParseString(strings.TrimSpace(req.ManufacturerID))
	if err != nil || manufacturerID == 0 {
		AbortWithError(c, newValidationError("manufacturer_id", "invalid_manufacturer_id", "invalid manufacturer id"))
		return
	}

	resp, err := s.reconciliationSvc.Reconcile(c.Request.Context(), reconciliationdomain.ReconcileRequest{
		ManufacturerID: manufacturerID,
		Rows:           req.Rows,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	if s.auditSvc != nil {
		targetID := manufacturerID.String()
		s.auditSvc.AuditLog(c.Request.Context(), "", "invoice.reconcile", "manufacturer", &targetID, map[string]any{
			"rows":    len(req.Rows),
			"applied": resp.AppliedCount,
		})
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}
