package server

import (
	"net/http"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"

	resolutiondomain "github.com/gwak2837/shabangnet-sub003/internal/resolution/domain"
)

type linkProductRequest struct {
	ProductCode    string  `json:"product_code"`
	ManufacturerID *string `json:"manufacturer_id"`
	NameHint       string  `json:"name_hint"`
}

type linkOptionRequest struct {
	ProductCode    string `json:"product_code"`
	OptionName     string `json:"option_name"`
	ManufacturerID string `json:"manufacturer_id"`
}

func (s *Server) ResolveOrderLine(c *gin.Context) {
	productCode := c.Query("product_code")
	optionName := c.Query("option_name")

	manufacturerID, err := s.resolutionSvc.Resolve(c.Request.Context(), productCode, optionName)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	resp := gin.H{"resolved": manufacturerID != nil}
	if manufacturerID != nil {
		resp["manufacturer_id"] = manufacturerID.String()
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) LinkProduct(c *gin.Context) {
	var req linkProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	var manufacturerID *snowflake.ID
	if req.ManufacturerID != nil {
		id, err := snowflake.ParseString(strings.TrimSpace(*req.ManufacturerID))
		if err != nil || id == 0 {
			AbortWithError(c, newValidationError("manufacturer_id", "invalid_manufacturer_id", "invalid manufacturer id"))
			return
		}
		manufacturerID = &id
	}

	resp, err := s.resolutionSvc.LinkProduct(c.Request.Context(), resolutiondomain.LinkProductRequest{
		ProductCode:    req.ProductCode,
		ManufacturerID: manufacturerID,
		NameHint:       req.NameHint,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	if s.auditSvc != nil {
		targetID := strings.TrimSpace(req.ProductCode)
		s.auditSvc.AuditLog(c.Request.Context(), "", "product.link", "product", &targetID, map[string]any{
			"manufacturer_id":     req.ManufacturerID,
			"updated_order_count": resp.UpdatedOrderCount,
		})
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) LinkOption(c *gin.Context) {
	var req linkOptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	manufacturerID, err := snowflake.ParseString(strings.TrimSpace(req.ManufacturerID))
	if err != nil || manufacturerID == 0 {
		AbortWithError(c, newValidationError("manufacturer_id", "invalid_manufacturer_id", "invalid manufacturer id"))
		return
	}

	if err := s.resolutionSvc.LinkOption(c.Request.Context(), resolutiondomain.LinkOptionRequest{
		ProductCode:    req.ProductCode,
		OptionName:     req.OptionName,
		ManufacturerID: manufacturerID,
	}); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) UnlinkOption(c *gin.Context) {
	var req struct {
		ProductCode string `json:"product_code"`
		OptionName  string `json:"option_name"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	if err := s.resolutionSvc.UnlinkOption(c.Request.Context(), req.ProductCode, req.OptionName); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
