package server

import (
	"net/http"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"

	orderdomain "github.com/gwak2837/shabangnet-sub003/internal/order/domain"
)

func (s *Server) ListOrders(c *gin.Context) {
	var query struct {
		Status         string `form:"status"`
		ManufacturerID string `form:"manufacturer_id"`
		Unresolved     bool   `form:"unresolved"`
		Limit          int    `form:"limit"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	filter := orderdomain.ListFilter{
		Status:     orderdomain.Status(strings.TrimSpace(query.Status)),
		Unresolved: query.Unresolved,
		Limit:      query.Limit,
	}
	if raw := strings.TrimSpace(query.ManufacturerID); raw != "" {
		id, err := snowflake.ParseString(raw)
		if err != nil || id == 0 {
			AbortWithError(c, newValidationError("manufacturer_id", "invalid_manufacturer_id", "invalid manufacturer id"))
			return
		}
		filter.ManufacturerID = &id
	}

	resp, err := s.orderRepo.List(c.Request.Context(), s.db, filter)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListExcludedOrders(c *gin.Context) {
	resp, err := s.exclusionSvc.ExcludedOrders(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}
