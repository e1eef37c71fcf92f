package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	courierdomain "github.com/gwak2837/shabangnet-sub003/internal/courier/domain"
)

func (s *Server) ListCouriers(c *gin.Context) {
	resp, err := s.courierSvc.List(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) CreateCourier(c *gin.Context) {
	var req courierdomain.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.courierSvc.Create(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	if s.auditSvc != nil {
		targetID := resp.ID.String()
		s.auditSvc.AuditLog(c.Request.Context(), "", "courier.create", "courier_mapping", &targetID, map[string]any{
			"code": resp.Code,
			"name": resp.Name,
		})
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) UpdateCourier(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req struct {
		Name    *string  `json:"name"`
		Aliases []string `json:"aliases"`
		Enabled *bool    `json:"enabled"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	if req.Enabled != nil {
		if err := s.courierSvc.SetEnabled(c.Request.Context(), id, *req.Enabled); err != nil {
			AbortWithError(c, err)
			return
		}
	}

	if req.Name != nil || req.Aliases != nil {
		if _, err := s.courierSvc.Update(c.Request.Context(), courierdomain.UpdateRequest{
			ID:      id,
			Name:    req.Name,
			Aliases: req.Aliases,
		}); err != nil {
			AbortWithError(c, err)
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
