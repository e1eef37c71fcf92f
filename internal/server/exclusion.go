package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	exclusiondomain "github.com/gwak2837/shabangnet-sub003/internal/exclusion/domain"
)

// noReasonPlaceholder fills in for patterns with neither a description nor
// readable pattern text.
const noReasonPlaceholder = "no reason"

func (s *Server) ListExclusionPatterns(c *gin.Context) {
	resp, err := s.exclusionSvc.ListPatterns(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) CreateExclusionPattern(c *gin.Context) {
	var req exclusiondomain.CreatePatternRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.exclusionSvc.CreatePattern(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	if s.auditSvc != nil {
		targetID := resp.ID.String()
		s.auditSvc.AuditLog(c.Request.Context(), "", "exclusion.create", "exclusion_pattern", &targetID, map[string]any{
			"pattern": resp.Pattern,
		})
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) SetExclusionPatternEnabled(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req struct {
		Enabled *bool `json:"enabled"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Enabled == nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	if err := s.exclusionSvc.SetPatternEnabled(c.Request.Context(), id, *req.Enabled); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) GetExclusionToggle(c *gin.Context) {
	toggle, err := s.exclusionSvc.Toggle(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": gin.H{
		"state":   toggle.String(),
		"enabled": toggle.Enabled(),
	}})
}

func (s *Server) SetExclusionToggle(c *gin.Context) {
	var req struct {
		Enabled *bool `json:"enabled"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Enabled == nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	if err := s.exclusionSvc.SetToggle(c.Request.Context(), *req.Enabled); err != nil {
		AbortWithError(c, err)
		return
	}

	if s.auditSvc != nil {
		s.auditSvc.AuditLog(c.Request.Context(), "", "exclusion.toggle", "setting", nil, map[string]any{
			"enabled": *req.Enabled,
		})
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) CheckExclusion(c *gin.Context) {
	fulfillmentType := c.Query("fulfillment_type")

	reason, err := s.exclusionSvc.Reason(c.Request.Context(), fulfillmentType)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	resp := gin.H{"excluded": reason != nil}
	if reason != nil {
		text := *reason
		if text == "" {
			text = noReasonPlaceholder
		}
		resp["reason"] = text
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}
