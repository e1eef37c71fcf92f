package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	auditdomain "github.com/gwak2837/shabangnet-sub003/internal/audit/domain"
	"github.com/gwak2837/shabangnet-sub003/internal/auditcontext"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
}

func NewService(p Params) auditdomain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("audit.service"),
		genID: p.GenID,
	}
}

func (s *Service) AuditLog(ctx context.Context, actor, action, targetType string, targetID *string, metadata map[string]any) {
	action = strings.TrimSpace(action)
	if action == "" {
		return
	}

	actor = strings.TrimSpace(actor)
	if actor == "" {
		actor = auditcontext.ActorFromContext(ctx)
	}

	entry := &auditdomain.AuditLog{
		ID:         s.genID.Generate(),
		Actor:      actor,
		Action:     action,
		TargetType: strings.TrimSpace(targetType),
		TargetID:   targetID,
		CreatedAt:  time.Now().UTC(),
	}

	enriched := make(map[string]any, len(metadata)+3)
	for key, value := range metadata {
		enriched[key] = value
	}
	if requestID := auditcontext.RequestIDFromContext(ctx); requestID != "" {
		enriched["request_id"] = requestID
	}
	if ip := auditcontext.IPAddressFromContext(ctx); ip != "" {
		enriched["ip_address"] = ip
	}
	if ua := auditcontext.UserAgentFromContext(ctx); ua != "" {
		enriched["user_agent"] = ua
	}
	if len(enriched) > 0 {
		entry.Metadata = datatypes.JSONMap(enriched)
	}

	if err := s.db.WithContext(ctx).Create(entry).Error; err != nil {
		s.log.Warn("audit log write failed", zap.String("action", action), zap.Error(err))
	}
}
