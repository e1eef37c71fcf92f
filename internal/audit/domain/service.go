package domain

import "context"

type Service interface {
	// AuditLog records one admin action. Failures are logged, not
	// propagated; auditing never blocks the action itself.
	AuditLog(ctx context.Context, actor, action, targetType string, targetID *string, metadata map[string]any)
}
