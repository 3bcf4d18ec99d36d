package services

import (
	"context"

	"go.uber.org/zap"
)

// recordAudit logs the supplied entry while tolerating audit failures.
func recordAudit(audit *AuditService, log *zap.Logger, ctx context.Context, entry AuditEntry) {
	if audit == nil {
		return
	}
	if err := audit.Log(ctx, entry); err != nil && log != nil {
		log.Warn("audit entry dropped", zap.String("action", entry.Action), zap.Error(err))
	}
}
