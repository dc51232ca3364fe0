package worker

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/interview-service/internal/events"
	"github.com/spec-kit/interview-service/internal/service"
)

const invalidateTimeout = 2 * time.Second

// CacheInvalidator drops cached query results.
type CacheInvalidator interface {
	Invalidate(ctx context.Context) error
}

// StartAuditWorker registers audit handlers.
func StartAuditWorker(auditService *service.AuditService) {
	if auditService == nil {
		return
	}
	auditService.RegisterHandlers()
}

// StartCacheInvalidator subscribes cache invalidation to every interview write.
func StartCacheInvalidator(dispatcher events.Dispatcher, cache CacheInvalidator, logger *zap.Logger) {
	if dispatcher == nil || cache == nil {
		return
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	handler := func(ctx context.Context, event events.Event) error {
		ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), invalidateTimeout)
		defer cancel()
		if err := cache.Invalidate(ctx); err != nil {
			logger.Warn("interview cache invalidation failed",
				zap.String("event_type", string(event.Type)),
				zap.Int64("interview_id", event.InterviewID),
				zap.Error(err))
			return err
		}
		return nil
	}
	events.SubscribeAll(dispatcher, events.InterviewEventTypes(), handler)
}
