package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/interview-service/internal/events"
)

// AuditService writes an audit line for every interview change.
type AuditService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewAuditService creates the service.
func NewAuditService(dispatcher events.Dispatcher, logger *zap.Logger) *AuditService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuditService{
		dispatcher: dispatcher,
		logger:     logger.Named("audit"),
	}
}

// RegisterHandlers subscribes to events.
func (a *AuditService) RegisterHandlers() {
	if a.dispatcher == nil {
		return
	}
	events.SubscribeAll(a.dispatcher, events.InterviewEventTypes(), a.handleInterviewChanged)
}

func (a *AuditService) handleInterviewChanged(_ context.Context, event events.Event) error {
	fields := []zap.Field{
		zap.String("event_id", event.ID),
		zap.Int64("interview_id", event.InterviewID),
		zap.String("actor_id", event.Actor.UserID),
		zap.Time("at", event.Timestamp),
	}
	if payload, ok := event.Payload.(events.InterviewChangedPayload); ok {
		fields = append(fields,
			zap.Time("date", payload.Date),
			zap.String("department", string(payload.Department)))
		if payload.PrevDate != nil {
			fields = append(fields, zap.Time("prev_date", *payload.PrevDate))
		}
	}
	a.logger.Info(string(event.Type), fields...)
	return nil
}
