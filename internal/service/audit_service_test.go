package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/spec-kit/interview-service/internal/calendar"
	"github.com/spec-kit/interview-service/internal/domain"
	"github.com/spec-kit/interview-service/internal/events"
)

func TestAuditService_LogsInterviewEvents(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	dispatcher := events.NewInMemoryDispatcher()
	NewAuditService(dispatcher, zap.New(core)).RegisterHandlers()

	prev := calendar.Date(2024, time.March, 1)
	err := dispatcher.Publish(context.Background(), events.Event{
		ID:          "evt-1",
		Type:        events.EventInterviewUpdated,
		InterviewID: 42,
		Actor:       events.Actor{UserID: "user-1"},
		Timestamp:   testNow,
		Payload: events.InterviewChangedPayload{
			Date:       calendar.Date(2024, time.March, 5),
			Department: domain.DepartmentTesting,
			PrevDate:   &prev,
		},
	})
	require.NoError(t, err)

	entries := logs.FilterMessage(string(events.EventInterviewUpdated)).All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	require.Equal(t, int64(42), fields["interview_id"])
	require.Equal(t, "user-1", fields["actor_id"])
	require.Equal(t, "Testing", fields["department"])
	require.Contains(t, fields, "prev_date")
	require.Equal(t, "audit", entries[0].LoggerName)
}
