package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/spec-kit/interview-service/internal/calendar"
	"github.com/spec-kit/interview-service/internal/domain"
	"github.com/spec-kit/interview-service/internal/events"
	"github.com/spec-kit/interview-service/internal/observability"
	"github.com/spec-kit/interview-service/internal/repository"
	apperrors "github.com/spec-kit/interview-service/pkg/util/errorutil"
)

const (
	timeOfDayLayout = "15:04"

	// lookupTimeout bounds a shared store query once it no longer follows any
	// single request.
	lookupTimeout = 10 * time.Second

	maxDurationMinutes = 24 * 60
)

// InterviewCache caches query results keyed by window and department.
type InterviewCache interface {
	Get(ctx context.Context, key string) ([]domain.Interview, int64, bool, error)
	Set(ctx context.Context, generation int64, key string, items []domain.Interview) error
	Invalidate(ctx context.Context) error
}

// InterviewService answers date-window queries and manages interview records.
type InterviewService struct {
	interviews repository.InterviewRepository
	resolver   *calendar.Resolver
	cache      InterviewCache
	dispatcher events.Dispatcher
	logger     *zap.Logger
	metrics    *observability.Metrics
	now        func() time.Time
	inflight   singleflight.Group
}

// InterviewDependencies bundles collaborators for the interview service. Cache,
// Dispatcher and Metrics are optional.
type InterviewDependencies struct {
	InterviewRepo repository.InterviewRepository
	Resolver      *calendar.Resolver
	Cache         InterviewCache
	Dispatcher    events.Dispatcher
	Logger        *zap.Logger
	Metrics       *observability.Metrics
	Now           func() time.Time
}

// InterviewInput is the writable part of an interview as received from clients.
type InterviewInput struct {
	Interviewee     string
	Email           string
	Phone           string
	Date            string
	Time            string
	DurationMinutes int
	Role            string
	Interviewer     *string
	JobTitle        string
	BusinessArea    string
	Department      string
	AdditionalNotes *string
}

// NewInterviewService constructs the service.
func NewInterviewService(deps InterviewDependencies) *InterviewService {
	resolver := deps.Resolver
	if resolver == nil {
		resolver = calendar.NewResolver(nil, nil)
	}
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	return &InterviewService{
		interviews: deps.InterviewRepo,
		resolver:   resolver,
		cache:      deps.Cache,
		dispatcher: deps.Dispatcher,
		logger:     logger,
		metrics:    deps.Metrics,
		now:        now,
	}
}

// Find returns interviews whose date falls inside window, optionally restricted to a
// department. A nil window applies no date predicate and an empty department applies
// no department predicate. Results come back in store order.
func (s *InterviewService) Find(ctx context.Context, window *calendar.Window, department string) ([]domain.Interview, error) {
	filter := repository.InterviewFilter{}
	if window != nil {
		start, end := window.Start, window.End
		filter.From, filter.To = &start, &end
	}
	if strings.TrimSpace(department) != "" {
		dept, err := domain.ParseDepartment(department)
		if err != nil {
			return nil, apperrors.NewValidationError("unknown department", map[string]any{
				"field":   "department",
				"allowed": domain.Departments(),
			})
		}
		filter.Department = &dept
	}

	key := cacheKey(filter)
	ch := s.inflight.DoChan(key, func() (any, error) {
		lookupCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), lookupTimeout)
		defer cancel()
		return s.lookup(lookupCtx, key, filter)
	})
	select {
	case <-ctx.Done():
		return nil, apperrors.MapError(ctx.Err())
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.([]domain.Interview), nil
	}
}

// lookup serves a query from the cache when possible and fills it otherwise.
func (s *InterviewService) lookup(ctx context.Context, key string, filter repository.InterviewFilter) ([]domain.Interview, error) {
	var generation int64
	if s.cache != nil {
		items, gen, hit, err := s.cache.Get(ctx, key)
		if err != nil {
			s.logger.Warn("interview cache lookup failed", zap.String("key", key), zap.Error(err))
		}
		generation = gen
		s.metrics.RecordCacheLookup(hit)
		if hit {
			return items, nil
		}
	}

	items, err := s.interviews.Find(ctx, filter)
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, generation, key, items); err != nil {
			s.logger.Warn("interview cache store failed", zap.String("key", key), zap.Error(err))
		}
	}
	return items, nil
}

// ByDate returns interviews scheduled exactly on the given YYYY-MM-DD date.
func (s *InterviewService) ByDate(ctx context.Context, dateRaw, department string) ([]domain.Interview, error) {
	if strings.TrimSpace(dateRaw) == "" {
		return nil, apperrors.NewInvalidFormat("date is required", map[string]any{"field": "date"})
	}
	d, err := calendar.ParseDate("date", dateRaw)
	if err != nil {
		return nil, windowError(err)
	}
	w := calendar.SingleDate(d)
	return s.Find(ctx, &w, department)
}

// ByRange returns interviews between two YYYY-MM-DD dates, both inclusive.
func (s *InterviewService) ByRange(ctx context.Context, startRaw, endRaw, department string) ([]domain.Interview, error) {
	w, err := calendar.DateRangeStrict(startRaw, endRaw)
	if err != nil {
		return nil, windowError(err)
	}
	return s.Find(ctx, &w, department)
}

// ThisWeek returns interviews in the Monday to Sunday week containing dateRaw, or today
// when dateRaw is empty.
func (s *InterviewService) ThisWeek(ctx context.Context, dateRaw, department string) ([]domain.Interview, error) {
	w, err := s.resolver.Week(dateRaw)
	if err != nil {
		return nil, windowError(err)
	}
	return s.Find(ctx, &w, department)
}

// ThisWorkWeek returns interviews from Monday to Friday of the current week.
func (s *InterviewService) ThisWorkWeek(ctx context.Context, department string) ([]domain.Interview, error) {
	w := s.resolver.CurrentWorkWeek()
	return s.Find(ctx, &w, department)
}

// ByMonth returns interviews in the given month, or the current month when both
// parameters are empty.
func (s *InterviewService) ByMonth(ctx context.Context, yearRaw, monthRaw, department string) ([]domain.Interview, error) {
	w, err := s.resolver.Month(yearRaw, monthRaw)
	if err != nil {
		return nil, windowError(err)
	}
	return s.Find(ctx, &w, department)
}

// ByDepartment filters by department only. An empty department returns everything.
func (s *InterviewService) ByDepartment(ctx context.Context, department string) ([]domain.Interview, error) {
	return s.Find(ctx, nil, department)
}

// List returns every interview.
func (s *InterviewService) List(ctx context.Context) ([]domain.Interview, error) {
	return s.Find(ctx, nil, "")
}

// Get fetches a single interview.
func (s *InterviewService) Get(ctx context.Context, id int64) (*domain.Interview, error) {
	interview, err := s.interviews.GetByID(ctx, id)
	if err != nil {
		if apperrors.IsNoRows(err) {
			return nil, apperrors.NewNotFound("interview", map[string]any{"interview_id": id})
		}
		return nil, apperrors.MapError(err)
	}
	return interview, nil
}

// Create validates and stores a new interview.
func (s *InterviewService) Create(ctx context.Context, actorID string, input InterviewInput) (*domain.Interview, error) {
	interview, err := input.toDomain()
	if err != nil {
		return nil, err
	}
	if err := s.interviews.Create(ctx, interview); err != nil {
		return nil, apperrors.MapError(err)
	}
	s.publishEvent(ctx, events.EventInterviewCreated, actorID, interview, nil)
	return interview, nil
}

// Update replaces every writable field of an existing interview.
func (s *InterviewService) Update(ctx context.Context, actorID string, id int64, input InterviewInput) (*domain.Interview, error) {
	current, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	interview, err := input.toDomain()
	if err != nil {
		return nil, err
	}
	interview.ID = id
	if err := s.interviews.Update(ctx, interview); err != nil {
		if apperrors.IsNoRows(err) {
			return nil, apperrors.NewNotFound("interview", map[string]any{"interview_id": id})
		}
		return nil, apperrors.MapError(err)
	}
	prev := current.Date
	s.publishEvent(ctx, events.EventInterviewUpdated, actorID, interview, &prev)
	return interview, nil
}

// Delete removes an interview.
func (s *InterviewService) Delete(ctx context.Context, actorID string, id int64) error {
	current, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.interviews.Delete(ctx, id); err != nil {
		if apperrors.IsNoRows(err) {
			return apperrors.NewNotFound("interview", map[string]any{"interview_id": id})
		}
		return apperrors.MapError(err)
	}
	s.publishEvent(ctx, events.EventInterviewDeleted, actorID, current, nil)
	return nil
}

func (s *InterviewService) publishEvent(ctx context.Context, typ events.EventType, actorID string, interview *domain.Interview, prevDate *time.Time) {
	if s.dispatcher == nil {
		return
	}
	event := events.Event{
		ID:          uuid.NewString(),
		Type:        typ,
		InterviewID: interview.ID,
		Actor:       events.Actor{UserID: actorID},
		Timestamp:   s.now().UTC(),
		Payload: events.InterviewChangedPayload{
			Date:       interview.Date,
			Department: interview.Department,
			PrevDate:   prevDate,
		},
	}
	if err := s.dispatcher.Publish(ctx, event); err != nil {
		s.logger.Warn("event handlers failed",
			zap.String("event_type", string(typ)),
			zap.Int64("interview_id", interview.ID),
			zap.Error(err))
	}
}

func (in InterviewInput) toDomain() (*domain.Interview, error) {
	fieldErrs := map[string]any{}
	required := func(field, value string) string {
		value = strings.TrimSpace(value)
		if value == "" {
			fieldErrs[field] = "required"
		}
		return value
	}

	interview := &domain.Interview{
		Interviewee:     required("interviewee", in.Interviewee),
		Email:           strings.TrimSpace(in.Email),
		Phone:           strings.TrimSpace(in.Phone),
		Role:            required("role", in.Role),
		Interviewer:     trimmedOrNil(in.Interviewer),
		JobTitle:        required("job_title", in.JobTitle),
		BusinessArea:    required("business_area", in.BusinessArea),
		AdditionalNotes: trimmedOrNil(in.AdditionalNotes),
	}

	if interview.Email != "" {
		if _, err := mail.ParseAddress(interview.Email); err != nil {
			fieldErrs["email"] = "invalid email"
		}
	}

	if d, err := calendar.ParseDate("date", in.Date); err != nil {
		fieldErrs["date"] = "must be YYYY-MM-DD"
	} else {
		interview.Date = d
	}

	if t, err := time.Parse(timeOfDayLayout, strings.TrimSpace(in.Time)); err != nil {
		fieldErrs["time"] = "must be HH:MM"
	} else {
		interview.Time = t.Format(timeOfDayLayout)
	}

	switch {
	case in.DurationMinutes <= 0:
		fieldErrs["duration"] = "must be a positive number of minutes"
	case in.DurationMinutes > maxDurationMinutes:
		fieldErrs["duration"] = fmt.Sprintf("must be at most %d minutes", maxDurationMinutes)
	default:
		interview.Duration = time.Duration(in.DurationMinutes) * time.Minute
	}

	if dept, err := domain.ParseDepartment(in.Department); err != nil {
		fieldErrs["department"] = fmt.Sprintf("must be one of %v", domain.Departments())
	} else {
		interview.Department = dept
	}

	if len(fieldErrs) > 0 {
		return nil, apperrors.NewValidationError("invalid interview", fieldErrs)
	}
	return interview, nil
}

func trimmedOrNil(v *string) *string {
	if v == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*v)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

// windowError converts calendar validation errors into client-facing errors.
func windowError(err error) error {
	var calErr *calendar.Error
	if !errors.As(err, &calErr) {
		return apperrors.MapError(err)
	}
	details := map[string]any{"field": calErr.Field}
	if errors.Is(err, calendar.ErrInvalidRange) {
		return apperrors.NewInvalidRange(calErr.Msg, details)
	}
	return apperrors.NewInvalidFormat(calErr.Msg, details)
}

func cacheKey(filter repository.InterviewFilter) string {
	var b strings.Builder
	if filter.From != nil {
		b.WriteString(filter.From.Format(calendar.DateLayout))
	}
	b.WriteString("..")
	if filter.To != nil {
		b.WriteString(filter.To.Format(calendar.DateLayout))
	}
	b.WriteString("|")
	if filter.Department != nil {
		b.WriteString(string(*filter.Department))
	}
	return b.String()
}
