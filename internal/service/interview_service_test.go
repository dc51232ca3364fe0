package service

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/interview-service/internal/calendar"
	"github.com/spec-kit/interview-service/internal/domain"
	"github.com/spec-kit/interview-service/internal/events"
	"github.com/spec-kit/interview-service/internal/observability"
	"github.com/spec-kit/interview-service/internal/repository"
	apperrors "github.com/spec-kit/interview-service/pkg/util/errorutil"
)

// Wednesday 2024-03-13.
var testNow = time.Date(2024, time.March, 13, 10, 0, 0, 0, time.UTC)

func seedInterview(repo *fakeInterviewRepo, date time.Time, dept domain.Department) {
	_ = repo.Create(context.Background(), &domain.Interview{
		Interviewee: "Candidate " + date.Format(calendar.DateLayout),
		Date:        date,
		Time:        "10:00",
		Duration:    time.Hour,
		Department:  dept,
	})
}

func newInterviewServiceForTest(repo repository.InterviewRepository, cache InterviewCache, dispatcher events.Dispatcher) *InterviewService {
	return NewInterviewService(InterviewDependencies{
		InterviewRepo: repo,
		Resolver:      calendar.NewResolver(func() time.Time { return testNow }, time.UTC),
		Cache:         cache,
		Dispatcher:    dispatcher,
		Metrics:       observability.NewMetrics(prometheus.NewRegistry()),
		Now:           func() time.Time { return testNow },
	})
}

func datesOf(items []domain.Interview) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, item.Date.Format(calendar.DateLayout))
	}
	return out
}

func requireCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	require.Equal(t, code, apperrors.ToDomainError(err).Code)
}

func TestInterviewService_ByDateReturnsOnlyThatDay(t *testing.T) {
	repo := &fakeInterviewRepo{}
	seedInterview(repo, calendar.Date(2024, time.March, 14), domain.DepartmentSoftware)
	seedInterview(repo, calendar.Date(2024, time.March, 15), domain.DepartmentFinance)
	svc := newInterviewServiceForTest(repo, nil, nil)

	items, err := svc.ByDate(context.Background(), "2024-03-15", "")
	require.NoError(t, err)
	require.Equal(t, []string{"2024-03-15"}, datesOf(items))

	filter := repo.lastFilter()
	require.Equal(t, *filter.From, *filter.To)
	require.Nil(t, filter.Department)
}

func TestInterviewService_ByRangeIsInclusiveAcrossDepartments(t *testing.T) {
	repo := &fakeInterviewRepo{}
	seedInterview(repo, calendar.Date(2024, time.February, 29), domain.DepartmentSoftware)
	seedInterview(repo, calendar.Date(2024, time.March, 1), domain.DepartmentSoftware)
	seedInterview(repo, calendar.Date(2024, time.March, 15), domain.DepartmentTesting)
	seedInterview(repo, calendar.Date(2024, time.March, 31), domain.DepartmentFinance)
	seedInterview(repo, calendar.Date(2024, time.April, 1), domain.DepartmentFinance)
	svc := newInterviewServiceForTest(repo, nil, nil)

	items, err := svc.ByRange(context.Background(), "2024-03-01", "2024-03-31", "")
	require.NoError(t, err)
	require.Equal(t, []string{"2024-03-01", "2024-03-15", "2024-03-31"}, datesOf(items))
}

func TestInterviewService_DepartmentFilter(t *testing.T) {
	repo := &fakeInterviewRepo{}
	seedInterview(repo, calendar.Date(2024, time.March, 12), domain.DepartmentSoftware)
	seedInterview(repo, calendar.Date(2024, time.March, 12), domain.DepartmentFinance)
	svc := newInterviewServiceForTest(repo, nil, nil)
	ctx := context.Background()

	items, err := svc.ThisWeek(ctx, "", "finance")
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.Equal(t, domain.DepartmentFinance, items[0].Department)

	items, err = svc.ByDepartment(ctx, "")
	require.NoError(t, err)
	require.Len(t, items, 2)
	require.Nil(t, repo.lastFilter().From)

	_, err = svc.ByDepartment(ctx, "Marketing")
	requireCode(t, err, apperrors.CodeValidationFailed)
}

func TestInterviewService_ResolvesWindowsFromClock(t *testing.T) {
	repo := &fakeInterviewRepo{}
	svc := newInterviewServiceForTest(repo, nil, nil)
	ctx := context.Background()

	cases := []struct {
		name  string
		call  func() error
		start time.Time
		end   time.Time
	}{
		{
			name:  "current week",
			call:  func() error { _, err := svc.ThisWeek(ctx, "", ""); return err },
			start: calendar.Date(2024, time.March, 11),
			end:   calendar.Date(2024, time.March, 17),
		},
		{
			name:  "explicit week",
			call:  func() error { _, err := svc.ThisWeek(ctx, "2024-01-07", ""); return err },
			start: calendar.Date(2024, time.January, 1),
			end:   calendar.Date(2024, time.January, 7),
		},
		{
			name:  "work week",
			call:  func() error { _, err := svc.ThisWorkWeek(ctx, ""); return err },
			start: calendar.Date(2024, time.March, 11),
			end:   calendar.Date(2024, time.March, 15),
		},
		{
			name:  "current month",
			call:  func() error { _, err := svc.ByMonth(ctx, "", "", ""); return err },
			start: calendar.Date(2024, time.March, 1),
			end:   calendar.Date(2024, time.March, 31),
		},
		{
			name:  "december",
			call:  func() error { _, err := svc.ByMonth(ctx, "2024", "12", ""); return err },
			start: calendar.Date(2024, time.December, 1),
			end:   calendar.Date(2024, time.December, 31),
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.NoError(t, tc.call())
			filter := repo.lastFilter()
			require.Equal(t, tc.start, *filter.From)
			require.Equal(t, tc.end, *filter.To)
		})
	}
}

func TestInterviewService_RejectsBadWindows(t *testing.T) {
	svc := newInterviewServiceForTest(&fakeInterviewRepo{}, nil, nil)
	ctx := context.Background()

	_, err := svc.ByDate(ctx, "", "")
	requireCode(t, err, apperrors.CodeInvalidFormat)

	_, err = svc.ByDate(ctx, "15/03/2024", "")
	requireCode(t, err, apperrors.CodeInvalidFormat)

	_, err = svc.ByMonth(ctx, "abc", "5", "")
	requireCode(t, err, apperrors.CodeInvalidFormat)

	_, err = svc.ByMonth(ctx, "2024", "13", "")
	requireCode(t, err, apperrors.CodeInvalidRange)

	_, err = svc.ByRange(ctx, "2024-03-31", "2024-03-01", "")
	requireCode(t, err, apperrors.CodeInvalidRange)
	require.Equal(t, map[string]any{"field": "start"}, apperrors.ToDomainError(err).Details)
}

func TestInterviewService_CacheHitAndInvalidation(t *testing.T) {
	repo := &fakeInterviewRepo{}
	seedInterview(repo, calendar.Date(2024, time.March, 15), domain.DepartmentSoftware)
	cache := newFakeCache()
	dispatcher := events.NewInMemoryDispatcher()
	for _, typ := range events.InterviewEventTypes() {
		dispatcher.Subscribe(typ, func(ctx context.Context, _ events.Event) error {
			return cache.Invalidate(ctx)
		})
	}
	svc := newInterviewServiceForTest(repo, cache, dispatcher)
	ctx := context.Background()

	_, err := svc.ByDate(ctx, "2024-03-15", "")
	require.NoError(t, err)
	_, err = svc.ByDate(ctx, "2024-03-15", "")
	require.NoError(t, err)
	require.Len(t, repo.filters, 1, "second lookup should be served from cache")

	_, err = svc.Create(ctx, "user-1", validInput("2024-03-15"))
	require.NoError(t, err)
	require.Equal(t, 1, cache.invalidated)

	items, err := svc.ByDate(ctx, "2024-03-15", "")
	require.NoError(t, err)
	require.Len(t, items, 2)
	require.Len(t, repo.filters, 2)
}

func validInput(date string) InterviewInput {
	return InterviewInput{
		Interviewee:     "Ada Lovelace",
		Email:           "ada@example.com",
		Phone:           "+441234567",
		Date:            date,
		Time:            "9:30",
		DurationMinutes: 45,
		Role:            "Backend Engineer",
		JobTitle:        "Engineer",
		BusinessArea:    "Platform",
		Department:      "software",
	}
}

func TestInterviewService_CRUD(t *testing.T) {
	repo := &fakeInterviewRepo{}
	dispatcher := events.NewInMemoryDispatcher()
	var published []events.Event
	for _, typ := range events.InterviewEventTypes() {
		dispatcher.Subscribe(typ, func(_ context.Context, e events.Event) error {
			published = append(published, e)
			return nil
		})
	}
	svc := newInterviewServiceForTest(repo, nil, dispatcher)
	ctx := context.Background()

	created, err := svc.Create(ctx, "user-1", validInput("2024-03-15"))
	require.NoError(t, err)
	require.Equal(t, "09:30", created.Time)
	require.Equal(t, 45*time.Minute, created.Duration)
	require.Equal(t, domain.DepartmentSoftware, created.Department)

	update := validInput("2024-03-20")
	update.Department = "Finance"
	updated, err := svc.Update(ctx, "user-1", created.ID, update)
	require.NoError(t, err)
	require.Equal(t, created.ID, updated.ID)

	got, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, calendar.Date(2024, time.March, 20), got.Date)
	require.Equal(t, domain.DepartmentFinance, got.Department)

	require.NoError(t, svc.Delete(ctx, "user-1", created.ID))
	_, err = svc.Get(ctx, created.ID)
	requireCode(t, err, apperrors.CodeNotFound)
	requireCode(t, svc.Delete(ctx, "user-1", created.ID), apperrors.CodeNotFound)

	require.Len(t, published, 3)
	require.Equal(t, events.EventInterviewCreated, published[0].Type)
	require.Equal(t, events.EventInterviewUpdated, published[1].Type)
	payload := published[1].Payload.(events.InterviewChangedPayload)
	require.Equal(t, calendar.Date(2024, time.March, 15), *payload.PrevDate)
	require.Equal(t, events.EventInterviewDeleted, published[2].Type)
	require.Equal(t, "user-1", published[2].Actor.UserID)
}

func TestInterviewService_CreateValidation(t *testing.T) {
	svc := newInterviewServiceForTest(&fakeInterviewRepo{}, nil, nil)

	in := validInput("2024-02-30")
	in.Time = "25:00"
	in.DurationMinutes = 0
	in.Department = "Sales"
	in.Interviewee = "  "

	_, err := svc.Create(context.Background(), "", in)
	requireCode(t, err, apperrors.CodeValidationFailed)
	details := apperrors.ToDomainError(err).Details
	for _, field := range []string{"date", "time", "duration", "department", "interviewee"} {
		require.Contains(t, details, field)
	}
}

func TestInterviewService_SharedLookupSurvivesCancelledCaller(t *testing.T) {
	repo := newBlockingInterviewRepo()
	seedInterview(repo.fakeInterviewRepo, calendar.Date(2024, time.March, 12), domain.DepartmentSoftware)
	seedInterview(repo.fakeInterviewRepo, calendar.Date(2024, time.March, 14), domain.DepartmentTesting)
	svc := newInterviewServiceForTest(repo, nil, nil)

	ctxA, cancelA := context.WithCancel(context.Background())
	defer cancelA()
	errA := make(chan error, 1)
	go func() {
		_, err := svc.ByRange(ctxA, "2024-03-11", "2024-03-15", "")
		errA <- err
	}()
	<-repo.entered

	type outcome struct {
		items []domain.Interview
		err   error
	}
	resB := make(chan outcome, 1)
	go func() {
		items, err := svc.ByRange(context.Background(), "2024-03-11", "2024-03-15", "")
		resB <- outcome{items: items, err: err}
	}()
	time.Sleep(50 * time.Millisecond)

	cancelA()
	select {
	case err := <-errA:
		require.Error(t, err)
	case <-time.After(time.Second):
		t.Fatal("cancelled caller did not return")
	}

	close(repo.release)
	select {
	case got := <-resB:
		require.NoError(t, got.err)
		require.Equal(t, []string{"2024-03-12", "2024-03-14"}, datesOf(got.items))
	case <-time.After(time.Second):
		t.Fatal("second caller did not return")
	}
	require.Len(t, repo.filters, 1)
}

func TestInterviewService_DurationBounds(t *testing.T) {
	svc := newInterviewServiceForTest(&fakeInterviewRepo{}, nil, nil)
	ctx := context.Background()

	for _, minutes := range []int{maxDurationMinutes + 1, math.MaxInt32 + 60, math.MaxInt} {
		in := validInput("2024-03-15")
		in.DurationMinutes = minutes
		_, err := svc.Create(ctx, "", in)
		requireCode(t, err, apperrors.CodeValidationFailed)
		require.Contains(t, apperrors.ToDomainError(err).Details, "duration")
	}

	in := validInput("2024-03-15")
	in.DurationMinutes = maxDurationMinutes
	created, err := svc.Create(ctx, "", in)
	require.NoError(t, err)
	require.Equal(t, 24*time.Hour, created.Duration)
}
