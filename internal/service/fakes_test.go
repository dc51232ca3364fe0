package service

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/spec-kit/interview-service/internal/auth"
	"github.com/spec-kit/interview-service/internal/domain"
	"github.com/spec-kit/interview-service/internal/repository"
)

type fakeInterviewRepo struct {
	mu      sync.Mutex
	nextID  int64
	items   []domain.Interview
	filters []repository.InterviewFilter
}

func (r *fakeInterviewRepo) Create(_ context.Context, interview *domain.Interview) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	interview.ID = r.nextID
	r.items = append(r.items, *interview)
	return nil
}

func (r *fakeInterviewRepo) Update(_ context.Context, interview *domain.Interview) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.items {
		if r.items[i].ID == interview.ID {
			r.items[i] = *interview
			return nil
		}
	}
	return pgx.ErrNoRows
}

func (r *fakeInterviewRepo) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.items {
		if r.items[i].ID == id {
			r.items = append(r.items[:i], r.items[i+1:]...)
			return nil
		}
	}
	return pgx.ErrNoRows
}

func (r *fakeInterviewRepo) GetByID(_ context.Context, id int64) (*domain.Interview, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.items {
		if r.items[i].ID == id {
			item := r.items[i]
			return &item, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeInterviewRepo) Find(_ context.Context, filter repository.InterviewFilter) ([]domain.Interview, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.filters = append(r.filters, filter)
	result := make([]domain.Interview, 0)
	for _, item := range r.items {
		if filter.From != nil && item.Date.Before(*filter.From) {
			continue
		}
		if filter.To != nil && item.Date.After(*filter.To) {
			continue
		}
		if filter.Department != nil && item.Department != *filter.Department {
			continue
		}
		result = append(result, item)
	}
	return result, nil
}

func (r *fakeInterviewRepo) lastFilter() repository.InterviewFilter {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.filters[len(r.filters)-1]
}

type fakeCache struct {
	generation  int64
	entries     map[string][]domain.Interview
	invalidated int
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: map[string][]domain.Interview{}}
}

func (c *fakeCache) Get(_ context.Context, key string) ([]domain.Interview, int64, bool, error) {
	items, ok := c.entries[key]
	return items, c.generation, ok, nil
}

func (c *fakeCache) Set(_ context.Context, gen int64, key string, items []domain.Interview) error {
	if gen == c.generation {
		c.entries[key] = items
	}
	return nil
}

func (c *fakeCache) Invalidate(context.Context) error {
	c.generation++
	c.invalidated++
	c.entries = map[string][]domain.Interview{}
	return nil
}

type fakeUsers struct {
	mu      sync.Mutex
	byID    map[string]*domain.User
	byEmail map[string]*domain.User
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{byID: map[string]*domain.User{}, byEmail: map[string]*domain.User{}}
}

func (f *fakeUsers) Create(_ context.Context, user *domain.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.byEmail[user.Email]; ok {
		return &pgconn.PgError{Code: "23505"}
	}
	user.ID = uuid.NewString()
	f.byID[user.ID] = user
	f.byEmail[user.Email] = user
	return nil
}

func (f *fakeUsers) Update(_ context.Context, user *domain.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.byID[user.ID] = user
	f.byEmail[user.Email] = user
	return nil
}

func (f *fakeUsers) GetByID(_ context.Context, id string) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u, ok := f.byID[id]; ok {
		return u, nil
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeUsers) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u, ok := f.byEmail[email]; ok {
		return u, nil
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeUsers) List(_ context.Context, limit, offset int) ([]domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	result := make([]domain.User, 0, len(f.byID))
	for _, u := range f.byID {
		result = append(result, *u)
	}
	if offset >= len(result) {
		return []domain.User{}, nil
	}
	result = result[offset:]
	if len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

type fakeSessions struct {
	mu       sync.Mutex
	sessions map[string]string
}

func newFakeSessions() *fakeSessions {
	return &fakeSessions{sessions: map[string]string{}}
}

func (f *fakeSessions) Save(_ context.Context, tokenID, userID string, _ time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sessions[tokenID] = userID
	return nil
}

func (f *fakeSessions) Consume(_ context.Context, tokenID string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	userID, ok := f.sessions[tokenID]
	if !ok {
		return "", auth.ErrSessionNotFound
	}
	delete(f.sessions, tokenID)
	return userID, nil
}

func (f *fakeSessions) Revoke(_ context.Context, tokenID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.sessions, tokenID)
	return nil
}

type fakeJobTitles struct {
	items []domain.JobTitle
}

func (f *fakeJobTitles) Create(_ context.Context, title *domain.JobTitle) error {
	for _, existing := range f.items {
		if existing.Title == title.Title {
			return &pgconn.PgError{Code: "23505"}
		}
	}
	title.ID = int64(len(f.items) + 1)
	f.items = append(f.items, *title)
	return nil
}

func (f *fakeJobTitles) List(context.Context) ([]domain.JobTitle, error) {
	return append([]domain.JobTitle{}, f.items...), nil
}

// blockingInterviewRepo holds Find until release is closed.
type blockingInterviewRepo struct {
	*fakeInterviewRepo
	entered chan struct{}
	release chan struct{}
	once    sync.Once
}

func newBlockingInterviewRepo() *blockingInterviewRepo {
	return &blockingInterviewRepo{
		fakeInterviewRepo: &fakeInterviewRepo{},
		entered:           make(chan struct{}),
		release:           make(chan struct{}),
	}
}

func (r *blockingInterviewRepo) Find(ctx context.Context, filter repository.InterviewFilter) ([]domain.Interview, error) {
	r.once.Do(func() { close(r.entered) })
	select {
	case <-r.release:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	return r.fakeInterviewRepo.Find(ctx, filter)
}
