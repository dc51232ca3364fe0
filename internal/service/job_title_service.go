package service

import (
	"context"
	"strings"

	"github.com/spec-kit/interview-service/internal/domain"
	"github.com/spec-kit/interview-service/internal/repository"
	apperrors "github.com/spec-kit/interview-service/pkg/util/errorutil"
)

// JobTitleService manages the job title catalog.
type JobTitleService struct {
	titles repository.JobTitleRepository
}

func NewJobTitleService(titles repository.JobTitleRepository) *JobTitleService {
	return &JobTitleService{titles: titles}
}

func (s *JobTitleService) List(ctx context.Context) ([]domain.JobTitle, error) {
	titles, err := s.titles.List(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return titles, nil
}

// Create adds a title. Titles are unique.
func (s *JobTitleService) Create(ctx context.Context, title string) (*domain.JobTitle, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, apperrors.NewValidationError("invalid job title", map[string]any{"title": "required"})
	}
	if len(title) > 50 {
		return nil, apperrors.NewValidationError("invalid job title", map[string]any{"title": "at most 50 characters"})
	}
	jt := &domain.JobTitle{Title: title}
	if err := s.titles.Create(ctx, jt); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, apperrors.NewConflict("job title already exists", map[string]any{"title": title})
		}
		return nil, apperrors.MapError(err)
	}
	return jt, nil
}
