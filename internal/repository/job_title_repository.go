package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/interview-service/internal/domain"
)

// JobTitleRepository manages the job title catalog.
type JobTitleRepository interface {
	Create(ctx context.Context, title *domain.JobTitle) error
	List(ctx context.Context) ([]domain.JobTitle, error)
}

type jobTitleRepository struct {
	pool *pgxpool.Pool
}

// NewJobTitleRepository builds the repository.
func NewJobTitleRepository(pool *pgxpool.Pool) JobTitleRepository {
	return &jobTitleRepository{pool: pool}
}

func (r *jobTitleRepository) Create(ctx context.Context, title *domain.JobTitle) error {
	const query = `
        INSERT INTO job_titles (title)
        VALUES ($1)
        RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query, title.Title).Scan(&title.ID, &title.CreatedAt)
}

func (r *jobTitleRepository) List(ctx context.Context) ([]domain.JobTitle, error) {
	const query = `
        SELECT id, title, created_at
        FROM job_titles ORDER BY title`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]domain.JobTitle, 0)
	for rows.Next() {
		var title domain.JobTitle
		if err := rows.Scan(&title.ID, &title.Title, &title.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, title)
	}
	return result, rows.Err()
}
