package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/interview-service/internal/domain"
)

// InterviewFilter narrows interview lookups. Nil fields are not applied. From and To
// are inclusive dates; when both are set and equal the store matches that date exactly.
type InterviewFilter struct {
	From       *time.Time
	To         *time.Time
	Department *domain.Department
}

// InterviewRepository encapsulates interview persistence.
type InterviewRepository interface {
	Create(ctx context.Context, interview *domain.Interview) error
	Update(ctx context.Context, interview *domain.Interview) error
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*domain.Interview, error)
	Find(ctx context.Context, filter InterviewFilter) ([]domain.Interview, error)
}

type interviewRepository struct {
	pool *pgxpool.Pool
}

// NewInterviewRepository returns a Postgres-backed implementation.
func NewInterviewRepository(pool *pgxpool.Pool) InterviewRepository {
	return &interviewRepository{pool: pool}
}

const interviewColumns = `id, interviewee, email, phone, date, to_char(start_time, 'HH24:MI'), duration_minutes,
               role, interviewer, job_title, business_area, department, additional_notes, created_at, updated_at`

func (r *interviewRepository) Create(ctx context.Context, interview *domain.Interview) error {
	const query = `
        INSERT INTO interviews (interviewee, email, phone, date, start_time, duration_minutes, role,
            interviewer, job_title, business_area, department, additional_notes)
        VALUES ($1,$2,$3,$4,$5::text::time,$6,$7,$8,$9,$10,$11,$12)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		interview.Interviewee,
		interview.Email,
		interview.Phone,
		interview.Date,
		interview.Time,
		durationMinutes(interview.Duration),
		interview.Role,
		interview.Interviewer,
		interview.JobTitle,
		interview.BusinessArea,
		interview.Department,
		interview.AdditionalNotes,
	).Scan(&interview.ID, &interview.CreatedAt, &interview.UpdatedAt)
}

func (r *interviewRepository) Update(ctx context.Context, interview *domain.Interview) error {
	const query = `
        UPDATE interviews SET interviewee=$1, email=$2, phone=$3, date=$4, start_time=$5::text::time,
            duration_minutes=$6, role=$7, interviewer=$8, job_title=$9, business_area=$10,
            department=$11, additional_notes=$12, updated_at=NOW()
        WHERE id=$13
        RETURNING created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		interview.Interviewee,
		interview.Email,
		interview.Phone,
		interview.Date,
		interview.Time,
		durationMinutes(interview.Duration),
		interview.Role,
		interview.Interviewer,
		interview.JobTitle,
		interview.BusinessArea,
		interview.Department,
		interview.AdditionalNotes,
		interview.ID,
	).Scan(&interview.CreatedAt, &interview.UpdatedAt)
}

func (r *interviewRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM interviews WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *interviewRepository) GetByID(ctx context.Context, id int64) (*domain.Interview, error) {
	query := `SELECT ` + interviewColumns + ` FROM interviews WHERE id=$1`

	interview, err := scanInterview(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		return nil, err
	}
	return interview, nil
}

func (r *interviewRepository) Find(ctx context.Context, filter InterviewFilter) ([]domain.Interview, error) {
	query, args := buildInterviewQuery(filter)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]domain.Interview, 0)
	for rows.Next() {
		interview, err := scanInterview(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *interview)
	}
	return result, rows.Err()
}

func buildInterviewQuery(filter InterviewFilter) (string, []any) {
	clauses := []string{"1=1"}
	args := []any{}

	switch {
	case filter.From != nil && filter.To != nil && filter.From.Equal(*filter.To):
		args = append(args, *filter.From)
		clauses = append(clauses, fmt.Sprintf("date = $%d", len(args)))
	default:
		if filter.From != nil {
			args = append(args, *filter.From)
			clauses = append(clauses, fmt.Sprintf("date >= $%d", len(args)))
		}
		if filter.To != nil {
			args = append(args, *filter.To)
			clauses = append(clauses, fmt.Sprintf("date <= $%d", len(args)))
		}
	}
	if filter.Department != nil {
		args = append(args, *filter.Department)
		clauses = append(clauses, fmt.Sprintf("department = $%d", len(args)))
	}

	query := fmt.Sprintf(`SELECT %s FROM interviews WHERE %s ORDER BY id`,
		interviewColumns, strings.Join(clauses, " AND "))
	return query, args
}

func scanInterview(row pgx.Row) (*domain.Interview, error) {
	var (
		interview domain.Interview
		minutes   int32
	)
	if err := row.Scan(
		&interview.ID,
		&interview.Interviewee,
		&interview.Email,
		&interview.Phone,
		&interview.Date,
		&interview.Time,
		&minutes,
		&interview.Role,
		&interview.Interviewer,
		&interview.JobTitle,
		&interview.BusinessArea,
		&interview.Department,
		&interview.AdditionalNotes,
		&interview.CreatedAt,
		&interview.UpdatedAt,
	); err != nil {
		return nil, err
	}
	interview.Duration = time.Duration(minutes) * time.Minute
	return &interview, nil
}

func durationMinutes(d time.Duration) int32 {
	return int32(d / time.Minute)
}
