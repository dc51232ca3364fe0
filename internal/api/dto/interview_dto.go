package dto

import (
	"time"

	"github.com/spec-kit/interview-service/internal/domain"
)

// InterviewRequest is the create and update payload.
type InterviewRequest struct {
	Interviewee     string  `json:"interviewee"`
	Email           string  `json:"email"`
	Phone           string  `json:"phone"`
	Date            string  `json:"date"`
	Time            string  `json:"time"`
	Duration        int     `json:"duration"`
	Role            string  `json:"role"`
	Interviewer     *string `json:"interviewer"`
	JobTitle        string  `json:"job_title"`
	BusinessArea    string  `json:"business_area"`
	Department      string  `json:"department"`
	AdditionalNotes *string `json:"additional_notes"`
}

// InterviewResponse represents a stored interview. Duration is in minutes.
type InterviewResponse struct {
	ID              int64             `json:"id"`
	Interviewee     string            `json:"interviewee"`
	Email           string            `json:"email"`
	Phone           string            `json:"phone"`
	Date            string            `json:"date"`
	Time            string            `json:"time"`
	Duration        int               `json:"duration"`
	Role            string            `json:"role"`
	Interviewer     *string           `json:"interviewer"`
	JobTitle        string            `json:"job_title"`
	BusinessArea    string            `json:"business_area"`
	Department      domain.Department `json:"department"`
	AdditionalNotes *string           `json:"additional_notes"`
	CreatedAt       time.Time         `json:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at"`
}

// NewInterviewResponse maps a domain interview.
func NewInterviewResponse(i *domain.Interview) InterviewResponse {
	return InterviewResponse{
		ID:              i.ID,
		Interviewee:     i.Interviewee,
		Email:           i.Email,
		Phone:           i.Phone,
		Date:            i.Date.Format("2006-01-02"),
		Time:            i.Time,
		Duration:        int(i.Duration / time.Minute),
		Role:            i.Role,
		Interviewer:     i.Interviewer,
		JobTitle:        i.JobTitle,
		BusinessArea:    i.BusinessArea,
		Department:      i.Department,
		AdditionalNotes: i.AdditionalNotes,
		CreatedAt:       i.CreatedAt,
		UpdatedAt:       i.UpdatedAt,
	}
}

// NewInterviewList maps a slice, preserving order.
func NewInterviewList(items []domain.Interview) []InterviewResponse {
	out := make([]InterviewResponse, 0, len(items))
	for i := range items {
		out = append(out, NewInterviewResponse(&items[i]))
	}
	return out
}
