package domain

import "time"

// Interview is a scheduled candidate interview.
//
// Date is a calendar date held at midnight UTC. Time and Duration describe the slot
// within that day and play no part in date-window queries.
type Interview struct {
	ID              int64
	Interviewee     string
	Email           string
	Phone           string
	Date            time.Time
	Time            string
	Duration        time.Duration
	Role            string
	Interviewer     *string
	JobTitle        string
	BusinessArea    string
	Department      Department
	AdditionalNotes *string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
