package dto

import "time"

// JobTitleRequest payload.
type JobTitleRequest struct {
	Title string `json:"title"`
}

// JobTitleResponse represents a catalog entry.
type JobTitleResponse struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
}
