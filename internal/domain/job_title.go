package domain

import "time"

// JobTitle is an entry in the catalog of positions interviews are held for.
type JobTitle struct {
	ID        int64
	Title     string
	CreatedAt time.Time
}
