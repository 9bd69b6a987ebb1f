package domain

import "time"

// Visit represents one recorded working-directory change
type Visit struct {
	Path      string
	VisitedAt time.Time
}
