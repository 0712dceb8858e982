package holiday

import "time"

// Holiday is a single calendar date; the date is its identity and is unique.
type Holiday struct {
	ID         string
	Date       time.Time // day boundary in the organization timezone
	Title      string
	IsOptional bool
	CreatedAt  time.Time
}
