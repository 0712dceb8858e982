package office

import "time"

// Office is a geofenced work location. RadiusMeters of zero means the
// office falls back to the configured default radius.
type Office struct {
	ID           string
	Name         string
	Address      string
	Latitude     float64
	Longitude    float64
	RadiusMeters float64
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
