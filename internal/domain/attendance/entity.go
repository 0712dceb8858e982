package attendance

import "time"

// Status is the per-day attendance outcome. Transitions between statuses
// happen only through explicit check-in/check-out/regularization actions.
type Status string

const (
	StatusPresent Status = "present"
	StatusHalfDay Status = "half-day"
	StatusAbsent  Status = "absent"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPresent, StatusHalfDay, StatusAbsent:
		return true
	}
	return false
}

// GeofenceStatus records how a check-in satisfied location policy.
type GeofenceStatus string

const (
	GeofenceOnsite GeofenceStatus = "onsite"
	GeofenceWFH    GeofenceStatus = "wfh"
)

// Location is a captured device coordinate.
type Location struct {
	Latitude   float64    `json:"latitude"`
	Longitude  float64    `json:"longitude"`
	Accuracy   *float64   `json:"accuracy,omitempty"`
	CapturedAt *time.Time `json:"captured_at,omitempty"`
}

// GeofenceInfo is the geofence outcome stored on the record.
type GeofenceInfo struct {
	Enforced       bool           `json:"enforced"`
	Status         GeofenceStatus `json:"status,omitempty"`
	OfficeID       *string        `json:"office_id,omitempty"`
	OfficeName     *string        `json:"office_name,omitempty"`
	DistanceMeters *float64       `json:"distance_meters,omitempty"`
	ValidatedAt    *time.Time     `json:"validated_at,omitempty"`
}

// Attendance is one record per (employee, calendar day). Date is stored as
// the organization timezone's midnight; CheckIn/CheckOut are absolute UTC
// timestamps. At most one record exists per employee per day, enforced by a
// composite unique index at the persistence layer.
type Attendance struct {
	ID               string
	EmployeeID       string
	Date             time.Time
	CheckIn          *time.Time
	CheckOut         *time.Time
	Status           Status
	WorkHours        *float64
	IsLate           bool
	Location         *Location
	CheckoutLocation *Location
	Geofence         *GeofenceInfo
	CreatedAt        time.Time
	UpdatedAt        time.Time

	// Joined for responses
	EmployeeName *string
	Department   *string
}
