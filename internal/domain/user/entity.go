package user

import "time"

type Role string

const (
	RoleAdmin    Role = "admin"
	RoleHR       Role = "hr"
	RoleEmployee Role = "employee"
)

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleHR, RoleEmployee:
		return true
	}
	return false
}

// CanManageAttendance reports whether the role may edit other employees'
// records and review workflow requests.
func (r Role) CanManageAttendance() bool {
	return r == RoleAdmin || r == RoleHR
}

type User struct {
	ID           string
	Email        string
	PasswordHash string
	Role         Role
	EmployeeID   *string
	GoogleID     *string
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
