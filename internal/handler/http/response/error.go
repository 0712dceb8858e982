package response

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/kriyahr/hrms-backend-go/internal/domain/attendance"
	"github.com/kriyahr/hrms-backend-go/internal/domain/auth"
	"github.com/kriyahr/hrms-backend-go/internal/domain/employee"
	"github.com/kriyahr/hrms-backend-go/internal/domain/holiday"
	"github.com/kriyahr/hrms-backend-go/internal/domain/leave"
	"github.com/kriyahr/hrms-backend-go/internal/domain/notification"
	"github.com/kriyahr/hrms-backend-go/internal/domain/office"
	"github.com/kriyahr/hrms-backend-go/internal/domain/payroll"
	"github.com/kriyahr/hrms-backend-go/internal/domain/regularization"
	"github.com/kriyahr/hrms-backend-go/internal/domain/settings"
	"github.com/kriyahr/hrms-backend-go/internal/domain/taskreport"
	"github.com/kriyahr/hrms-backend-go/internal/domain/user"
	"github.com/kriyahr/hrms-backend-go/internal/domain/wfh"
	"github.com/kriyahr/hrms-backend-go/internal/pkg/validator"
	"github.com/kriyahr/hrms-backend-go/internal/service/geofence"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	var violation *geofence.ViolationError
	if errors.As(err, &violation) {
		GeofenceViolation(w, violation.Error(), map[string]string{
			"office_id":       violation.OfficeID,
			"office_name":     violation.OfficeName,
			"radius_meters":   fmt.Sprintf("%.0f", violation.RadiusMeters),
			"distance_meters": fmt.Sprintf("%.2f", violation.DistanceMeters),
			"can_request_wfh": fmt.Sprintf("%t", violation.CanRequestWFH),
		})
		return
	}

	switch {
	// Auth
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, "Invalid credentials")
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid token")
	case errors.Is(err, auth.ErrTokenExpired):
		Unauthorized(w, "Token expired")
	case errors.Is(err, auth.ErrRefreshTokenRevoked):
		Unauthorized(w, "Refresh token revoked")
	case errors.Is(err, auth.ErrOAuthStateMismatch):
		Unauthorized(w, "OAuth state mismatch")
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, user.ErrUserInactive):
		Forbidden(w, "Account is inactive")

	// Employee
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrEmployeeCodeExists):
		Conflict(w, "Employee code already exists")
	case errors.Is(err, employee.ErrEmailExists):
		Conflict(w, "Email already registered")
	case errors.Is(err, employee.ErrEmployeeInactive):
		Forbidden(w, "Employee is inactive")

	// Attendance
	case errors.Is(err, attendance.ErrAlreadyCheckedIn):
		Conflict(w, "Already checked in today")
	case errors.Is(err, attendance.ErrNotCheckedIn):
		BadRequest(w, "No check-in found for today", nil)
	case errors.Is(err, attendance.ErrAlreadyCheckedOut):
		Conflict(w, "Already checked out today")
	case errors.Is(err, attendance.ErrCheckOutBeforeCheckIn):
		BadRequest(w, "Check-out cannot precede check-in", nil)
	case errors.Is(err, attendance.ErrTaskReportRequired):
		BadRequest(w, "A task report is required to check out", nil)
	case errors.Is(err, attendance.ErrAttendanceNotFound):
		NotFound(w, "Attendance record not found")
	case errors.Is(err, attendance.ErrInvalidStatus):
		BadRequest(w, "Invalid attendance status", nil)

	// Geofence / offices
	case errors.Is(err, geofence.ErrLocationRequired):
		BadRequest(w, "Location is required", nil)
	case errors.Is(err, office.ErrOfficeNotFound):
		NotFound(w, "Office not found")
	case errors.Is(err, office.ErrNoOfficeConfigured):
		InternalServerError(w, "No office is configured for geofencing")

	// Settings
	case errors.Is(err, settings.ErrSettingsNotFound):
		NotFound(w, "Settings not found")
	case errors.Is(err, settings.ErrInvalidScope):
		BadRequest(w, "Invalid settings scope", nil)

	// Leave
	case errors.Is(err, leave.ErrLeaveNotFound):
		NotFound(w, "Leave request not found")
	case errors.Is(err, leave.ErrLeaveOverlap):
		Conflict(w, "An overlapping leave request already exists")
	case errors.Is(err, leave.ErrLeaveNotPending):
		Conflict(w, "Leave request already reviewed")
	case errors.Is(err, leave.ErrLeaveNotCancelable):
		Conflict(w, "Leave request can no longer be canceled")

	// WFH
	case errors.Is(err, wfh.ErrRequestNotFound):
		NotFound(w, "WFH request not found")
	case errors.Is(err, wfh.ErrRequestExists):
		Conflict(w, "A WFH request already exists for this date")
	case errors.Is(err, wfh.ErrRequestNotPending):
		Conflict(w, "WFH request already reviewed")

	// Regularization
	case errors.Is(err, regularization.ErrRequestNotFound):
		NotFound(w, "Regularization request not found")
	case errors.Is(err, regularization.ErrRequestExists):
		Conflict(w, "A pending regularization already exists for this date")
	case errors.Is(err, regularization.ErrRequestNotPending):
		Conflict(w, "Regularization request already reviewed")
	case errors.Is(err, regularization.ErrNothingRequested):
		BadRequest(w, "No corrected times were provided", nil)

	// Holidays
	case errors.Is(err, holiday.ErrHolidayNotFound):
		NotFound(w, "Holiday not found")
	case errors.Is(err, holiday.ErrHolidayExists):
		Conflict(w, "A holiday already exists on this date")

	// Task reports
	case errors.Is(err, taskreport.ErrReportNotFound):
		NotFound(w, "Task report not found")

	// Payroll
	case errors.Is(err, payroll.ErrSlipNotFound):
		NotFound(w, "Payslip not found")
	case errors.Is(err, payroll.ErrSlipExists):
		Conflict(w, "A payslip already exists for this month")
	case errors.Is(err, payroll.ErrNoBaseSalary):
		BadRequest(w, "Employee has no base salary configured", nil)
	case errors.Is(err, payroll.ErrFutureMonth):
		BadRequest(w, "Cannot generate a payslip for a future month", nil)

	// Notifications
	case errors.Is(err, notification.ErrNotificationNotFound):
		NotFound(w, "Notification not found")

	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
