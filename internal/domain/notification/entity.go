package notification

import "time"

type Kind string

const (
	KindLeaveRequested          Kind = "leave_requested"
	KindLeaveReviewed           Kind = "leave_reviewed"
	KindWFHRequested            Kind = "wfh_requested"
	KindWFHReviewed             Kind = "wfh_reviewed"
	KindRegularizationRequested Kind = "regularization_requested"
	KindRegularizationReviewed  Kind = "regularization_reviewed"
	KindMissingCheckout         Kind = "missing_checkout"
	KindPayslipReady            Kind = "payslip_ready"
)

type Notification struct {
	ID        string
	UserID    string
	Kind      Kind
	Title     string
	Body      string
	IsRead    bool
	CreatedAt time.Time
}
