package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/kriyahr/hrms-backend-go/internal/domain/attendance"
	"github.com/kriyahr/hrms-backend-go/internal/handler/http/middleware"
	"github.com/kriyahr/hrms-backend-go/internal/handler/http/response"
	attendancesvc "github.com/kriyahr/hrms-backend-go/internal/service/attendance"
)

type AttendanceHandler interface {
	CheckIn(w http.ResponseWriter, r *http.Request)
	CheckOut(w http.ResponseWriter, r *http.Request)
	GeofenceStatus(w http.ResponseWriter, r *http.Request)
	Today(w http.ResponseWriter, r *http.Request)
	MyList(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	MyReport(w http.ResponseWriter, r *http.Request)
	EmployeeReport(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService *attendancesvc.Service
}

func NewAttendanceHandler(attendanceService *attendancesvc.Service) AttendanceHandler {
	return &attendanceHandlerImpl{attendanceService: attendanceService}
}

// employeeIdentity resolves the caller's employee profile, failing for
// accounts (e.g. pure admin users) that have none.
func employeeIdentity(w http.ResponseWriter, r *http.Request) (string, bool) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return "", false
	}
	if identity.EmployeeID == nil {
		response.Forbidden(w, "No employee profile linked to this account")
		return "", false
	}
	return *identity.EmployeeID, true
}

func (h *attendanceHandlerImpl) CheckIn(w http.ResponseWriter, r *http.Request) {
	employeeID, ok := employeeIdentity(w, r)
	if !ok {
		return
	}

	var req attendance.CheckInRequest
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			response.BadRequest(w, "Invalid request format", nil)
			return
		}
	}

	result, err := h.attendanceService.CheckIn(r.Context(), employeeID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Check-in successful", result)
}

func (h *attendanceHandlerImpl) CheckOut(w http.ResponseWriter, r *http.Request) {
	employeeID, ok := employeeIdentity(w, r)
	if !ok {
		return
	}

	var req attendance.CheckOutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.attendanceService.CheckOut(r.Context(), employeeID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Check-out successful", result)
}

func (h *attendanceHandlerImpl) GeofenceStatus(w http.ResponseWriter, r *http.Request) {
	employeeID, ok := employeeIdentity(w, r)
	if !ok {
		return
	}

	lat := queryFloat(r, "lat")
	lng := queryFloat(r, "lng")

	result, err := h.attendanceService.GeofenceStatus(r.Context(), employeeID, lat, lng)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

func (h *attendanceHandlerImpl) Today(w http.ResponseWriter, r *http.Request) {
	employeeID, ok := employeeIdentity(w, r)
	if !ok {
		return
	}

	result, err := h.attendanceService.Today(r.Context(), employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

func (h *attendanceHandlerImpl) MyList(w http.ResponseWriter, r *http.Request) {
	employeeID, ok := employeeIdentity(w, r)
	if !ok {
		return
	}

	filter := attendance.Filter{
		Page:  queryInt(r, "page"),
		Limit: queryInt(r, "limit"),
	}
	filter.EmployeeID = &employeeID
	filter.Date = queryString(r, "date")
	filter.StartDate = queryString(r, "start_date")
	filter.EndDate = queryString(r, "end_date")
	filter.Status = queryString(r, "status")

	result, err := h.attendanceService.List(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMeta(w, result.Attendances, &response.Meta{
		Page:       result.Page,
		Limit:      result.Limit,
		TotalItems: result.TotalCount,
		TotalPages: result.TotalPages,
	})
}

func (h *attendanceHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	filter := attendance.Filter{
		Page:  queryInt(r, "page"),
		Limit: queryInt(r, "limit"),
	}
	filter.EmployeeID = queryString(r, "employee_id")
	filter.EmployeeName = queryString(r, "employee_name")
	filter.Department = queryString(r, "department")
	filter.Date = queryString(r, "date")
	filter.StartDate = queryString(r, "start_date")
	filter.EndDate = queryString(r, "end_date")
	filter.Status = queryString(r, "status")

	result, err := h.attendanceService.List(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMeta(w, result.Attendances, &response.Meta{
		Page:       result.Page,
		Limit:      result.Limit,
		TotalItems: result.TotalCount,
		TotalPages: result.TotalPages,
	})
}

func (h *attendanceHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	var req attendance.UpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	result, err := h.attendanceService.Update(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Attendance updated", result)
}

func (h *attendanceHandlerImpl) MyReport(w http.ResponseWriter, r *http.Request) {
	employeeID, ok := employeeIdentity(w, r)
	if !ok {
		return
	}
	h.report(w, r, employeeID)
}

func (h *attendanceHandlerImpl) EmployeeReport(w http.ResponseWriter, r *http.Request) {
	h.report(w, r, chi.URLParam(r, "id"))
}

func (h *attendanceHandlerImpl) report(w http.ResponseWriter, r *http.Request, employeeID string) {
	from := r.URL.Query().Get("from")
	to := r.URL.Query().Get("to")
	if from == "" || to == "" {
		response.BadRequest(w, "Query parameters 'from' and 'to' are required", nil)
		return
	}

	result, err := h.attendanceService.RangeReport(r.Context(), employeeID, from, to)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

func queryString(r *http.Request, key string) *string {
	if v := r.URL.Query().Get(key); v != "" {
		return &v
	}
	return nil
}

func queryInt(r *http.Request, key string) int {
	v, _ := strconv.Atoi(r.URL.Query().Get(key))
	return v
}

func queryFloat(r *http.Request, key string) *float64 {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil
	}
	return &v
}
