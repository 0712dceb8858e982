package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/kriyahr/hrms-backend-go/internal/domain/leave"
	"github.com/kriyahr/hrms-backend-go/internal/handler/http/middleware"
	"github.com/kriyahr/hrms-backend-go/internal/handler/http/response"
	leavesvc "github.com/kriyahr/hrms-backend-go/internal/service/leave"
)

type LeaveHandler interface {
	Apply(w http.ResponseWriter, r *http.Request)
	MyList(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Review(w http.ResponseWriter, r *http.Request)
	Cancel(w http.ResponseWriter, r *http.Request)
}

type leaveHandlerImpl struct {
	leaveService *leavesvc.Service
}

func NewLeaveHandler(leaveService *leavesvc.Service) LeaveHandler {
	return &leaveHandlerImpl{leaveService: leaveService}
}

func (h *leaveHandlerImpl) Apply(w http.ResponseWriter, r *http.Request) {
	employeeID, ok := employeeIdentity(w, r)
	if !ok {
		return
	}

	var req leave.ApplyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.leaveService.Apply(r.Context(), employeeID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Leave request submitted", result)
}

func (h *leaveHandlerImpl) MyList(w http.ResponseWriter, r *http.Request) {
	employeeID, ok := employeeIdentity(w, r)
	if !ok {
		return
	}

	filter := leave.Filter{
		EmployeeID: &employeeID,
		Status:     queryString(r, "status"),
		Page:       queryInt(r, "page"),
		Limit:      queryInt(r, "limit"),
	}
	h.list(w, r, filter)
}

func (h *leaveHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	filter := leave.Filter{
		EmployeeID: queryString(r, "employee_id"),
		Status:     queryString(r, "status"),
		Page:       queryInt(r, "page"),
		Limit:      queryInt(r, "limit"),
	}
	h.list(w, r, filter)
}

func (h *leaveHandlerImpl) list(w http.ResponseWriter, r *http.Request, filter leave.Filter) {
	result, err := h.leaveService.List(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMeta(w, result.Leaves, &response.Meta{
		Page:       result.Page,
		Limit:      result.Limit,
		TotalItems: result.TotalCount,
		TotalPages: result.TotalPages,
	})
}

func (h *leaveHandlerImpl) Review(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	var req leave.ReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	result, err := h.leaveService.Review(r.Context(), identity.UserID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Leave request reviewed", result)
}

func (h *leaveHandlerImpl) Cancel(w http.ResponseWriter, r *http.Request) {
	employeeID, ok := employeeIdentity(w, r)
	if !ok {
		return
	}

	if err := h.leaveService.Cancel(r.Context(), employeeID, chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Leave request canceled", nil)
}
