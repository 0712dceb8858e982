package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/kriyahr/hrms-backend-go/internal/domain/wfh"
	"github.com/kriyahr/hrms-backend-go/internal/handler/http/middleware"
	"github.com/kriyahr/hrms-backend-go/internal/handler/http/response"
	wfhsvc "github.com/kriyahr/hrms-backend-go/internal/service/wfh"
)

type WFHHandler interface {
	Apply(w http.ResponseWriter, r *http.Request)
	MyList(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Review(w http.ResponseWriter, r *http.Request)
}

type wfhHandlerImpl struct {
	wfhService *wfhsvc.Service
}

func NewWFHHandler(wfhService *wfhsvc.Service) WFHHandler {
	return &wfhHandlerImpl{wfhService: wfhService}
}

func (h *wfhHandlerImpl) Apply(w http.ResponseWriter, r *http.Request) {
	employeeID, ok := employeeIdentity(w, r)
	if !ok {
		return
	}

	var req wfh.ApplyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.wfhService.Apply(r.Context(), employeeID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "WFH request submitted", result)
}

func (h *wfhHandlerImpl) MyList(w http.ResponseWriter, r *http.Request) {
	employeeID, ok := employeeIdentity(w, r)
	if !ok {
		return
	}

	filter := wfh.Filter{
		EmployeeID: &employeeID,
		Status:     queryString(r, "status"),
		Page:       queryInt(r, "page"),
		Limit:      queryInt(r, "limit"),
	}
	h.list(w, r, filter)
}

func (h *wfhHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	filter := wfh.Filter{
		EmployeeID: queryString(r, "employee_id"),
		Status:     queryString(r, "status"),
		Page:       queryInt(r, "page"),
		Limit:      queryInt(r, "limit"),
	}
	h.list(w, r, filter)
}

func (h *wfhHandlerImpl) list(w http.ResponseWriter, r *http.Request, filter wfh.Filter) {
	result, err := h.wfhService.List(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMeta(w, result.Requests, &response.Meta{
		Page:       result.Page,
		Limit:      result.Limit,
		TotalItems: result.TotalCount,
		TotalPages: result.TotalPages,
	})
}

func (h *wfhHandlerImpl) Review(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	var req wfh.ReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	result, err := h.wfhService.Review(r.Context(), identity.UserID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "WFH request reviewed", result)
}
