package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/kriyahr/hrms-backend-go/internal/domain/regularization"
	"github.com/kriyahr/hrms-backend-go/internal/handler/http/middleware"
	"github.com/kriyahr/hrms-backend-go/internal/handler/http/response"
	regularizationsvc "github.com/kriyahr/hrms-backend-go/internal/service/regularization"
)

type RegularizationHandler interface {
	Apply(w http.ResponseWriter, r *http.Request)
	MyList(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Review(w http.ResponseWriter, r *http.Request)
}

type regularizationHandlerImpl struct {
	regularizationService *regularizationsvc.Service
}

func NewRegularizationHandler(regularizationService *regularizationsvc.Service) RegularizationHandler {
	return &regularizationHandlerImpl{regularizationService: regularizationService}
}

func (h *regularizationHandlerImpl) Apply(w http.ResponseWriter, r *http.Request) {
	employeeID, ok := employeeIdentity(w, r)
	if !ok {
		return
	}

	var req regularization.ApplyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.regularizationService.Apply(r.Context(), employeeID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Regularization request submitted", result)
}

func (h *regularizationHandlerImpl) MyList(w http.ResponseWriter, r *http.Request) {
	employeeID, ok := employeeIdentity(w, r)
	if !ok {
		return
	}

	filter := regularization.Filter{
		EmployeeID: &employeeID,
		Status:     queryString(r, "status"),
		Page:       queryInt(r, "page"),
		Limit:      queryInt(r, "limit"),
	}
	h.list(w, r, filter)
}

func (h *regularizationHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	filter := regularization.Filter{
		EmployeeID: queryString(r, "employee_id"),
		Status:     queryString(r, "status"),
		Page:       queryInt(r, "page"),
		Limit:      queryInt(r, "limit"),
	}
	h.list(w, r, filter)
}

func (h *regularizationHandlerImpl) list(w http.ResponseWriter, r *http.Request, filter regularization.Filter) {
	result, err := h.regularizationService.List(r.Context(), filter)
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

func (h *regularizationHandlerImpl) Review(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	var req regularization.ReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	result, err := h.regularizationService.Review(r.Context(), identity.UserID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Regularization request reviewed", result)
}
