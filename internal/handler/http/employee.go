package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/kriyahr/hrms-backend-go/internal/domain/employee"
	"github.com/kriyahr/hrms-backend-go/internal/handler/http/response"
	employeesvc "github.com/kriyahr/hrms-backend-go/internal/service/employee"
)

type EmployeeHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Search(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
}

type employeeHandlerImpl struct {
	employeeService *employeesvc.Service
}

func NewEmployeeHandler(employeeService *employeesvc.Service) EmployeeHandler {
	return &employeeHandlerImpl{employeeService: employeeService}
}

func (h *employeeHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req employee.CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.employeeService.Create(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Employee created", result)
}

func (h *employeeHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	result, err := h.employeeService.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

func (h *employeeHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	filter := employee.Filter{
		Page:  queryInt(r, "page"),
		Limit: queryInt(r, "limit"),
	}
	filter.Department = queryString(r, "department")
	filter.Search = queryString(r, "search")
	if v := r.URL.Query().Get("is_active"); v != "" {
		active := v == "true"
		filter.IsActive = &active
	}

	result, err := h.employeeService.List(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMeta(w, result.Employees, &response.Meta{
		Page:       result.Page,
		Limit:      result.Limit,
		TotalItems: result.TotalCount,
		TotalPages: result.TotalPages,
	})
}

func (h *employeeHandlerImpl) Search(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	if name == "" {
		response.BadRequest(w, "Query parameter 'name' is required", nil)
		return
	}

	result, err := h.employeeService.Search(r.Context(), name)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

func (h *employeeHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	var req employee.UpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	result, err := h.employeeService.Update(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Employee updated", result)
}
