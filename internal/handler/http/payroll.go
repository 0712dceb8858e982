package http

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/kriyahr/hrms-backend-go/internal/domain/payroll"
	"github.com/kriyahr/hrms-backend-go/internal/handler/http/middleware"
	"github.com/kriyahr/hrms-backend-go/internal/handler/http/response"
	payrollsvc "github.com/kriyahr/hrms-backend-go/internal/service/payroll"
)

type PayrollHandler interface {
	Generate(w http.ResponseWriter, r *http.Request)
	MySlips(w http.ResponseWriter, r *http.Request)
	EmployeeSlips(w http.ResponseWriter, r *http.Request)
	Download(w http.ResponseWriter, r *http.Request)
}

type payrollHandlerImpl struct {
	payrollService *payrollsvc.Service
}

func NewPayrollHandler(payrollService *payrollsvc.Service) PayrollHandler {
	return &payrollHandlerImpl{payrollService: payrollService}
}

func (h *payrollHandlerImpl) Generate(w http.ResponseWriter, r *http.Request) {
	var req payroll.GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.payrollService.Generate(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Payslip generated", result)
}

func (h *payrollHandlerImpl) MySlips(w http.ResponseWriter, r *http.Request) {
	employeeID, ok := employeeIdentity(w, r)
	if !ok {
		return
	}

	result, err := h.payrollService.ListByEmployee(r.Context(), employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

func (h *payrollHandlerImpl) EmployeeSlips(w http.ResponseWriter, r *http.Request) {
	result, err := h.payrollService.ListByEmployee(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

// Download streams the stored PDF. Employees may fetch only their own
// slips; managers may fetch any.
func (h *payrollHandlerImpl) Download(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	slip, err := h.payrollService.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	if !identity.Role.CanManageAttendance() {
		if identity.EmployeeID == nil || *identity.EmployeeID != slip.EmployeeID {
			response.Forbidden(w, "Insufficient permissions")
			return
		}
	}

	file, err := h.payrollService.Download(r.Context(), slip.ID)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	defer file.Close()

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=payslip.pdf")
	_, _ = io.Copy(w, file)
}
