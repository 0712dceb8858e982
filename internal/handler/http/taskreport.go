package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/kriyahr/hrms-backend-go/internal/domain/taskreport"
	"github.com/kriyahr/hrms-backend-go/internal/handler/http/response"
	taskreportsvc "github.com/kriyahr/hrms-backend-go/internal/service/taskreport"
)

type TaskReportHandler interface {
	MyReports(w http.ResponseWriter, r *http.Request)
	ForAttendance(w http.ResponseWriter, r *http.Request)
}

type taskReportHandlerImpl struct {
	taskReportService *taskreportsvc.Service
}

func NewTaskReportHandler(taskReportService *taskreportsvc.Service) TaskReportHandler {
	return &taskReportHandlerImpl{taskReportService: taskReportService}
}

type taskReportResponse struct {
	ID           string   `json:"id"`
	AttendanceID string   `json:"attendance_id"`
	Date         string   `json:"date"`
	Tasks        []string `json:"tasks"`
	CreatedAt    string   `json:"created_at"`
}

func (h *taskReportHandlerImpl) MyReports(w http.ResponseWriter, r *http.Request) {
	employeeID, ok := employeeIdentity(w, r)
	if !ok {
		return
	}

	from := r.URL.Query().Get("from")
	to := r.URL.Query().Get("to")
	if from == "" || to == "" {
		response.BadRequest(w, "Query parameters 'from' and 'to' are required", nil)
		return
	}

	reports, err := h.taskReportService.ListRange(r.Context(), employeeID, from, to)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	out := make([]taskReportResponse, 0, len(reports))
	for _, report := range reports {
		out = append(out, toTaskReportResponse(report))
	}
	response.Success(w, out)
}

func (h *taskReportHandlerImpl) ForAttendance(w http.ResponseWriter, r *http.Request) {
	report, err := h.taskReportService.GetForAttendance(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, toTaskReportResponse(report))
}

func toTaskReportResponse(report taskreport.Report) taskReportResponse {
	return taskReportResponse{
		ID:           report.ID,
		AttendanceID: report.AttendanceID,
		Date:         report.Date.Format("2006-01-02"),
		Tasks:        report.Tasks,
		CreatedAt:    report.CreatedAt.Format(time.RFC3339),
	}
}
