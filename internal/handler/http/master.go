package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/kriyahr/hrms-backend-go/internal/domain/holiday"
	"github.com/kriyahr/hrms-backend-go/internal/domain/office"
	"github.com/kriyahr/hrms-backend-go/internal/domain/settings"
	"github.com/kriyahr/hrms-backend-go/internal/handler/http/response"
	mastersvc "github.com/kriyahr/hrms-backend-go/internal/service/master"
	settingssvc "github.com/kriyahr/hrms-backend-go/internal/service/settings"
)

type MasterHandler interface {
	CreateOffice(w http.ResponseWriter, r *http.Request)
	ListOffices(w http.ResponseWriter, r *http.Request)
	UpdateOffice(w http.ResponseWriter, r *http.Request)
	DeleteOffice(w http.ResponseWriter, r *http.Request)

	CreateHoliday(w http.ResponseWriter, r *http.Request)
	ListHolidays(w http.ResponseWriter, r *http.Request)
	DeleteHoliday(w http.ResponseWriter, r *http.Request)

	GetEffectiveSettings(w http.ResponseWriter, r *http.Request)
	GetSettings(w http.ResponseWriter, r *http.Request)
	UpdateSettings(w http.ResponseWriter, r *http.Request)
}

type masterHandlerImpl struct {
	masterService   *mastersvc.Service
	settingsService *settingssvc.Service
}

func NewMasterHandler(masterService *mastersvc.Service, settingsService *settingssvc.Service) MasterHandler {
	return &masterHandlerImpl{masterService: masterService, settingsService: settingsService}
}

func (h *masterHandlerImpl) CreateOffice(w http.ResponseWriter, r *http.Request) {
	var req office.CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.masterService.CreateOffice(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Office created", result)
}

func (h *masterHandlerImpl) ListOffices(w http.ResponseWriter, r *http.Request) {
	result, err := h.masterService.ListOffices(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

func (h *masterHandlerImpl) UpdateOffice(w http.ResponseWriter, r *http.Request) {
	var req office.UpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	result, err := h.masterService.UpdateOffice(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Office updated", result)
}

func (h *masterHandlerImpl) DeleteOffice(w http.ResponseWriter, r *http.Request) {
	if err := h.masterService.DeleteOffice(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Office deleted", nil)
}

func (h *masterHandlerImpl) CreateHoliday(w http.ResponseWriter, r *http.Request) {
	var req holiday.CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.masterService.CreateHoliday(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Holiday created", result)
}

func (h *masterHandlerImpl) ListHolidays(w http.ResponseWriter, r *http.Request) {
	year, err := strconv.Atoi(r.URL.Query().Get("year"))
	if err != nil || year == 0 {
		year = time.Now().Year()
	}

	result, err := h.masterService.ListHolidays(r.Context(), year)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

func (h *masterHandlerImpl) DeleteHoliday(w http.ResponseWriter, r *http.Request) {
	if err := h.masterService.DeleteHoliday(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Holiday deleted", nil)
}

func (h *masterHandlerImpl) GetEffectiveSettings(w http.ResponseWriter, r *http.Request) {
	department := queryString(r, "department")
	eff := h.settingsService.GetEffective(r.Context(), department)
	response.Success(w, settings.EffectiveSettingsResponse{
		Department: department,
		Effective:  eff,
	})
}

func (h *masterHandlerImpl) GetSettings(w http.ResponseWriter, r *http.Request) {
	scope, department := settingsScope(r)
	doc, err := h.settingsService.GetDocument(r.Context(), scope, department)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, toSettingsResponse(doc))
}

func (h *masterHandlerImpl) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var req settings.UpdateSettingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	scope, department := settingsScope(r)
	doc, err := h.settingsService.Update(r.Context(), scope, department, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Settings updated", toSettingsResponse(doc))
}

// settingsScope resolves the target scope from the URL: the department
// path segment wins, then the department query parameter, else global.
func settingsScope(r *http.Request) (settings.Scope, *string) {
	if department := chi.URLParam(r, "department"); department != "" {
		return settings.ScopeDepartment, &department
	}
	if department := queryString(r, "department"); department != nil {
		return settings.ScopeDepartment, department
	}
	return settings.ScopeGlobal, nil
}

func toSettingsResponse(doc settings.Document) settings.SettingsResponse {
	return settings.SettingsResponse{
		Scope:      doc.Scope,
		Department: doc.Department,
		Attendance: doc.Attendance,
		Geofence:   doc.Geofence,
		UpdatedAt:  doc.UpdatedAt.Format(time.RFC3339),
	}
}
