package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/kriyahr/hrms-backend-go/internal/handler/http/middleware"
	"github.com/kriyahr/hrms-backend-go/internal/handler/http/response"
	notificationsvc "github.com/kriyahr/hrms-backend-go/internal/service/notification"
)

type NotificationHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	MarkRead(w http.ResponseWriter, r *http.Request)
	MarkAllRead(w http.ResponseWriter, r *http.Request)
}

type notificationHandlerImpl struct {
	notificationService *notificationsvc.Service
}

func NewNotificationHandler(notificationService *notificationsvc.Service) NotificationHandler {
	return &notificationHandlerImpl{notificationService: notificationService}
}

func (h *notificationHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	unreadOnly := r.URL.Query().Get("unread") == "true"
	result, err := h.notificationService.List(r.Context(), identity.UserID, unreadOnly, queryInt(r, "limit"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

func (h *notificationHandlerImpl) MarkRead(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	if err := h.notificationService.MarkRead(r.Context(), identity.UserID, chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Notification marked as read", nil)
}

func (h *notificationHandlerImpl) MarkAllRead(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	if err := h.notificationService.MarkAllRead(r.Context(), identity.UserID); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "All notifications marked as read", nil)
}
