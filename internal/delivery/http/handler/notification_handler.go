package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"healthcare-admin-api/internal/delivery/dto"
	"healthcare-admin-api/internal/usecase"
	"healthcare-admin-api/pkg/response"
	"healthcare-admin-api/pkg/validator"

	"github.com/gorilla/mux"
)

type NotificationHandler struct {
	notificationUsecase usecase.NotificationUsecase
	validator           *validator.CustomValidator
}

func NewNotificationHandler(notificationUsecase usecase.NotificationUsecase, validator *validator.CustomValidator) *NotificationHandler {
	return &NotificationHandler{
		notificationUsecase: notificationUsecase,
		validator:           validator,
	}
}

func (h *NotificationHandler) CreateNotification(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateNotificationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	notification, err := h.notificationUsecase.Create(r.Context(), &req)
	if err != nil {
		switch err {
		case usecase.ErrUserNotFound:
			response.NotFound(w, "User not found")
		default:
			response.InternalServerError(w, "Failed to create notification")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Notification created successfully", notification)
}

func (h *NotificationHandler) GetMyNotifications(w http.ResponseWriter, r *http.Request) {
	offset, limit := parsePagination(r)
	unreadOnly := r.URL.Query().Get("unread") == "true"

	notifications, err := h.notificationUsecase.GetMyNotifications(r.Context(), unreadOnly, offset, limit)
	if err != nil {
		response.InternalServerError(w, "Failed to get notifications")
		return
	}

	response.Success(w, http.StatusOK, "Notifications retrieved successfully", notifications)
}

func (h *NotificationHandler) GetUnreadCount(w http.ResponseWriter, r *http.Request) {
	count, err := h.notificationUsecase.GetUnreadCount(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to count unread notifications")
		return
	}

	response.Success(w, http.StatusOK, "Unread count retrieved successfully", count)
}

func (h *NotificationHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	id, err := parseNotificationID(r)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid notification ID", nil)
		return
	}

	notification, err := h.notificationUsecase.MarkRead(r.Context(), id)
	if err != nil {
		h.writeNotificationError(w, err, "Failed to mark notification read")
		return
	}

	response.Success(w, http.StatusOK, "Notification marked as read", notification)
}

func (h *NotificationHandler) MarkAllRead(w http.ResponseWriter, r *http.Request) {
	affected, err := h.notificationUsecase.MarkAllRead(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to mark notifications read")
		return
	}

	response.Success(w, http.StatusOK, "All notifications marked as read", map[string]int64{"updated": affected})
}

func (h *NotificationHandler) DeleteNotification(w http.ResponseWriter, r *http.Request) {
	id, err := parseNotificationID(r)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid notification ID", nil)
		return
	}

	if err := h.notificationUsecase.Delete(r.Context(), id); err != nil {
		h.writeNotificationError(w, err, "Failed to delete notification")
		return
	}

	response.Success(w, http.StatusOK, "Notification deleted successfully", nil)
}

func (h *NotificationHandler) writeNotificationError(w http.ResponseWriter, err error, fallback string) {
	switch err {
	case usecase.ErrNotificationNotFound:
		response.NotFound(w, "Notification not found")
	case usecase.ErrNotificationNotOwned:
		response.Forbidden(w, "Notification does not belong to you")
	default:
		response.InternalServerError(w, fallback)
	}
}

func parseNotificationID(r *http.Request) (int64, error) {
	return strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
}
