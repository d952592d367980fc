package converter

import (
	"healthcare-admin-api/internal/delivery/dto"
	"healthcare-admin-api/internal/domain/entity"
)

// NotificationToResponse converts a Notification entity to its DTO
func NotificationToResponse(notification *entity.Notification) *dto.NotificationResponse {
	if notification == nil {
		return nil
	}

	return &dto.NotificationResponse{
		ID:                notification.ID,
		UserID:            notification.UserID,
		Type:              string(notification.Type),
		Title:             notification.Title,
		Message:           notification.Message,
		Channel:           string(notification.Channel),
		RelatedEntityType: notification.RelatedEntityType,
		RelatedEntityID:   notification.RelatedEntityID,
		IsRead:            notification.IsRead,
		ReadAt:            notification.ReadAt,
		CreatedAt:         notification.CreatedAt,
	}
}

// NotificationsToResponses converts a slice of Notification entities to DTOs
func NotificationsToResponses(notifications []entity.Notification) []dto.NotificationResponse {
	responses := make([]dto.NotificationResponse, len(notifications))
	for i := range notifications {
		resp := NotificationToResponse(&notifications[i])
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}
