package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type CreateNotificationRequest struct {
	UserID            uuid.UUID `json:"user_id" validate:"required"`
	Type              string    `json:"type" validate:"required,oneof=appointment_reminder appointment_confirmed appointment_cancelled prescription_ready test_results billing_alert account_update system_alert message"`
	Title             string    `json:"title" validate:"required,max=255"`
	Message           string    `json:"message" validate:"required"`
	Channel           string    `json:"channel" validate:"omitempty,oneof=email sms in_app push"`
	RelatedEntityType string    `json:"related_entity_type" validate:"omitempty,max=50"`
	RelatedEntityID   string    `json:"related_entity_id" validate:"omitempty,max=50"`
}

// Response DTOs

type NotificationResponse struct {
	ID                int64      `json:"id"`
	UserID            uuid.UUID  `json:"user_id"`
	Type              string     `json:"type"`
	Title             string     `json:"title"`
	Message           string     `json:"message"`
	Channel           string     `json:"channel"`
	RelatedEntityType string     `json:"related_entity_type,omitempty"`
	RelatedEntityID   string     `json:"related_entity_id,omitempty"`
	IsRead            bool       `json:"is_read"`
	ReadAt            *time.Time `json:"read_at,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
}

type NotificationListResponse struct {
	Notifications []NotificationResponse `json:"notifications"`
	Total         int                    `json:"total"`
}

type UnreadCountResponse struct {
	UnreadCount int64 `json:"unread_count"`
}
