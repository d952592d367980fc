package entity

import (
	"time"

	"github.com/google/uuid"
)

// NotificationType categorizes a notification
type NotificationType string

const (
	NotificationTypeAppointmentReminder  NotificationType = "appointment_reminder"
	NotificationTypeAppointmentConfirmed NotificationType = "appointment_confirmed"
	NotificationTypeAppointmentCancelled NotificationType = "appointment_cancelled"
	NotificationTypePrescriptionReady    NotificationType = "prescription_ready"
	NotificationTypeTestResults          NotificationType = "test_results"
	NotificationTypeBillingAlert         NotificationType = "billing_alert"
	NotificationTypeAccountUpdate        NotificationType = "account_update"
	NotificationTypeSystemAlert          NotificationType = "system_alert"
	NotificationTypeMessage              NotificationType = "message"
)

// NotificationChannel is the intended delivery channel. Only the data
// model is kept here; actual delivery is handled outside this service.
type NotificationChannel string

const (
	NotificationChannelEmail NotificationChannel = "email"
	NotificationChannelSMS   NotificationChannel = "sms"
	NotificationChannelInApp NotificationChannel = "in_app"
	NotificationChannelPush  NotificationChannel = "push"
)

// Notification is a user-scoped feed entry. Created by any actor,
// read/deleted only by the owning user.
type Notification struct {
	ID     int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`

	Type    NotificationType    `gorm:"type:varchar(50);not null;index" json:"type"`
	Title   string              `gorm:"type:varchar(255);not null" json:"title"`
	Message string              `gorm:"type:text;not null" json:"message"`
	Channel NotificationChannel `gorm:"type:varchar(20);not null;default:'in_app'" json:"channel"`

	RelatedEntityType string `gorm:"type:varchar(50)" json:"related_entity_type,omitempty"`
	RelatedEntityID   string `gorm:"type:varchar(50)" json:"related_entity_id,omitempty"`

	IsRead bool       `gorm:"not null;default:false;index" json:"is_read"`
	ReadAt *time.Time `json:"read_at,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime;index" json:"created_at"`

	// Relationships
	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (Notification) TableName() string {
	return "notifications"
}

// MarkRead flips the read flag and records when it happened
func (n *Notification) MarkRead(now time.Time) {
	if n.IsRead {
		return
	}
	n.IsRead = true
	n.ReadAt = &now
}

// Valid reports whether the notification type belongs to the closed set
func (t NotificationType) Valid() bool {
	switch t {
	case NotificationTypeAppointmentReminder,
		NotificationTypeAppointmentConfirmed,
		NotificationTypeAppointmentCancelled,
		NotificationTypePrescriptionReady,
		NotificationTypeTestResults,
		NotificationTypeBillingAlert,
		NotificationTypeAccountUpdate,
		NotificationTypeSystemAlert,
		NotificationTypeMessage:
		return true
	}
	return false
}

// Valid reports whether the channel belongs to the closed set
func (c NotificationChannel) Valid() bool {
	switch c {
	case NotificationChannelEmail,
		NotificationChannelSMS,
		NotificationChannelInApp,
		NotificationChannelPush:
		return true
	}
	return false
}
