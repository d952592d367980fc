package repository

import (
	"healthcare-admin-api/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type NotificationRepository interface {
	Create(db *gorm.DB, notification *entity.Notification) error
	FindByID(db *gorm.DB, id int64) (*entity.Notification, error)
	FindByUserID(db *gorm.DB, userID uuid.UUID, unreadOnly bool, offset, limit int) ([]entity.Notification, error)
	CountUnread(db *gorm.DB, userID uuid.UUID) (int64, error)
	Update(db *gorm.DB, notification *entity.Notification) error
	MarkAllRead(db *gorm.DB, userID uuid.UUID) (int64, error)
	Delete(db *gorm.DB, id int64) error
}
