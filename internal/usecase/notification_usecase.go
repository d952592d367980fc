package usecase

import (
	"context"
	"errors"
	"time"

	"healthcare-admin-api/internal/converter"
	"healthcare-admin-api/internal/delivery/dto"
	"healthcare-admin-api/internal/delivery/http/middleware"
	"healthcare-admin-api/internal/domain/entity"
	"healthcare-admin-api/internal/domain/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrNotificationNotFound = errors.New("notification not found")
	ErrNotificationNotOwned = errors.New("notification does not belong to you")
)

type NotificationUsecase interface {
	Create(ctx context.Context, req *dto.CreateNotificationRequest) (*dto.NotificationResponse, error)
	GetMyNotifications(ctx context.Context, unreadOnly bool, offset, limit int) (*dto.NotificationListResponse, error)
	GetUnreadCount(ctx context.Context) (*dto.UnreadCountResponse, error)
	MarkRead(ctx context.Context, id int64) (*dto.NotificationResponse, error)
	MarkAllRead(ctx context.Context) (int64, error)
	Delete(ctx context.Context, id int64) error
}

type notificationUsecase struct {
	db               *gorm.DB
	log              *logrus.Logger
	notificationRepo repository.NotificationRepository
	userRepo         repository.UserRepository
}

func NewNotificationUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	notificationRepo repository.NotificationRepository,
	userRepo repository.UserRepository,
) NotificationUsecase {
	return &notificationUsecase{
		db:               db,
		log:              log,
		notificationRepo: notificationRepo,
		userRepo:         userRepo,
	}
}

// Create inserts a notification for any user, admin only (enforced at the route)
func (u *notificationUsecase) Create(ctx context.Context, req *dto.CreateNotificationRequest) (*dto.NotificationResponse, error) {
	user, err := u.userRepo.FindByID(u.db.WithContext(ctx), req.UserID)
	if err != nil {
		u.log.Warnf("Failed to find user %s: %+v", req.UserID, err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	channel := entity.NotificationChannel(req.Channel)
	if req.Channel == "" {
		channel = entity.NotificationChannelInApp
	}

	notification := &entity.Notification{
		UserID:            req.UserID,
		Type:              entity.NotificationType(req.Type),
		Title:             req.Title,
		Message:           req.Message,
		Channel:           channel,
		RelatedEntityType: req.RelatedEntityType,
		RelatedEntityID:   req.RelatedEntityID,
	}

	if err := u.notificationRepo.Create(u.db.WithContext(ctx), notification); err != nil {
		u.log.Warnf("Failed to create notification: %+v", err)
		return nil, err
	}

	return converter.NotificationToResponse(notification), nil
}

// GetMyNotifications returns notifications for the logged-in user,
// newest first
func (u *notificationUsecase) GetMyNotifications(ctx context.Context, unreadOnly bool, offset, limit int) (*dto.NotificationListResponse, error) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, errors.New("user not found in context")
	}

	notifications, err := u.notificationRepo.FindByUserID(u.db.WithContext(ctx), userID, unreadOnly, offset, limit)
	if err != nil {
		u.log.Warnf("Failed to find notifications for user %s: %+v", userID, err)
		return nil, err
	}

	return &dto.NotificationListResponse{
		Notifications: converter.NotificationsToResponses(notifications),
		Total:         len(notifications),
	}, nil
}

func (u *notificationUsecase) GetUnreadCount(ctx context.Context) (*dto.UnreadCountResponse, error) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, errors.New("user not found in context")
	}

	count, err := u.notificationRepo.CountUnread(u.db.WithContext(ctx), userID)
	if err != nil {
		u.log.Warnf("Failed to count unread notifications for user %s: %+v", userID, err)
		return nil, err
	}

	return &dto.UnreadCountResponse{UnreadCount: count}, nil
}

// MarkRead flags one notification as read. Already-read notifications keep
// their original read timestamp.
func (u *notificationUsecase) MarkRead(ctx context.Context, id int64) (*dto.NotificationResponse, error) {
	notification, err := u.findOwned(ctx, id)
	if err != nil {
		return nil, err
	}

	if !notification.IsRead {
		notification.MarkRead(time.Now())
		if err := u.notificationRepo.Update(u.db.WithContext(ctx), notification); err != nil {
			u.log.Warnf("Failed to mark notification %d read: %+v", id, err)
			return nil, err
		}
	}

	return converter.NotificationToResponse(notification), nil
}

func (u *notificationUsecase) MarkAllRead(ctx context.Context) (int64, error) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return 0, errors.New("user not found in context")
	}

	affected, err := u.notificationRepo.MarkAllRead(u.db.WithContext(ctx), userID)
	if err != nil {
		u.log.Warnf("Failed to mark all notifications read for user %s: %+v", userID, err)
		return 0, err
	}

	return affected, nil
}

func (u *notificationUsecase) Delete(ctx context.Context, id int64) error {
	if _, err := u.findOwned(ctx, id); err != nil {
		return err
	}

	if err := u.notificationRepo.Delete(u.db.WithContext(ctx), id); err != nil {
		u.log.Warnf("Failed to delete notification %d: %+v", id, err)
		return err
	}

	return nil
}

func (u *notificationUsecase) findOwned(ctx context.Context, id int64) (*entity.Notification, error) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, errors.New("user not found in context")
	}

	notification, err := u.notificationRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find notification %d: %+v", id, err)
		return nil, err
	}
	if notification == nil {
		return nil, ErrNotificationNotFound
	}
	if notification.UserID != userID {
		return nil, ErrNotificationNotOwned
	}

	return notification, nil
}
