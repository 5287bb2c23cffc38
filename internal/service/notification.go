package service

import (
	"context"
	"strings"

	"skillswap-backend/internal/domain"
	"skillswap-backend/internal/repository"
)

type notificationService struct {
	noteRepo repository.NotificationRepository
}

func NewNotificationService(noteRepo repository.NotificationRepository) NotificationService {
	return &notificationService{noteRepo: noteRepo}
}

func (s *notificationService) Push(ctx context.Context, n *domain.Notification) error {
	n.Message = strings.TrimSpace(n.Message)
	if n.Message == "" {
		return invalid("message", "is required")
	}
	n.IsRead = false
	return s.noteRepo.Create(ctx, n)
}

func (s *notificationService) List(ctx context.Context, userID int32, page, pageSize int32) ([]domain.Notification, int32, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	offset := (page - 1) * pageSize
	return s.noteRepo.List(ctx, userID, pageSize, offset)
}

func (s *notificationService) ListUnread(ctx context.Context, userID int32) ([]domain.Notification, error) {
	return s.noteRepo.ListUnread(ctx, userID)
}

func (s *notificationService) CountUnread(ctx context.Context, userID int32) (int32, error) {
	return s.noteRepo.CountUnread(ctx, userID)
}

// MarkAsRead only touches a row owned by userID. Another user's notification
// is reported as not found.
func (s *notificationService) MarkAsRead(ctx context.Context, userID, notificationID int32) error {
	return translate(s.noteRepo.MarkAsRead(ctx, notificationID, userID), "notification")
}

func (s *notificationService) MarkAllAsRead(ctx context.Context, userID int32) (int64, error) {
	return s.noteRepo.MarkAllAsRead(ctx, userID)
}
