package service

import (
	"context"
	"testing"

	"skillswap-backend/internal/domain"
	"skillswap-backend/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestNotificationService_MarkAsRead(t *testing.T) {
	ctx := context.Background()

	t.Run("Twice Leaves It Read", func(t *testing.T) {
		repo := new(MockNotificationRepo)
		svc := NewNotificationService(repo)
		repo.On("MarkAsRead", ctx, int32(4), int32(10)).Return(nil)

		assert.NoError(t, svc.MarkAsRead(ctx, 10, 4))
		assert.NoError(t, svc.MarkAsRead(ctx, 10, 4))
		repo.AssertNumberOfCalls(t, "MarkAsRead", 2)
	})

	t.Run("Other User's Notification", func(t *testing.T) {
		repo := new(MockNotificationRepo)
		svc := NewNotificationService(repo)
		repo.On("MarkAsRead", ctx, int32(4), int32(11)).Return(repository.ErrNotFound)

		err := svc.MarkAsRead(ctx, 11, 4)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestNotificationService_Push(t *testing.T) {
	ctx := context.Background()
	repo := new(MockNotificationRepo)
	svc := NewNotificationService(repo)

	err := svc.Push(ctx, &domain.Notification{UserID: 10, Message: "  "})
	assert.ErrorIs(t, err, ErrValidation)

	repo.On("Create", ctx, mock.MatchedBy(func(n *domain.Notification) bool {
		return n.UserID == 10 && !n.IsRead && n.Message == "Hello"
	})).Return(nil)
	require.NoError(t, svc.Push(ctx, &domain.Notification{UserID: 10, Message: "Hello", IsRead: true}))
	repo.AssertExpectations(t)
}

func TestNotificationService_ListPaging(t *testing.T) {
	ctx := context.Background()
	repo := new(MockNotificationRepo)
	svc := NewNotificationService(repo)
	repo.On("List", ctx, int32(10), int32(20), int32(40)).Return([]domain.Notification{}, int32(0), nil)

	_, _, err := svc.List(ctx, 10, 3, 0)
	require.NoError(t, err)
	repo.AssertExpectations(t)
}
