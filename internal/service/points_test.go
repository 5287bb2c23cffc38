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

func TestPointsService_Adjust(t *testing.T) {
	ctx := context.Background()

	t.Run("Credit", func(t *testing.T) {
		m, repos, tx := newMockRepos()
		svc := NewPointsService(repos, tx)
		m.users.On("GetByID", mock.Anything, int32(10)).Return(&domain.User{ID: 10, TotalPoints: 50}, nil)
		m.users.On("AddPoints", mock.Anything, int32(10), int32(50)).Return(nil)
		m.points.On("CreateTransaction", mock.Anything, mock.MatchedBy(func(entry *domain.PointsTransaction) bool {
			return entry.Kind == domain.PointsKindAdjustment && entry.Remarks == "Volunteer of the month"
		})).Return(nil)

		_, err := svc.Adjust(ctx, 10, 50, "Volunteer of the month")
		require.NoError(t, err)
		m.points.AssertExpectations(t)
	})

	t.Run("Debit Cannot Overdraw", func(t *testing.T) {
		m, repos, tx := newMockRepos()
		svc := NewPointsService(repos, tx)
		m.users.On("GetByID", mock.Anything, int32(10)).Return(&domain.User{ID: 10, TotalPoints: 5}, nil)
		m.users.On("DebitPoints", mock.Anything, int32(10), int32(20)).Return(repository.ErrInsufficientPoints)

		_, err := svc.Adjust(ctx, 10, -20, "")
		assert.ErrorIs(t, err, ErrInsufficientPoints)
		m.points.AssertNotCalled(t, "CreateTransaction", mock.Anything, mock.Anything)
	})

	t.Run("Zero", func(t *testing.T) {
		_, repos, tx := newMockRepos()
		svc := NewPointsService(repos, tx)
		_, err := svc.Adjust(ctx, 10, 0, "")
		assert.ErrorIs(t, err, ErrValidation)
	})
}
