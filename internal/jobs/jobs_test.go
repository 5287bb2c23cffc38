package jobs

import (
	"context"
	"errors"
	"testing"

	"skillswap-backend/internal/config"
	"skillswap-backend/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// Only the methods the jobs call are implemented; the embedded interface
// panics on anything else.
type mockRewardService struct {
	service.RewardService
	mock.Mock
}

func (m *mockRewardService) ExpireRedemptions(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

type mockChatService struct {
	service.ChatService
	mock.Mock
}

func (m *mockChatService) CloseIdle(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func newTestRunner() (*JobRunner, *mockRewardService, *mockChatService) {
	rewards := new(mockRewardService)
	chats := new(mockChatService)
	return NewJobRunner(&Services{Reward: rewards, Chat: chats}, &config.Config{}), rewards, chats
}

func TestRun(t *testing.T) {
	t.Run("Expire Redemptions", func(t *testing.T) {
		jr, rewards, _ := newTestRunner()
		rewards.On("ExpireRedemptions", mock.Anything).Return(2, nil)

		assert.NoError(t, jr.Run("expire-redemptions"))
		rewards.AssertExpectations(t)
	})

	t.Run("All", func(t *testing.T) {
		jr, rewards, chats := newTestRunner()
		rewards.On("ExpireRedemptions", mock.Anything).Return(0, errors.New("db down"))
		chats.On("CloseIdle", mock.Anything).Return(int64(3), nil)

		// A failing job does not stop the next one.
		assert.NoError(t, jr.Run("all"))
		rewards.AssertExpectations(t)
		chats.AssertExpectations(t)
	})

	t.Run("Unknown Job", func(t *testing.T) {
		jr, _, _ := newTestRunner()
		assert.Error(t, jr.Run("mark-overdue"))
	})
}

func TestRunWithRecovery_Panic(t *testing.T) {
	jr, _, _ := newTestRunner()
	assert.NotPanics(t, func() {
		jr.runWithRecovery("Boom", func(ctx context.Context) error {
			panic("boom")
		})
	})
}

func TestJobNames(t *testing.T) {
	jr, _, _ := newTestRunner()
	assert.Equal(t, []string{"all", "close-idle-chats", "expire-redemptions"}, jr.JobNames())
}
