package http

import (
	"context"
	"io"

	"skillswap-backend/internal/domain"
	"skillswap-backend/internal/service"

	"github.com/stretchr/testify/mock"
)

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, in service.RegisterInput) (*domain.User, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockAuthService) Login(ctx context.Context, email, password string) (*service.Session, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Session), args.Error(1)
}
func (m *MockAuthService) LoginWithGoogle(ctx context.Context, idToken string, role domain.UserRole) (*service.Session, error) {
	args := m.Called(ctx, idToken, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Session), args.Error(1)
}
func (m *MockAuthService) AdminLogin(ctx context.Context, email, password string) (*service.Session, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Session), args.Error(1)
}

type MockEventService struct {
	mock.Mock
}

func (m *MockEventService) CreateEvent(ctx context.Context, in service.EventInput) (*domain.EventDetail, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.EventDetail), args.Error(1)
}
func (m *MockEventService) UpdateEvent(ctx context.Context, id int32, in service.EventInput) (*domain.EventDetail, error) {
	args := m.Called(ctx, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.EventDetail), args.Error(1)
}
func (m *MockEventService) GetEvent(ctx context.Context, id int32) (*domain.EventDetail, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.EventDetail), args.Error(1)
}
func (m *MockEventService) ListEvents(ctx context.Context, filter domain.EventFilter) ([]domain.EventDetail, int32, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]domain.EventDetail), int32(args.Int(1)), args.Error(2)
}
func (m *MockEventService) Transition(ctx context.Context, id int32, t domain.Transition, opts service.TransitionOptions) (*domain.Event, error) {
	args := m.Called(ctx, id, t, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Event), args.Error(1)
}
func (m *MockEventService) Archive(ctx context.Context, id int32) (*domain.Event, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Event), args.Error(1)
}
func (m *MockEventService) DeleteEvent(ctx context.Context, id int32) error {
	return m.Called(ctx, id).Error(0)
}
func (m *MockEventService) ListBookings(ctx context.Context, eventID int32) ([]domain.Booking, error) {
	args := m.Called(ctx, eventID)
	return args.Get(0).([]domain.Booking), args.Error(1)
}

type MockBookingService struct {
	mock.Mock
}

func (m *MockBookingService) SignUp(ctx context.Context, userID, eventID int32, role domain.RoleType) (*domain.Booking, error) {
	args := m.Called(ctx, userID, eventID, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}
func (m *MockBookingService) Withdraw(ctx context.Context, userID, eventID int32) (*domain.Booking, error) {
	args := m.Called(ctx, userID, eventID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}
func (m *MockBookingService) SubmitProof(ctx context.Context, userID, eventID int32, proof service.Upload, reflection string) (*domain.Booking, error) {
	args := m.Called(ctx, userID, eventID, proof, reflection)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}
func (m *MockBookingService) MarkCompleted(ctx context.Context, bookingID int32, hours *float64) (*domain.Booking, error) {
	args := m.Called(ctx, bookingID, hours)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}
func (m *MockBookingService) ListAwaitingVerification(ctx context.Context, page, pageSize int32) ([]domain.Booking, int32, error) {
	args := m.Called(ctx, page, pageSize)
	return args.Get(0).([]domain.Booking), int32(args.Int(1)), args.Error(2)
}
func (m *MockBookingService) GetSchedule(ctx context.Context, userID int32) (*domain.Schedule, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Schedule), args.Error(1)
}

type MockRewardService struct {
	mock.Mock
}

func (m *MockRewardService) ListRewards(ctx context.Context, activeOnly bool) ([]domain.Reward, error) {
	args := m.Called(ctx, activeOnly)
	return args.Get(0).([]domain.Reward), args.Error(1)
}
func (m *MockRewardService) CreateReward(ctx context.Context, in service.RewardInput) (*domain.Reward, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Reward), args.Error(1)
}
func (m *MockRewardService) UpdateReward(ctx context.Context, id int32, in service.RewardInput) (*domain.Reward, error) {
	args := m.Called(ctx, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Reward), args.Error(1)
}
func (m *MockRewardService) redemption(args mock.Arguments) (*domain.RewardRedemption, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RewardRedemption), args.Error(1)
}
func (m *MockRewardService) RequestRedemption(ctx context.Context, userID, rewardID int32) (*domain.RewardRedemption, error) {
	return m.redemption(m.Called(ctx, userID, rewardID))
}
func (m *MockRewardService) CancelOwnRedemption(ctx context.Context, userID, redemptionID int32) (*domain.RewardRedemption, error) {
	return m.redemption(m.Called(ctx, userID, redemptionID))
}
func (m *MockRewardService) ListMyRedemptions(ctx context.Context, userID int32) ([]domain.RewardRedemption, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]domain.RewardRedemption), args.Error(1)
}
func (m *MockRewardService) ListRedemptions(ctx context.Context, status domain.RedemptionStatus, page, pageSize int32) ([]domain.RewardRedemption, int32, error) {
	args := m.Called(ctx, status, page, pageSize)
	return args.Get(0).([]domain.RewardRedemption), int32(args.Int(1)), args.Error(2)
}
func (m *MockRewardService) ApproveRedemption(ctx context.Context, redemptionID int32) (*domain.RewardRedemption, error) {
	return m.redemption(m.Called(ctx, redemptionID))
}
func (m *MockRewardService) MarkRedeemed(ctx context.Context, redemptionID int32) (*domain.RewardRedemption, error) {
	return m.redemption(m.Called(ctx, redemptionID))
}
func (m *MockRewardService) CancelRedemption(ctx context.Context, redemptionID int32) (*domain.RewardRedemption, error) {
	return m.redemption(m.Called(ctx, redemptionID))
}
func (m *MockRewardService) ExpireRedemptions(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

type MockMediaService struct {
	mock.Mock
}

func (m *MockMediaService) Save(ctx context.Context, prefix string, ownerID int32, file service.Upload) (string, error) {
	args := m.Called(ctx, prefix, ownerID, file)
	return args.String(0), args.Error(1)
}
func (m *MockMediaService) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(io.ReadCloser), args.Error(1)
}
func (m *MockMediaService) Delete(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) user(args mock.Arguments) (*domain.User, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserService) GetProfile(ctx context.Context, userID int32) (*domain.User, error) {
	return m.user(m.Called(ctx, userID))
}
func (m *MockUserService) UpdateProfile(ctx context.Context, userID int32, in service.ProfileInput) (*domain.User, error) {
	return m.user(m.Called(ctx, userID, in))
}
func (m *MockUserService) UploadPhoto(ctx context.Context, userID int32, photo service.Upload) (*domain.User, error) {
	return m.user(m.Called(ctx, userID, photo))
}
func (m *MockUserService) ChangePassword(ctx context.Context, userID int32, current, next string) error {
	return m.Called(ctx, userID, current, next).Error(0)
}
func (m *MockUserService) Dashboard(ctx context.Context, userID int32) (*domain.Dashboard, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Dashboard), args.Error(1)
}
func (m *MockUserService) ListSkills(ctx context.Context) ([]domain.Skill, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Skill), args.Error(1)
}
func (m *MockUserService) skills(args mock.Arguments) (*domain.UserSkills, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UserSkills), args.Error(1)
}
func (m *MockUserService) GetSkills(ctx context.Context, userID int32) (*domain.UserSkills, error) {
	return m.skills(m.Called(ctx, userID))
}
func (m *MockUserService) UpdateSkills(ctx context.Context, userID int32, in service.SkillsInput) (*domain.UserSkills, error) {
	return m.skills(m.Called(ctx, userID, in))
}
func (m *MockUserService) ListUsers(ctx context.Context, status domain.VerificationStatus, page, pageSize int32) ([]domain.User, int32, error) {
	args := m.Called(ctx, status, page, pageSize)
	return args.Get(0).([]domain.User), args.Get(1).(int32), args.Error(2)
}
func (m *MockUserService) VerifyUser(ctx context.Context, userID int32) error {
	return m.Called(ctx, userID).Error(0)
}
func (m *MockUserService) RejectUser(ctx context.Context, userID int32) error {
	return m.Called(ctx, userID).Error(0)
}
