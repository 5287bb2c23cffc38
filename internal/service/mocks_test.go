package service

import (
	"context"
	"io"
	"time"

	"skillswap-backend/internal/domain"
	"skillswap-backend/internal/repository"
	"skillswap-backend/internal/security"

	"github.com/stretchr/testify/mock"
)

// fakeTx runs the callback against the same mock repositories. It mirrors the
// commit/rollback contract only in that the callback's error is returned.
type fakeTx struct {
	repos repository.Repos
	calls int
}

func (f *fakeTx) WithinTx(ctx context.Context, fn func(repository.Repos) error) error {
	f.calls++
	return fn(f.repos)
}

type mockRepos struct {
	users         *MockUserRepo
	admins        *MockAdminRepo
	events        *MockEventRepo
	bookings      *MockBookingRepo
	challenges    *MockChallengeRepo
	submissions   *MockSubmissionRepo
	notifications *MockNotificationRepo
	points        *MockPointsRepo
	rewards       *MockRewardRepo
	redemptions   *MockRedemptionRepo
	tickets       *MockTicketRepo
	chats         *MockChatRepo
	skills        *MockSkillRepo
}

func newMockRepos() (*mockRepos, repository.Repos, *fakeTx) {
	m := &mockRepos{
		users:         new(MockUserRepo),
		admins:        new(MockAdminRepo),
		events:        new(MockEventRepo),
		bookings:      new(MockBookingRepo),
		challenges:    new(MockChallengeRepo),
		submissions:   new(MockSubmissionRepo),
		notifications: new(MockNotificationRepo),
		points:        new(MockPointsRepo),
		rewards:       new(MockRewardRepo),
		redemptions:   new(MockRedemptionRepo),
		tickets:       new(MockTicketRepo),
		chats:         new(MockChatRepo),
		skills:        new(MockSkillRepo),
	}
	repos := repository.Repos{
		Users:         m.users,
		Admins:        m.admins,
		Events:        m.events,
		Bookings:      m.bookings,
		Challenges:    m.challenges,
		Submissions:   m.submissions,
		Notifications: m.notifications,
		Points:        m.points,
		Rewards:       m.rewards,
		Redemptions:   m.redemptions,
		Tickets:       m.tickets,
		Chats:         m.chats,
		Skills:        m.skills,
	}
	return m, repos, &fakeTx{repos: repos}
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

// MockUserRepo
type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}
func (m *MockUserRepo) GetByID(ctx context.Context, id int32) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) Update(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}
func (m *MockUserRepo) UpdatePassword(ctx context.Context, id int32, hash string) error {
	args := m.Called(ctx, id, hash)
	return args.Error(0)
}
func (m *MockUserRepo) SetVerification(ctx context.Context, id int32, status domain.VerificationStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}
func (m *MockUserRepo) Delete(ctx context.Context, id int32) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockUserRepo) List(ctx context.Context, status domain.VerificationStatus, page, pageSize int32) ([]domain.User, int32, error) {
	args := m.Called(ctx, status, page, pageSize)
	return args.Get(0).([]domain.User), args.Get(1).(int32), args.Error(2)
}
func (m *MockUserRepo) ListIDs(ctx context.Context) ([]int32, error) {
	args := m.Called(ctx)
	return args.Get(0).([]int32), args.Error(1)
}
func (m *MockUserRepo) AddPoints(ctx context.Context, id, delta int32) error {
	args := m.Called(ctx, id, delta)
	return args.Error(0)
}
func (m *MockUserRepo) DebitPoints(ctx context.Context, id, amount int32) error {
	args := m.Called(ctx, id, amount)
	return args.Error(0)
}

// MockAdminRepo
type MockAdminRepo struct {
	mock.Mock
}

func (m *MockAdminRepo) GetByID(ctx context.Context, id int32) (*domain.Admin, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Admin), args.Error(1)
}
func (m *MockAdminRepo) GetByEmail(ctx context.Context, email string) (*domain.Admin, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Admin), args.Error(1)
}

// MockEventRepo
type MockEventRepo struct {
	mock.Mock
}

func (m *MockEventRepo) Create(ctx context.Context, event *domain.Event) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}
func (m *MockEventRepo) GetByID(ctx context.Context, id int32) (*domain.Event, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Event), args.Error(1)
}
func (m *MockEventRepo) GetRequirementsFor(ctx context.Context, eventIDs []int32) (map[int32][]domain.RoleRequirement, error) {
	args := m.Called(ctx, eventIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[int32][]domain.RoleRequirement), args.Error(1)
}
func (m *MockEventRepo) GetForUpdate(ctx context.Context, id int32) (*domain.Event, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Event), args.Error(1)
}
func (m *MockEventRepo) Update(ctx context.Context, event *domain.Event) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}
func (m *MockEventRepo) Delete(ctx context.Context, id int32) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockEventRepo) List(ctx context.Context, filter domain.EventFilter) ([]domain.Event, int32, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]domain.Event), args.Get(1).(int32), args.Error(2)
}
func (m *MockEventRepo) GetRequirements(ctx context.Context, eventID int32) ([]domain.RoleRequirement, error) {
	args := m.Called(ctx, eventID)
	return args.Get(0).([]domain.RoleRequirement), args.Error(1)
}
func (m *MockEventRepo) ReplaceRequirements(ctx context.Context, eventID int32, reqs []domain.RoleRequirement) error {
	args := m.Called(ctx, eventID, reqs)
	return args.Error(0)
}

// MockBookingRepo
type MockBookingRepo struct {
	mock.Mock
}

func (m *MockBookingRepo) Create(ctx context.Context, booking *domain.Booking) error {
	args := m.Called(ctx, booking)
	return args.Error(0)
}
func (m *MockBookingRepo) GetByID(ctx context.Context, id int32) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}
func (m *MockBookingRepo) GetForUpdate(ctx context.Context, id int32) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}
func (m *MockBookingRepo) GetByUserAndEventForUpdate(ctx context.Context, userID, eventID int32) (*domain.Booking, error) {
	args := m.Called(ctx, userID, eventID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}
func (m *MockBookingRepo) CountActiveByEvents(ctx context.Context, eventIDs []int32) (map[int32]map[domain.RoleType]int32, error) {
	args := m.Called(ctx, eventIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[int32]map[domain.RoleType]int32), args.Error(1)
}
func (m *MockBookingRepo) GetByUserAndEvent(ctx context.Context, userID, eventID int32) (*domain.Booking, error) {
	args := m.Called(ctx, userID, eventID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}
func (m *MockBookingRepo) Update(ctx context.Context, booking *domain.Booking) error {
	args := m.Called(ctx, booking)
	return args.Error(0)
}
func (m *MockBookingRepo) CountActiveByRole(ctx context.Context, eventID int32) (map[domain.RoleType]int32, error) {
	args := m.Called(ctx, eventID)
	return args.Get(0).(map[domain.RoleType]int32), args.Error(1)
}
func (m *MockBookingRepo) ListActiveUserIDs(ctx context.Context, eventID int32) ([]int32, error) {
	args := m.Called(ctx, eventID)
	return args.Get(0).([]int32), args.Error(1)
}
func (m *MockBookingRepo) ListByUser(ctx context.Context, userID int32) ([]domain.Booking, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]domain.Booking), args.Error(1)
}
func (m *MockBookingRepo) ListByEvent(ctx context.Context, eventID int32) ([]domain.Booking, error) {
	args := m.Called(ctx, eventID)
	return args.Get(0).([]domain.Booking), args.Error(1)
}
func (m *MockBookingRepo) ListAwaitingVerification(ctx context.Context, page, pageSize int32) ([]domain.Booking, int32, error) {
	args := m.Called(ctx, page, pageSize)
	return args.Get(0).([]domain.Booking), args.Get(1).(int32), args.Error(2)
}
func (m *MockBookingRepo) CompletionStats(ctx context.Context, userID int32) (int32, float64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int32), args.Get(1).(float64), args.Error(2)
}

// MockChallengeRepo
type MockChallengeRepo struct {
	mock.Mock
}

func (m *MockChallengeRepo) Create(ctx context.Context, challenge *domain.Challenge) error {
	args := m.Called(ctx, challenge)
	return args.Error(0)
}
func (m *MockChallengeRepo) GetByID(ctx context.Context, id int32) (*domain.Challenge, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Challenge), args.Error(1)
}
func (m *MockChallengeRepo) GetForUpdate(ctx context.Context, id int32) (*domain.Challenge, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Challenge), args.Error(1)
}
func (m *MockChallengeRepo) Update(ctx context.Context, challenge *domain.Challenge) error {
	args := m.Called(ctx, challenge)
	return args.Error(0)
}
func (m *MockChallengeRepo) Delete(ctx context.Context, id int32) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockChallengeRepo) List(ctx context.Context, filter domain.ChallengeFilter) ([]domain.Challenge, int32, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]domain.Challenge), args.Get(1).(int32), args.Error(2)
}

// MockSubmissionRepo
type MockSubmissionRepo struct {
	mock.Mock
}

func (m *MockSubmissionRepo) Create(ctx context.Context, sub *domain.ChallengeSubmission) error {
	args := m.Called(ctx, sub)
	return args.Error(0)
}
func (m *MockSubmissionRepo) GetByID(ctx context.Context, id int32) (*domain.ChallengeSubmission, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ChallengeSubmission), args.Error(1)
}
func (m *MockSubmissionRepo) GetForUpdate(ctx context.Context, id int32) (*domain.ChallengeSubmission, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ChallengeSubmission), args.Error(1)
}
func (m *MockSubmissionRepo) GetLatest(ctx context.Context, userID, challengeID int32) (*domain.ChallengeSubmission, error) {
	args := m.Called(ctx, userID, challengeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ChallengeSubmission), args.Error(1)
}
func (m *MockSubmissionRepo) Update(ctx context.Context, sub *domain.ChallengeSubmission) error {
	args := m.Called(ctx, sub)
	return args.Error(0)
}
func (m *MockSubmissionRepo) ListByChallenge(ctx context.Context, challengeID int32, status domain.SubmissionStatus) ([]domain.ChallengeSubmission, error) {
	args := m.Called(ctx, challengeID, status)
	return args.Get(0).([]domain.ChallengeSubmission), args.Error(1)
}

// MockNotificationRepo
type MockNotificationRepo struct {
	mock.Mock
}

func (m *MockNotificationRepo) Create(ctx context.Context, note *domain.Notification) error {
	args := m.Called(ctx, note)
	return args.Error(0)
}
func (m *MockNotificationRepo) CreateBatch(ctx context.Context, b domain.Broadcast) (int64, error) {
	args := m.Called(ctx, b)
	return args.Get(0).(int64), args.Error(1)
}
func (m *MockNotificationRepo) List(ctx context.Context, userID int32, limit, offset int32) ([]domain.Notification, int32, error) {
	args := m.Called(ctx, userID, limit, offset)
	return args.Get(0).([]domain.Notification), args.Get(1).(int32), args.Error(2)
}
func (m *MockNotificationRepo) ListUnread(ctx context.Context, userID int32) ([]domain.Notification, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]domain.Notification), args.Error(1)
}
func (m *MockNotificationRepo) CountUnread(ctx context.Context, userID int32) (int32, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int32), args.Error(1)
}
func (m *MockNotificationRepo) MarkAsRead(ctx context.Context, id, userID int32) error {
	args := m.Called(ctx, id, userID)
	return args.Error(0)
}
func (m *MockNotificationRepo) MarkAllAsRead(ctx context.Context, userID int32) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

// MockPointsRepo
type MockPointsRepo struct {
	mock.Mock
}

func (m *MockPointsRepo) CreateTransaction(ctx context.Context, tx *domain.PointsTransaction) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}
func (m *MockPointsRepo) ListTransactions(ctx context.Context, userID int32, page, pageSize int32) ([]domain.PointsTransaction, int32, error) {
	args := m.Called(ctx, userID, page, pageSize)
	return args.Get(0).([]domain.PointsTransaction), args.Get(1).(int32), args.Error(2)
}

// MockRewardRepo
type MockRewardRepo struct {
	mock.Mock
}

func (m *MockRewardRepo) Create(ctx context.Context, reward *domain.Reward) error {
	args := m.Called(ctx, reward)
	return args.Error(0)
}
func (m *MockRewardRepo) GetByID(ctx context.Context, id int32) (*domain.Reward, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Reward), args.Error(1)
}
func (m *MockRewardRepo) GetForUpdate(ctx context.Context, id int32) (*domain.Reward, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Reward), args.Error(1)
}
func (m *MockRewardRepo) Update(ctx context.Context, reward *domain.Reward) error {
	args := m.Called(ctx, reward)
	return args.Error(0)
}
func (m *MockRewardRepo) List(ctx context.Context, activeOnly bool) ([]domain.Reward, error) {
	args := m.Called(ctx, activeOnly)
	return args.Get(0).([]domain.Reward), args.Error(1)
}

// MockRedemptionRepo
type MockRedemptionRepo struct {
	mock.Mock
}

func (m *MockRedemptionRepo) Create(ctx context.Context, r *domain.RewardRedemption) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}
func (m *MockRedemptionRepo) GetByID(ctx context.Context, id int32) (*domain.RewardRedemption, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RewardRedemption), args.Error(1)
}
func (m *MockRedemptionRepo) GetForUpdate(ctx context.Context, id int32) (*domain.RewardRedemption, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RewardRedemption), args.Error(1)
}
func (m *MockRedemptionRepo) Update(ctx context.Context, r *domain.RewardRedemption) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}
func (m *MockRedemptionRepo) ListByUser(ctx context.Context, userID int32) ([]domain.RewardRedemption, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]domain.RewardRedemption), args.Error(1)
}
func (m *MockRedemptionRepo) List(ctx context.Context, status domain.RedemptionStatus, page, pageSize int32) ([]domain.RewardRedemption, int32, error) {
	args := m.Called(ctx, status, page, pageSize)
	return args.Get(0).([]domain.RewardRedemption), args.Get(1).(int32), args.Error(2)
}
func (m *MockRedemptionRepo) CountOutstanding(ctx context.Context, rewardID int32) (int32, error) {
	args := m.Called(ctx, rewardID)
	return args.Get(0).(int32), args.Error(1)
}
func (m *MockRedemptionRepo) ListExpired(ctx context.Context, now time.Time) ([]domain.RewardRedemption, error) {
	args := m.Called(ctx, now)
	return args.Get(0).([]domain.RewardRedemption), args.Error(1)
}

// MockTicketRepo
type MockTicketRepo struct {
	mock.Mock
}

func (m *MockTicketRepo) Create(ctx context.Context, ticket *domain.SupportTicket) error {
	args := m.Called(ctx, ticket)
	return args.Error(0)
}
func (m *MockTicketRepo) GetByID(ctx context.Context, id int32) (*domain.SupportTicket, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SupportTicket), args.Error(1)
}
func (m *MockTicketRepo) Update(ctx context.Context, ticket *domain.SupportTicket) error {
	args := m.Called(ctx, ticket)
	return args.Error(0)
}
func (m *MockTicketRepo) List(ctx context.Context, filter domain.TicketFilter) ([]domain.SupportTicket, int32, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]domain.SupportTicket), args.Get(1).(int32), args.Error(2)
}

// MockChatRepo
type MockChatRepo struct {
	mock.Mock
}

func (m *MockChatRepo) CreateSession(ctx context.Context, s *domain.ChatSession) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}
func (m *MockChatRepo) GetSession(ctx context.Context, id int32) (*domain.ChatSession, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ChatSession), args.Error(1)
}
func (m *MockChatRepo) GetActiveSessionByUser(ctx context.Context, userID int32) (*domain.ChatSession, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ChatSession), args.Error(1)
}
func (m *MockChatRepo) UpdateSession(ctx context.Context, s *domain.ChatSession) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}
func (m *MockChatRepo) ListSessions(ctx context.Context, status domain.ChatSessionStatus) ([]domain.ChatSession, error) {
	args := m.Called(ctx, status)
	return args.Get(0).([]domain.ChatSession), args.Error(1)
}
func (m *MockChatRepo) AddMessage(ctx context.Context, msg *domain.ChatMessage) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}
func (m *MockChatRepo) ListMessages(ctx context.Context, sessionID int32) ([]domain.ChatMessage, error) {
	args := m.Called(ctx, sessionID)
	return args.Get(0).([]domain.ChatMessage), args.Error(1)
}
func (m *MockChatRepo) CloseIdleSessions(ctx context.Context, idleSince time.Time) (int64, error) {
	args := m.Called(ctx, idleSince)
	return args.Get(0).(int64), args.Error(1)
}

// MockMediaService
type MockMediaService struct {
	mock.Mock
}

func (m *MockMediaService) Save(ctx context.Context, prefix string, ownerID int32, file Upload) (string, error) {
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
	args := m.Called(ctx, key)
	return args.Error(0)
}

// MockEmailService
type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) SendTicketReply(ctx context.Context, email, name, subject, reply string) error {
	args := m.Called(ctx, email, name, subject, reply)
	return args.Error(0)
}

// MockTokenManager
type MockTokenManager struct {
	mock.Mock
}

func (m *MockTokenManager) GenerateUserSession(user *domain.User) (string, time.Time, error) {
	args := m.Called(user)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}
func (m *MockTokenManager) GenerateAdminSession(admin *domain.Admin) (string, time.Time, error) {
	args := m.Called(admin)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}
func (m *MockTokenManager) ValidateToken(tokenString string) (*security.SessionClaims, error) {
	args := m.Called(tokenString)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*security.SessionClaims), args.Error(1)
}

// MockGoogleVerifier
type MockGoogleVerifier struct {
	mock.Mock
}

func (m *MockGoogleVerifier) Verify(ctx context.Context, idToken string) (*security.GoogleIdentity, error) {
	args := m.Called(ctx, idToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*security.GoogleIdentity), args.Error(1)
}

var errNotFoundRepo = repository.ErrNotFound

// MockSkillRepo
type MockSkillRepo struct {
	mock.Mock
}

func (m *MockSkillRepo) List(ctx context.Context) ([]domain.Skill, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Skill), args.Error(1)
}
func (m *MockSkillRepo) Ensure(ctx context.Context, name string) (int32, error) {
	args := m.Called(ctx, name)
	return args.Get(0).(int32), args.Error(1)
}
func (m *MockSkillRepo) ListForUser(ctx context.Context, userID int32) (*domain.UserSkills, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UserSkills), args.Error(1)
}
func (m *MockSkillRepo) ReplaceForUser(ctx context.Context, userID int32, kind domain.SkillKind, skillIDs []int32) error {
	args := m.Called(ctx, userID, kind, skillIDs)
	return args.Error(0)
}
