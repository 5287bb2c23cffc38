package repository

import (
	"context"
	"errors"
	"time"

	"skillswap-backend/internal/domain"
)

var (
	ErrNotFound           = errors.New("record not found")
	ErrInsufficientPoints = errors.New("insufficient points")
	ErrDuplicate          = errors.New("duplicate record")
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id int32) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	UpdatePassword(ctx context.Context, id int32, hash string) error
	SetVerification(ctx context.Context, id int32, status domain.VerificationStatus) error
	Delete(ctx context.Context, id int32) error
	List(ctx context.Context, status domain.VerificationStatus, page, pageSize int32) ([]domain.User, int32, error)
	ListIDs(ctx context.Context) ([]int32, error)

	// Points balance
	AddPoints(ctx context.Context, id, delta int32) error
	DebitPoints(ctx context.Context, id, amount int32) error
}

type AdminRepository interface {
	GetByID(ctx context.Context, id int32) (*domain.Admin, error)
	GetByEmail(ctx context.Context, email string) (*domain.Admin, error)
}

type EventRepository interface {
	Create(ctx context.Context, event *domain.Event) error
	GetByID(ctx context.Context, id int32) (*domain.Event, error)
	// GetForUpdate locks the event row until the surrounding transaction ends.
	GetForUpdate(ctx context.Context, id int32) (*domain.Event, error)
	Update(ctx context.Context, event *domain.Event) error
	Delete(ctx context.Context, id int32) error
	List(ctx context.Context, filter domain.EventFilter) ([]domain.Event, int32, error)

	// Role requirements
	GetRequirements(ctx context.Context, eventID int32) ([]domain.RoleRequirement, error)
	GetRequirementsFor(ctx context.Context, eventIDs []int32) (map[int32][]domain.RoleRequirement, error)
	ReplaceRequirements(ctx context.Context, eventID int32, reqs []domain.RoleRequirement) error
}

type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) error
	GetByID(ctx context.Context, id int32) (*domain.Booking, error)
	// GetForUpdate locks the booking row until the surrounding transaction ends.
	GetForUpdate(ctx context.Context, id int32) (*domain.Booking, error)
	GetByUserAndEvent(ctx context.Context, userID, eventID int32) (*domain.Booking, error)
	GetByUserAndEventForUpdate(ctx context.Context, userID, eventID int32) (*domain.Booking, error)
	Update(ctx context.Context, booking *domain.Booking) error
	CountActiveByRole(ctx context.Context, eventID int32) (map[domain.RoleType]int32, error)
	CountActiveByEvents(ctx context.Context, eventIDs []int32) (map[int32]map[domain.RoleType]int32, error)
	ListActiveUserIDs(ctx context.Context, eventID int32) ([]int32, error)
	ListByUser(ctx context.Context, userID int32) ([]domain.Booking, error)
	ListByEvent(ctx context.Context, eventID int32) ([]domain.Booking, error)
	ListAwaitingVerification(ctx context.Context, page, pageSize int32) ([]domain.Booking, int32, error)
	CompletionStats(ctx context.Context, userID int32) (int32, float64, error)
}

type ChallengeRepository interface {
	Create(ctx context.Context, challenge *domain.Challenge) error
	GetByID(ctx context.Context, id int32) (*domain.Challenge, error)
	GetForUpdate(ctx context.Context, id int32) (*domain.Challenge, error)
	Update(ctx context.Context, challenge *domain.Challenge) error
	Delete(ctx context.Context, id int32) error
	List(ctx context.Context, filter domain.ChallengeFilter) ([]domain.Challenge, int32, error)
}

type SubmissionRepository interface {
	Create(ctx context.Context, sub *domain.ChallengeSubmission) error
	GetByID(ctx context.Context, id int32) (*domain.ChallengeSubmission, error)
	GetForUpdate(ctx context.Context, id int32) (*domain.ChallengeSubmission, error)
	GetLatest(ctx context.Context, userID, challengeID int32) (*domain.ChallengeSubmission, error)
	Update(ctx context.Context, sub *domain.ChallengeSubmission) error
	ListByChallenge(ctx context.Context, challengeID int32, status domain.SubmissionStatus) ([]domain.ChallengeSubmission, error)
}

type NotificationRepository interface {
	Create(ctx context.Context, note *domain.Notification) error
	// CreateBatch inserts one unread row per recipient and returns the number of rows written.
	CreateBatch(ctx context.Context, b domain.Broadcast) (int64, error)
	List(ctx context.Context, userID int32, limit, offset int32) ([]domain.Notification, int32, error)
	ListUnread(ctx context.Context, userID int32) ([]domain.Notification, error)
	CountUnread(ctx context.Context, userID int32) (int32, error)
	MarkAsRead(ctx context.Context, id, userID int32) error
	MarkAllAsRead(ctx context.Context, userID int32) (int64, error)
}

type PointsRepository interface {
	CreateTransaction(ctx context.Context, tx *domain.PointsTransaction) error
	ListTransactions(ctx context.Context, userID int32, page, pageSize int32) ([]domain.PointsTransaction, int32, error)
}

type RewardRepository interface {
	Create(ctx context.Context, reward *domain.Reward) error
	GetByID(ctx context.Context, id int32) (*domain.Reward, error)
	GetForUpdate(ctx context.Context, id int32) (*domain.Reward, error)
	Update(ctx context.Context, reward *domain.Reward) error
	List(ctx context.Context, activeOnly bool) ([]domain.Reward, error)
}

type RedemptionRepository interface {
	Create(ctx context.Context, r *domain.RewardRedemption) error
	GetByID(ctx context.Context, id int32) (*domain.RewardRedemption, error)
	GetForUpdate(ctx context.Context, id int32) (*domain.RewardRedemption, error)
	Update(ctx context.Context, r *domain.RewardRedemption) error
	ListByUser(ctx context.Context, userID int32) ([]domain.RewardRedemption, error)
	List(ctx context.Context, status domain.RedemptionStatus, page, pageSize int32) ([]domain.RewardRedemption, int32, error)
	CountOutstanding(ctx context.Context, rewardID int32) (int32, error)
	ListExpired(ctx context.Context, now time.Time) ([]domain.RewardRedemption, error)
}

type TicketRepository interface {
	Create(ctx context.Context, ticket *domain.SupportTicket) error
	GetByID(ctx context.Context, id int32) (*domain.SupportTicket, error)
	Update(ctx context.Context, ticket *domain.SupportTicket) error
	List(ctx context.Context, filter domain.TicketFilter) ([]domain.SupportTicket, int32, error)
}

type ChatRepository interface {
	CreateSession(ctx context.Context, s *domain.ChatSession) error
	GetSession(ctx context.Context, id int32) (*domain.ChatSession, error)
	GetActiveSessionByUser(ctx context.Context, userID int32) (*domain.ChatSession, error)
	UpdateSession(ctx context.Context, s *domain.ChatSession) error
	ListSessions(ctx context.Context, status domain.ChatSessionStatus) ([]domain.ChatSession, error)
	AddMessage(ctx context.Context, m *domain.ChatMessage) error
	ListMessages(ctx context.Context, sessionID int32) ([]domain.ChatMessage, error)
	CloseIdleSessions(ctx context.Context, idleSince time.Time) (int64, error)
}

type SkillRepository interface {
	List(ctx context.Context) ([]domain.Skill, error)
	// Ensure returns the id of the skill with this name, ignoring case,
	// creating it when missing.
	Ensure(ctx context.Context, name string) (int32, error)
	ListForUser(ctx context.Context, userID int32) (*domain.UserSkills, error)
	ReplaceForUser(ctx context.Context, userID int32, kind domain.SkillKind, skillIDs []int32) error
}

// Repos bundles repositories that share one database handle, either the pool
// or an open transaction.
type Repos struct {
	Users         UserRepository
	Admins        AdminRepository
	Events        EventRepository
	Bookings      BookingRepository
	Challenges    ChallengeRepository
	Submissions   SubmissionRepository
	Notifications NotificationRepository
	Points        PointsRepository
	Rewards       RewardRepository
	Redemptions   RedemptionRepository
	Tickets       TicketRepository
	Chats         ChatRepository
	Skills        SkillRepository
}

// Transactor runs fn against repositories bound to a single transaction. The
// transaction commits when fn returns nil and rolls back otherwise.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(repos Repos) error) error
}
