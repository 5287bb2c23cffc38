package service

import (
	"context"
	"io"
	"time"

	"skillswap-backend/internal/domain"
)

// Upload is a file received from a client.
type Upload struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

type EventInput struct {
	Title               string
	Description         string
	Category            domain.Category
	LedBy               domain.LedBy
	StartAt             time.Time
	EndAt               *time.Time
	Location            string
	GrcID               *int32
	PointsMentor        int32
	PointsParticipant   int32
	MentorCapacity      *int32
	ParticipantCapacity *int32
	CreatedBy           int32
}

type ChallengeInput struct {
	Title       string
	Description string
	StartDate   time.Time
	EndDate     time.Time
	BonusPoints int32
	TargetCount int32
}

// TransitionOptions carry the inputs of void and end.
type TransitionOptions struct {
	Reason string
	Notify bool
}

type RewardInput struct {
	Name          string
	Description   string
	PointsCost    int32
	IsActive      bool
	TotalQuantity *int32
}

type TicketInput struct {
	Subject  string
	Category string
	Message  string
}

type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Role     domain.UserRole
	GrcID    *int32
}

// SkillsInput replaces both of a user's skill lists. Names are free-form;
// unknown ones are added to the shared catalog.
type SkillsInput struct {
	Teach []string
	Learn []string
}

type ProfileInput struct {
	Name       string
	GrcID      *int32
	Language   string
	Profession string
	Bio        string
	BirthDate  *time.Time
}

// Session is the result of a successful sign-in. Exactly one of User and
// Admin is set.
type Session struct {
	Token     string        `json:"token"`
	ExpiresAt time.Time     `json:"expires_at"`
	User      *domain.User  `json:"user,omitempty"`
	Admin     *domain.Admin `json:"admin,omitempty"`
}

type EventService interface {
	CreateEvent(ctx context.Context, in EventInput) (*domain.EventDetail, error)
	UpdateEvent(ctx context.Context, id int32, in EventInput) (*domain.EventDetail, error)
	GetEvent(ctx context.Context, id int32) (*domain.EventDetail, error)
	ListEvents(ctx context.Context, filter domain.EventFilter) ([]domain.EventDetail, int32, error)
	Transition(ctx context.Context, id int32, t domain.Transition, opts TransitionOptions) (*domain.Event, error)
	Archive(ctx context.Context, id int32) (*domain.Event, error)
	DeleteEvent(ctx context.Context, id int32) error
	ListBookings(ctx context.Context, eventID int32) ([]domain.Booking, error)
}

type BookingService interface {
	SignUp(ctx context.Context, userID, eventID int32, role domain.RoleType) (*domain.Booking, error)
	Withdraw(ctx context.Context, userID, eventID int32) (*domain.Booking, error)
	SubmitProof(ctx context.Context, userID, eventID int32, proof Upload, reflection string) (*domain.Booking, error)
	MarkCompleted(ctx context.Context, bookingID int32, hours *float64) (*domain.Booking, error)
	ListAwaitingVerification(ctx context.Context, page, pageSize int32) ([]domain.Booking, int32, error)
	GetSchedule(ctx context.Context, userID int32) (*domain.Schedule, error)
}

type ChallengeService interface {
	CreateChallenge(ctx context.Context, in ChallengeInput) (*domain.Challenge, error)
	UpdateChallenge(ctx context.Context, id int32, in ChallengeInput) (*domain.Challenge, error)
	GetChallenge(ctx context.Context, id int32) (*domain.Challenge, error)
	ListChallenges(ctx context.Context, filter domain.ChallengeFilter) ([]domain.Challenge, int32, error)
	Transition(ctx context.Context, id int32, t domain.Transition, opts TransitionOptions) (*domain.Challenge, error)
	Archive(ctx context.Context, id int32) (*domain.Challenge, error)
	DeleteChallenge(ctx context.Context, id int32) error

	Submit(ctx context.Context, userID, challengeID int32, proof Upload, description string) (*domain.ChallengeSubmission, error)
	LatestSubmission(ctx context.Context, userID, challengeID int32) (*domain.ChallengeSubmission, error)
	ListSubmissions(ctx context.Context, challengeID int32, status domain.SubmissionStatus) ([]domain.ChallengeSubmission, error)
	ReviewSubmission(ctx context.Context, submissionID int32, approve bool, comment string) (*domain.ChallengeSubmission, error)
}

type NotificationService interface {
	Push(ctx context.Context, n *domain.Notification) error
	List(ctx context.Context, userID int32, page, pageSize int32) ([]domain.Notification, int32, error)
	ListUnread(ctx context.Context, userID int32) ([]domain.Notification, error)
	CountUnread(ctx context.Context, userID int32) (int32, error)
	MarkAsRead(ctx context.Context, userID, notificationID int32) error
	MarkAllAsRead(ctx context.Context, userID int32) (int64, error)
}

type PointsService interface {
	Balance(ctx context.Context, userID int32) (int32, error)
	History(ctx context.Context, userID int32, page, pageSize int32) ([]domain.PointsTransaction, int32, error)
	Adjust(ctx context.Context, userID, delta int32, remarks string) (*domain.User, error)
}

type RewardService interface {
	ListRewards(ctx context.Context, activeOnly bool) ([]domain.Reward, error)
	CreateReward(ctx context.Context, in RewardInput) (*domain.Reward, error)
	UpdateReward(ctx context.Context, id int32, in RewardInput) (*domain.Reward, error)

	RequestRedemption(ctx context.Context, userID, rewardID int32) (*domain.RewardRedemption, error)
	CancelOwnRedemption(ctx context.Context, userID, redemptionID int32) (*domain.RewardRedemption, error)
	ListMyRedemptions(ctx context.Context, userID int32) ([]domain.RewardRedemption, error)

	ListRedemptions(ctx context.Context, status domain.RedemptionStatus, page, pageSize int32) ([]domain.RewardRedemption, int32, error)
	ApproveRedemption(ctx context.Context, redemptionID int32) (*domain.RewardRedemption, error)
	MarkRedeemed(ctx context.Context, redemptionID int32) (*domain.RewardRedemption, error)
	CancelRedemption(ctx context.Context, redemptionID int32) (*domain.RewardRedemption, error)
	ExpireRedemptions(ctx context.Context) (int, error)
}

type TicketService interface {
	Submit(ctx context.Context, userID int32, in TicketInput) (*domain.SupportTicket, error)
	ListMine(ctx context.Context, userID int32, page, pageSize int32) ([]domain.SupportTicket, int32, error)
	List(ctx context.Context, filter domain.TicketFilter) ([]domain.SupportTicket, int32, error)
	Get(ctx context.Context, id int32) (*domain.SupportTicket, error)
	Reply(ctx context.Context, adminID, ticketID int32, reply string) (*domain.SupportTicket, error)
	Resolve(ctx context.Context, ticketID int32) (*domain.SupportTicket, error)
}

type ChatService interface {
	Start(ctx context.Context, userID int32) (*domain.ChatSession, []domain.ChatMessage, error)
	Active(ctx context.Context, userID int32) (*domain.ChatSession, []domain.ChatMessage, error)
	SendAsUser(ctx context.Context, userID, sessionID int32, text string) (*domain.ChatMessage, error)
	History(ctx context.Context, userID, sessionID int32) ([]domain.ChatMessage, error)

	ListSessions(ctx context.Context, status domain.ChatSessionStatus) ([]domain.ChatSession, error)
	Messages(ctx context.Context, sessionID int32) ([]domain.ChatMessage, error)
	SendAsAdmin(ctx context.Context, adminID, sessionID int32, text string) (*domain.ChatMessage, error)
	Close(ctx context.Context, sessionID int32) (*domain.ChatSession, error)
	CloseIdle(ctx context.Context) (int64, error)
}

type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*domain.User, error)
	Login(ctx context.Context, email, password string) (*Session, error)
	LoginWithGoogle(ctx context.Context, idToken string, role domain.UserRole) (*Session, error)
	AdminLogin(ctx context.Context, email, password string) (*Session, error)
}

type UserService interface {
	GetProfile(ctx context.Context, userID int32) (*domain.User, error)
	UpdateProfile(ctx context.Context, userID int32, in ProfileInput) (*domain.User, error)
	UploadPhoto(ctx context.Context, userID int32, photo Upload) (*domain.User, error)
	ChangePassword(ctx context.Context, userID int32, current, next string) error
	Dashboard(ctx context.Context, userID int32) (*domain.Dashboard, error)
	ListSkills(ctx context.Context) ([]domain.Skill, error)
	GetSkills(ctx context.Context, userID int32) (*domain.UserSkills, error)
	UpdateSkills(ctx context.Context, userID int32, in SkillsInput) (*domain.UserSkills, error)

	ListUsers(ctx context.Context, status domain.VerificationStatus, page, pageSize int32) ([]domain.User, int32, error)
	VerifyUser(ctx context.Context, userID int32) error
	RejectUser(ctx context.Context, userID int32) error
}

type MediaService interface {
	Save(ctx context.Context, prefix string, ownerID int32, file Upload) (string, error)
	Open(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
}

type EmailService interface {
	SendTicketReply(ctx context.Context, email, name, subject, reply string) error
}
