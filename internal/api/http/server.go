package http

import (
	"net/http"
	"time"

	"skillswap-backend/internal/security"
	"skillswap-backend/internal/service"

	"github.com/gorilla/mux"
)

// Services bundles what the handlers call into.
type Services struct {
	Auth         service.AuthService
	User         service.UserService
	Event        service.EventService
	Booking      service.BookingService
	Challenge    service.ChallengeService
	Notification service.NotificationService
	Points       service.PointsService
	Reward       service.RewardService
	Ticket       service.TicketService
	Chat         service.ChatService
	Media        service.MediaService
}

type Server struct {
	svc          Services
	tokens       security.TokenManager
	validator    *requestValidator
	cookieSecure bool
	pageSize     int32
	now          func() time.Time
}

// NewServer builds both routers over the same services. pageSize is the list
// size used when a request does not pass page_size.
func NewServer(svc Services, tokens security.TokenManager, cookieSecure bool, pageSize int32) *Server {
	return &Server{
		svc:          svc,
		tokens:       tokens,
		validator:    newRequestValidator(),
		cookieSecure: cookieSecure,
		pageSize:     pageSize,
		now:          time.Now,
	}
}

// UserRouter serves participants and the public catalog.
func (s *Server) UserRouter() http.Handler {
	router := mux.NewRouter()
	router.Use(requestLogger, s.authenticate(false))

	router.HandleFunc("/health", s.health).Methods(http.MethodGet).Name("health")

	api := router.PathPrefix("/api/v1").Subrouter()

	api.HandleFunc("/auth/register", s.register).Methods(http.MethodPost).Name("auth.register")
	api.HandleFunc("/auth/login", s.login).Methods(http.MethodPost).Name("auth.login")
	api.HandleFunc("/auth/google", s.googleLogin).Methods(http.MethodPost).Name("auth.google")
	api.HandleFunc("/auth/logout", s.logout).Methods(http.MethodPost).Name("auth.logout")

	api.HandleFunc("/events", s.listCatalogEvents).Methods(http.MethodGet).Name("events.list")
	api.HandleFunc("/events/{id}", s.getEvent).Methods(http.MethodGet).Name("events.get")
	api.HandleFunc("/events/{id}/signup", s.signUp).Methods(http.MethodPost).Name("events.signup")
	api.HandleFunc("/events/{id}/withdraw", s.withdraw).Methods(http.MethodPost).Name("events.withdraw")
	api.HandleFunc("/events/{id}/proof", s.submitProof).Methods(http.MethodPost).Name("events.proof")

	api.HandleFunc("/challenges", s.listCatalogChallenges).Methods(http.MethodGet).Name("challenges.list")
	api.HandleFunc("/challenges/{id}", s.getChallenge).Methods(http.MethodGet).Name("challenges.get")
	api.HandleFunc("/challenges/{id}/submissions", s.submitChallenge).Methods(http.MethodPost).Name("challenges.submit")
	api.HandleFunc("/challenges/{id}/submissions/latest", s.latestSubmission).Methods(http.MethodGet).Name("challenges.latest")

	api.HandleFunc("/skills", s.listSkills).Methods(http.MethodGet).Name("skills.list")

	api.HandleFunc("/rewards", s.listCatalogRewards).Methods(http.MethodGet).Name("rewards.list")
	api.HandleFunc("/rewards/{id}/redeem", s.redeem).Methods(http.MethodPost).Name("rewards.redeem")
	api.HandleFunc("/redemptions", s.myRedemptions).Methods(http.MethodGet).Name("rewards.redemptions")
	api.HandleFunc("/redemptions/{id}/cancel", s.cancelMyRedemption).Methods(http.MethodPost).Name("rewards.cancel")

	api.HandleFunc("/me/dashboard", s.dashboard).Methods(http.MethodGet).Name("me.dashboard")
	api.HandleFunc("/me/profile", s.profile).Methods(http.MethodGet).Name("me.profile")
	api.HandleFunc("/me/profile", s.updateProfile).Methods(http.MethodPut).Name("me.profile.update")
	api.HandleFunc("/me/profile/photo", s.uploadPhoto).Methods(http.MethodPost).Name("me.profile.photo")
	api.HandleFunc("/me/password", s.changePassword).Methods(http.MethodPut).Name("me.password")
	api.HandleFunc("/me/schedule", s.schedule).Methods(http.MethodGet).Name("me.schedule")
	api.HandleFunc("/me/points", s.myPoints).Methods(http.MethodGet).Name("me.points")
	api.HandleFunc("/me/skills", s.mySkills).Methods(http.MethodGet).Name("me.skills")
	api.HandleFunc("/me/skills", s.updateSkills).Methods(http.MethodPut).Name("me.skills.update")

	api.HandleFunc("/notifications", s.listNotifications).Methods(http.MethodGet).Name("notifications.list")
	api.HandleFunc("/notifications/unread", s.unreadNotifications).Methods(http.MethodGet).Name("notifications.unread")
	api.HandleFunc("/notifications/read-all", s.markAllRead).Methods(http.MethodPost).Name("notifications.read_all")
	api.HandleFunc("/notifications/{id}/read", s.markRead).Methods(http.MethodPost).Name("notifications.read")

	api.HandleFunc("/tickets", s.submitTicket).Methods(http.MethodPost).Name("tickets.create")
	api.HandleFunc("/tickets", s.myTickets).Methods(http.MethodGet).Name("tickets.list")

	api.HandleFunc("/chat", s.startChat).Methods(http.MethodPost).Name("chat.start")
	api.HandleFunc("/chat", s.activeChat).Methods(http.MethodGet).Name("chat.active")
	api.HandleFunc("/chat/{id}/messages", s.sendChat).Methods(http.MethodPost).Name("chat.send")
	api.HandleFunc("/chat/{id}/messages", s.chatHistory).Methods(http.MethodGet).Name("chat.history")

	api.HandleFunc("/media/{key:.+}", s.downloadMedia).Methods(http.MethodGet).Name("media.get")

	return router
}

// AdminRouter serves the console. Every route except login and logout
// requires an admin session.
func (s *Server) AdminRouter() http.Handler {
	router := mux.NewRouter()
	router.Use(requestLogger, s.authenticate(true))

	router.HandleFunc("/health", s.health).Methods(http.MethodGet).Name("health")

	api := router.PathPrefix("/admin/api/v1").Subrouter()

	api.HandleFunc("/auth/login", s.adminLogin).Methods(http.MethodPost).Name("admin.auth.login")
	api.HandleFunc("/auth/logout", s.adminLogout).Methods(http.MethodPost).Name("admin.auth.logout")

	api.HandleFunc("/events", s.adminListEvents).Methods(http.MethodGet).Name("admin.events.list")
	api.HandleFunc("/events", s.createEvent).Methods(http.MethodPost).Name("admin.events.create")
	api.HandleFunc("/events/{id}", s.getEvent).Methods(http.MethodGet).Name("admin.events.get")
	api.HandleFunc("/events/{id}", s.updateEvent).Methods(http.MethodPut).Name("admin.events.update")
	api.HandleFunc("/events/{id}", s.deleteEvent).Methods(http.MethodDelete).Name("admin.events.delete")
	api.HandleFunc("/events/{id}/transition", s.transitionEvent).Methods(http.MethodPost).Name("admin.events.transition")
	api.HandleFunc("/events/{id}/archive", s.archiveEvent).Methods(http.MethodPost).Name("admin.events.archive")
	api.HandleFunc("/events/{id}/bookings", s.eventBookings).Methods(http.MethodGet).Name("admin.events.bookings")

	api.HandleFunc("/bookings/awaiting-verification", s.awaitingVerification).Methods(http.MethodGet).Name("admin.bookings.awaiting")
	api.HandleFunc("/bookings/{id}/complete", s.completeBooking).Methods(http.MethodPost).Name("admin.bookings.complete")

	api.HandleFunc("/challenges", s.adminListChallenges).Methods(http.MethodGet).Name("admin.challenges.list")
	api.HandleFunc("/challenges", s.createChallenge).Methods(http.MethodPost).Name("admin.challenges.create")
	api.HandleFunc("/challenges/{id}", s.getChallenge).Methods(http.MethodGet).Name("admin.challenges.get")
	api.HandleFunc("/challenges/{id}", s.updateChallenge).Methods(http.MethodPut).Name("admin.challenges.update")
	api.HandleFunc("/challenges/{id}", s.deleteChallenge).Methods(http.MethodDelete).Name("admin.challenges.delete")
	api.HandleFunc("/challenges/{id}/transition", s.transitionChallenge).Methods(http.MethodPost).Name("admin.challenges.transition")
	api.HandleFunc("/challenges/{id}/archive", s.archiveChallenge).Methods(http.MethodPost).Name("admin.challenges.archive")
	api.HandleFunc("/challenges/{id}/submissions", s.listSubmissions).Methods(http.MethodGet).Name("admin.challenges.submissions")
	api.HandleFunc("/submissions/{id}/review", s.reviewSubmission).Methods(http.MethodPost).Name("admin.submissions.review")

	api.HandleFunc("/rewards", s.adminListRewards).Methods(http.MethodGet).Name("admin.rewards.list")
	api.HandleFunc("/rewards", s.createReward).Methods(http.MethodPost).Name("admin.rewards.create")
	api.HandleFunc("/rewards/{id}", s.updateReward).Methods(http.MethodPut).Name("admin.rewards.update")
	api.HandleFunc("/redemptions", s.listRedemptions).Methods(http.MethodGet).Name("admin.redemptions.list")
	api.HandleFunc("/redemptions/{id}/approve", s.approveRedemption).Methods(http.MethodPost).Name("admin.redemptions.approve")
	api.HandleFunc("/redemptions/{id}/redeem", s.markRedeemed).Methods(http.MethodPost).Name("admin.redemptions.redeem")
	api.HandleFunc("/redemptions/{id}/cancel", s.cancelRedemption).Methods(http.MethodPost).Name("admin.redemptions.cancel")

	api.HandleFunc("/users", s.listUsers).Methods(http.MethodGet).Name("admin.users.list")
	api.HandleFunc("/users/{id}/verify", s.verifyUser).Methods(http.MethodPost).Name("admin.users.verify")
	api.HandleFunc("/users/{id}", s.rejectUser).Methods(http.MethodDelete).Name("admin.users.reject")
	api.HandleFunc("/users/{id}/points", s.adjustPoints).Methods(http.MethodPost).Name("admin.users.points")

	api.HandleFunc("/notifications", s.pushNotification).Methods(http.MethodPost).Name("admin.notifications.push")

	api.HandleFunc("/tickets", s.listTickets).Methods(http.MethodGet).Name("admin.tickets.list")
	api.HandleFunc("/tickets/{id}", s.getTicket).Methods(http.MethodGet).Name("admin.tickets.get")
	api.HandleFunc("/tickets/{id}/reply", s.replyTicket).Methods(http.MethodPost).Name("admin.tickets.reply")
	api.HandleFunc("/tickets/{id}/resolve", s.resolveTicket).Methods(http.MethodPost).Name("admin.tickets.resolve")

	api.HandleFunc("/chats", s.listChatSessions).Methods(http.MethodGet).Name("admin.chats.list")
	api.HandleFunc("/chats/{id}/messages", s.chatMessages).Methods(http.MethodGet).Name("admin.chats.messages")
	api.HandleFunc("/chats/{id}/messages", s.adminSendChat).Methods(http.MethodPost).Name("admin.chats.send")
	api.HandleFunc("/chats/{id}/close", s.closeChat).Methods(http.MethodPost).Name("admin.chats.close")

	api.HandleFunc("/media/{key:.+}", s.downloadMedia).Methods(http.MethodGet).Name("admin.media.get")

	return router
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
